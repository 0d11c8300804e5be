package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardify/cardify-server/internal/service"
	"github.com/cardify/cardify-server/internal/store"
	"github.com/cardify/cardify-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSignUp_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	created := models.User{ID: 1, Username: "alice", Email: "alice@example.com"}

	mocks.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any(), "s3cret").
		DoAndReturn(func(_ any, user models.User, _ string) (models.User, error) {
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "alice@example.com", user.Email)
			return created, nil
		})
	mocks.auth.EXPECT().CreateToken(gomock.Any(), created).
		Return(models.Token{SignedString: "signed.jwt.token", Username: "alice"}, nil)

	body := `{"username":"alice","password":"s3cret","email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
}

func TestSignUp_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignUp_MissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	// Fails payload validation before the service is touched.
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignUp_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any(), "s3cret").
		Return(models.User{}, store.ErrUsernameTaken)

	body := `{"username":"alice","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	found := models.User{ID: 1, Username: "alice"}

	mocks.auth.EXPECT().Login(gomock.Any(), "alice", "s3cret").Return(found, nil)
	mocks.auth.EXPECT().CreateToken(gomock.Any(), found).
		Return(models.Token{SignedString: "signed.jwt.token", Username: "alice"}, nil)

	body := `{"username":"alice","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.auth.EXPECT().Login(gomock.Any(), "alice", "wrong").
		Return(models.User{}, service.ErrWrongPassword)

	body := `{"username":"alice","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username/password")
}

func TestLogin_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.auth.EXPECT().Login(gomock.Any(), "ghost", "s3cret").
		Return(models.User{}, store.ErrUserNotFound)

	body := `{"username":"ghost","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Deliberately indistinguishable from a wrong password.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
