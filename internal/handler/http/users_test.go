package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardify/cardify-server/internal/store"
	"github.com/cardify/cardify-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListUsers_TranslatesQueryParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.users.EXPECT().ListUsers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, filter models.UserFilter) ([]models.User, error) {
			require.NotNil(t, filter.Username)
			assert.Equal(t, "ali", *filter.Username)
			require.NotNil(t, filter.IsPublic)
			assert.True(t, *filter.IsPublic)
			assert.Nil(t, filter.IsAdmin)
			assert.Equal(t, "username", filter.OrderBy)
			return []models.User{{ID: 1, Username: "alice"}}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/users?username=ali&isPublic=true&orderBy=username", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username)
}

func TestListUsers_BadBoolParam(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/users?isPublic=maybe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfile_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	profile := models.UserProfile{
		User:      models.User{ID: 1, Username: "alice"},
		Decks:     []models.DeckDetail{},
		Followers: []models.Follow{},
		Following: []models.Follow{},
		Favorites: []models.Favorite{},
	}
	mocks.users.EXPECT().GetProfile(gomock.Any(), "alice").Return(profile, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Empty collections serialize as [], never null.
	body := rec.Body.String()
	assert.Contains(t, body, `"decks":[]`)
	assert.Contains(t, body, `"followers":[]`)
	assert.NotContains(t, body, `"password"`)
}

func TestGetProfile_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.users.EXPECT().GetProfile(gomock.Any(), "ghost").
		Return(models.UserProfile{}, store.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	email := "new@example.com"
	mocks.users.EXPECT().UpdateUser(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ any, _ string, upd models.UserUpdate) (models.User, error) {
			require.NotNil(t, upd.Email)
			assert.Equal(t, email, *upd.Email)
			return models.User{ID: 1, Username: "alice", Email: email}, nil
		})

	req := httptest.NewRequest(http.MethodPatch, "/api/users/alice", strings.NewReader(`{"email":"new@example.com"}`))
	asUser(req, mocks, "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateUser_EmptyPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.users.EXPECT().UpdateUser(gomock.Any(), "alice", models.UserUpdate{}).
		Return(models.User{}, store.ErrEmptyUpdate)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/alice", strings.NewReader(`{}`))
	asUser(req, mocks, "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.users.EXPECT().DeleteUser(gomock.Any(), "alice").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/alice", nil)
	asUser(req, mocks, "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteUser_DifferentActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/alice", nil)
	asUser(req, mocks, "mallory")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
