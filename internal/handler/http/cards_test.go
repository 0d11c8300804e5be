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

func TestListCards_TranslatesQueryParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.cards.EXPECT().ListCards(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, filter models.CardFilter) ([]models.Card, error) {
			require.NotNil(t, filter.DeckID)
			assert.Equal(t, int64(10), *filter.DeckID)
			require.NotNil(t, filter.Username)
			assert.Equal(t, "alice", *filter.Username)
			return []models.Card{}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/cards?deckId=10&username=alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListCards_BadDeckID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/cards?deckId=ten", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	card := models.Card{ID: 7, DeckID: 10, Front: "hablar", Back: "to speak", Username: "alice"}
	mocks.cards.EXPECT().GetCard(gomock.Any(), int64(7)).Return(card, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cards/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "hablar", got.Front)
}

func TestGetCard_NonNumericID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/cards/seven", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.cards.EXPECT().CreateCard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, card models.Card) (models.Card, error) {
			assert.Equal(t, "alice", card.Username)
			assert.Equal(t, "spanish-verbs", card.DeckSlug)
			assert.Equal(t, "hablar", card.Front)
			card.ID = 7
			return card, nil
		})

	body := `{"deckSlug":"spanish-verbs","front":"hablar","back":"to speak"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cards", strings.NewReader(body))
	asUser(req, mocks, "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateCard_DeckNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.cards.EXPECT().CreateCard(gomock.Any(), gomock.Any()).
		Return(models.Card{}, store.ErrDeckNotFound)

	body := `{"deckSlug":"missing","front":"hablar"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cards", strings.NewReader(body))
	asUser(req, mocks, "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	existing := models.Card{ID: 7, Username: "alice", Front: "hablar"}
	mocks.cards.EXPECT().GetCard(gomock.Any(), int64(7)).Return(existing, nil)
	mocks.cards.EXPECT().UpdateCard(gomock.Any(), int64(7), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, upd models.CardUpdate) (models.Card, error) {
			require.NotNil(t, upd.Back)
			assert.Equal(t, "to talk", *upd.Back)
			existing.Back = *upd.Back
			return existing, nil
		})

	req := httptest.NewRequest(http.MethodPatch, "/api/cards/7", strings.NewReader(`{"back":"to talk"}`))
	asUser(req, mocks, "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteCard_DifferentOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.cards.EXPECT().GetCard(gomock.Any(), int64(7)).
		Return(models.Card{ID: 7, Username: "alice"}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cards/7", nil)
	asUser(req, mocks, "mallory")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteCard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.cards.EXPECT().GetCard(gomock.Any(), int64(7)).
		Return(models.Card{ID: 7, Username: "alice"}, nil)
	mocks.cards.EXPECT().DeleteCard(gomock.Any(), int64(7)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cards/7", nil)
	asUser(req, mocks, "alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
