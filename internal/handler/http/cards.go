package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/utils"
	"github.com/cardify/cardify-server/models"
	"github.com/go-chi/chi/v5"
)

type createCardRequest struct {
	DeckSlug string `json:"deckSlug" validate:"required"`
	Front    string `json:"front" validate:"required"`
	Back     string `json:"back"`
}

func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deckID, err := queryInt64(r, "deckId")
	if err != nil {
		log.Err(err).Msg("invalid deckId query param")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := models.CardFilter{
		Username: queryString(r, "username"),
		DeckID:   deckID,
		OrderBy:  r.URL.Query().Get("orderBy"),
	}

	cards, err := h.services.CardService.ListCards(ctx, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, cards, http.StatusOK)
}

func (h *Handler) getCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	card, err := h.services.CardService.GetCard(ctx, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, card, http.StatusOK)
}

// createCard always creates under the authenticated user; the deck is
// addressed by its slug within that user's decks.
func (h *Handler) createCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, found := utils.GetUsernameFromContext(ctx)
	if !found {
		respondError(w, r, ErrActingForDifferentUser)
		return
	}

	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("invalid data provided")
		http.Error(w, "invalid data provided", http.StatusBadRequest)
		return
	}

	card, err := h.services.CardService.CreateCard(ctx, models.Card{
		DeckSlug: req.DeckSlug,
		Username: username,
		Front:    req.Front,
		Back:     req.Back,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, card, http.StatusCreated)
}

func (h *Handler) updateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := h.cardID(w, r)
	if !ok {
		return
	}
	if !h.requireCardOwner(w, r, id) {
		return
	}

	var upd models.CardUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	card, err := h.services.CardService.UpdateCard(ctx, id, upd)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, card, http.StatusOK)
}

func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.cardID(w, r)
	if !ok {
		return
	}
	if !h.requireCardOwner(w, r, id) {
		return
	}

	if err := h.services.CardService.DeleteCard(ctx, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// cardID parses the {id} path parameter. A non-numeric id is a 400; handlers
// must return when ok is false.
func (h *Handler) cardID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid card id")
		http.Error(w, "card id must be an integer", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

// requireCardOwner resolves the card and checks it belongs to the
// authenticated user. Cards are addressed by id, so ownership can only be
// established after a lookup.
func (h *Handler) requireCardOwner(w http.ResponseWriter, r *http.Request, id int64) bool {
	card, err := h.services.CardService.GetCard(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return false
	}

	return h.requireActor(w, r, card.Username)
}
