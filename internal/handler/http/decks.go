package http

import (
	"encoding/json"
	"net/http"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/utils"
	"github.com/cardify/cardify-server/models"
	"github.com/go-chi/chi/v5"
)

type createDeckRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

func (h *Handler) listDecks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	isPublic, err := queryBool(r, "isPublic")
	if err != nil {
		log.Err(err).Msg("invalid isPublic query param")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := models.DeckFilter{
		Username: queryString(r, "username"),
		Term:     queryString(r, "term"),
		IsPublic: isPublic,
		OrderBy:  r.URL.Query().Get("orderBy"),
	}

	decks, err := h.services.DeckService.ListDecks(ctx, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, decks, http.StatusOK)
}

func (h *Handler) getDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	slug := chi.URLParam(r, "slug")

	deck, err := h.services.DeckService.GetDeck(ctx, username, slug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, deck, http.StatusOK)
}

// createDeck always creates under the authenticated user; the owner cannot
// be chosen in the payload.
func (h *Handler) createDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, found := utils.GetUsernameFromContext(ctx)
	if !found {
		respondError(w, r, ErrActingForDifferentUser)
		return
	}

	var req createDeckRequest
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

	deck, err := h.services.DeckService.CreateDeck(ctx, models.Deck{
		Title:       req.Title,
		Description: req.Description,
		Username:    username,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, deck, http.StatusCreated)
}

func (h *Handler) updateDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	username := chi.URLParam(r, "username")
	slug := chi.URLParam(r, "slug")

	if !h.requireActor(w, r, username) {
		return
	}

	var upd models.DeckUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	deck, err := h.services.DeckService.UpdateDeck(ctx, username, slug, upd)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, deck, http.StatusOK)
}

func (h *Handler) deleteDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	slug := chi.URLParam(r, "slug")

	if !h.requireActor(w, r, username) {
		return
	}

	if err := h.services.DeckService.DeleteDeck(ctx, username, slug); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	slug := chi.URLParam(r, "slug")
	tagName := chi.URLParam(r, "tagName")

	if !h.requireActor(w, r, username) {
		return
	}

	tags, err := h.services.DeckService.AddTag(ctx, username, slug, tagName)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, tagsResponse{Tags: tags}, http.StatusCreated)
}

func (h *Handler) removeTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	slug := chi.URLParam(r, "slug")
	tagName := chi.URLParam(r, "tagName")

	if !h.requireActor(w, r, username) {
		return
	}

	tags, err := h.services.DeckService.RemoveTag(ctx, username, slug, tagName)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, tagsResponse{Tags: tags}, http.StatusOK)
}
