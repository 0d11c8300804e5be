package http

import (
	"net/http"

	"github.com/cardify/cardify-server/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listFollowers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	followers, err := h.services.SocialService.ListFollowers(ctx, username)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, followers, http.StatusOK)
}

func (h *Handler) listFollowing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	following, err := h.services.SocialService.ListFollowing(ctx, username)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, following, http.StatusOK)
}

func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	follower := chi.URLParam(r, "follower")
	followed := chi.URLParam(r, "followed")

	if !h.requireActor(w, r, follower) {
		return
	}

	result, err := h.services.SocialService.Follow(ctx, follower, followed)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	follower := chi.URLParam(r, "follower")
	followed := chi.URLParam(r, "followed")

	if !h.requireActor(w, r, follower) {
		return
	}

	message, err := h.services.SocialService.Unfollow(ctx, follower, followed)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: message}, http.StatusOK)
}

func (h *Handler) favorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	owner := chi.URLParam(r, "owner")
	slug := chi.URLParam(r, "slug")

	if !h.requireActor(w, r, username) {
		return
	}

	result, err := h.services.SocialService.Favorite(ctx, username, owner, slug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) unfavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	owner := chi.URLParam(r, "owner")
	slug := chi.URLParam(r, "slug")

	if !h.requireActor(w, r, username) {
		return
	}

	message, err := h.services.SocialService.Unfavorite(ctx, username, owner, slug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, messageResponse{Message: message}, http.StatusOK)
}

type messageResponse struct {
	Message string `json:"message"`
}
