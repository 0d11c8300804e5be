package http

import (
	"encoding/json"
	"net/http"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/utils"
	"github.com/cardify/cardify-server/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	isPublic, err := queryBool(r, "isPublic")
	if err != nil {
		log.Err(err).Msg("invalid isPublic query param")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	isAdmin, err := queryBool(r, "isAdmin")
	if err != nil {
		log.Err(err).Msg("invalid isAdmin query param")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := models.UserFilter{
		Username:  queryString(r, "username"),
		FirstName: queryString(r, "firstName"),
		LastName:  queryString(r, "lastName"),
		IsPublic:  isPublic,
		IsAdmin:   isAdmin,
		OrderBy:   r.URL.Query().Get("orderBy"),
	}

	users, err := h.services.UserService.ListUsers(ctx, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	profile, err := h.services.UserService.GetProfile(ctx, username)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	username := chi.URLParam(r, "username")

	if !h.requireActor(w, r, username) {
		return
	}

	var upd models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.UpdateUser(ctx, username, upd)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")

	if !h.requireActor(w, r, username) {
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, username); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
