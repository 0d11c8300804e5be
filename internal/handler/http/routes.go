package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/info", h.appInfo)

		r.Post("/auth/register", h.signUp)
		r.Post("/auth/token", h.login)
		r.Post("/api/users", h.signUp)

		r.Get("/api/users", h.listUsers)
		r.Get("/api/users/{username}", h.getProfile)
		r.Get("/api/users/{username}/followers", h.listFollowers)
		r.Get("/api/users/{username}/following", h.listFollowing)

		r.Get("/api/decks", h.listDecks)
		r.Get("/api/decks/{username}/{slug}", h.getDeck)

		r.Get("/api/cards", h.listCards)
		r.Get("/api/cards/{id}", h.getCard)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Patch("/api/users/{username}", h.updateUser)
		r.Delete("/api/users/{username}", h.deleteUser)

		r.Post("/api/users/{follower}/follow/{followed}", h.follow)
		r.Delete("/api/users/{follower}/unfollow/{followed}", h.unfollow)
		r.Post("/api/users/{username}/favorites/{owner}/{slug}", h.favorite)
		r.Delete("/api/users/{username}/favorites/{owner}/{slug}", h.unfavorite)

		r.Post("/api/decks", h.createDeck)
		r.Patch("/api/decks/{username}/{slug}", h.updateDeck)
		r.Delete("/api/decks/{username}/{slug}", h.deleteDeck)
		r.Post("/api/decks/{username}/{slug}/tags/{tagName}", h.addTag)
		r.Delete("/api/decks/{username}/{slug}/tags/{tagName}", h.removeTag)

		r.Post("/api/cards", h.createCard)
		r.Patch("/api/cards/{id}", h.updateCard)
		r.Delete("/api/cards/{id}", h.deleteCard)
	})

	return router
}
