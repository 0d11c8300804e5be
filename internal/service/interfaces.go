package service

import (
	"context"

	"github.com/cardify/cardify-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service.go -package=mock

// AuthService owns account registration, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User, password string) (models.User, error)
	Login(ctx context.Context, username string, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService owns user listing, the aggregated profile view, and account
// mutation.
type UserService interface {
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	GetProfile(ctx context.Context, username string) (models.UserProfile, error)
	UpdateUser(ctx context.Context, username string, upd models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

// DeckService owns deck CRUD, the aggregated deck view, and tag management.
// Slugs are derived from the title at creation and never change afterwards.
type DeckService interface {
	ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error)
	GetDeck(ctx context.Context, username string, slug string) (models.DeckDetail, error)
	CreateDeck(ctx context.Context, deck models.Deck) (models.Deck, error)
	UpdateDeck(ctx context.Context, username string, slug string, upd models.DeckUpdate) (models.Deck, error)
	DeleteDeck(ctx context.Context, username string, slug string) error

	AddTag(ctx context.Context, username string, slug string, tagName string) ([]string, error)
	RemoveTag(ctx context.Context, username string, slug string, tagName string) ([]string, error)
}

// CardService owns card CRUD. Cards are addressed by id; creation resolves
// the owning deck through its (username, slug) key.
type CardService interface {
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	GetCard(ctx context.Context, id int64) (models.Card, error)
	CreateCard(ctx context.Context, card models.Card) (models.Card, error)
	UpdateCard(ctx context.Context, id int64, upd models.CardUpdate) (models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
}

// AppInfoService reports build metadata about the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// SocialService owns the follow and favorite relationship operations.
type SocialService interface {
	ListFollowers(ctx context.Context, username string) ([]models.Follow, error)
	ListFollowing(ctx context.Context, username string) ([]models.Follow, error)
	Follow(ctx context.Context, followerUsername string, followedUsername string) (models.FollowResult, error)
	Unfollow(ctx context.Context, followerUsername string, followedUsername string) (string, error)
	Favorite(ctx context.Context, username string, ownerUsername string, slug string) (models.FavoriteResult, error)
	Unfavorite(ctx context.Context, username string, ownerUsername string, slug string) (string, error)
}
