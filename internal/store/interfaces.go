package store

import (
	"context"

	"github.com/cardify/cardify-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store.go -package=mock

// UserRepository owns CRUD and filtered listing for user accounts. The
// natural key for lookups, updates, and deletes is the username.
type UserRepository interface {
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, username string, upd models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

// DeckRepository owns CRUD and filtered listing for decks. The natural key is
// the (owner username, slug) pair; the owner reference is resolved to the
// users row at creation time.
type DeckRepository interface {
	ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error)
	ListDecksByOwner(ctx context.Context, userID int64) ([]models.Deck, error)
	GetDeckByOwnerAndSlug(ctx context.Context, username string, slug string) (models.Deck, error)
	CreateDeck(ctx context.Context, deck models.Deck) (models.Deck, error)
	UpdateDeck(ctx context.Context, username string, slug string, upd models.DeckUpdate) (models.Deck, error)
	DeleteDeck(ctx context.Context, username string, slug string) error
}

// CardRepository owns CRUD and filtered listing for cards. Cards are keyed by
// id; creation resolves the owning deck through its (username, slug) natural
// key and fails with [ErrDeckNotFound] when the deck does not exist.
type CardRepository interface {
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	ListCardsByDeck(ctx context.Context, deckID int64) ([]models.Card, error)
	GetCard(ctx context.Context, id int64) (models.Card, error)
	CreateCard(ctx context.Context, card models.Card) (models.Card, error)
	UpdateCard(ctx context.Context, id int64, upd models.CardUpdate) (models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
}

// FollowRepository owns the directed follow edges between users. Edges have
// no identity beyond their ordered endpoint pair.
type FollowRepository interface {
	ListFollowers(ctx context.Context, userID int64) ([]models.Follow, error)
	ListFollowing(ctx context.Context, userID int64) ([]models.Follow, error)
	GetFollow(ctx context.Context, followingUserID int64, followedUserID int64) (models.Follow, error)
	CreateFollow(ctx context.Context, followingUserID int64, followedUserID int64) (models.Follow, error)
	DeleteFollow(ctx context.Context, followingUserID int64, followedUserID int64) error
}

// FavoriteRepository owns the (user, deck) favorite edges.
type FavoriteRepository interface {
	ListFavoritesByUser(ctx context.Context, userID int64) ([]models.Favorite, error)
	GetFavorite(ctx context.Context, userID int64, deckID int64) (models.Favorite, error)
	CreateFavorite(ctx context.Context, userID int64, deckID int64) (models.Favorite, error)
	DeleteFavorite(ctx context.Context, userID int64, deckID int64) error
}

// TagRepository owns tags and their deck associations. ListTagNamesByDeck
// returns tag names in association order via a single joined query.
type TagRepository interface {
	GetTagByName(ctx context.Context, tagName string) (models.Tag, error)
	GetOrCreateTag(ctx context.Context, tagName string) (models.Tag, error)
	AddTagToDeck(ctx context.Context, deckID int64, tagID int64) (models.DeckTag, error)
	RemoveTagFromDeck(ctx context.Context, deckID int64, tagID int64) error
	ListTagNamesByDeck(ctx context.Context, deckID int64) ([]string, error)
}
