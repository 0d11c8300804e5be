package store

import "github.com/cardify/cardify-server/internal/logger"

// Repositories bundles every entity repository behind one constructor so the
// service layer receives a single wired dependency.
type Repositories struct {
	UserRepository     UserRepository
	DeckRepository     DeckRepository
	CardRepository     CardRepository
	FollowRepository   FollowRepository
	FavoriteRepository FavoriteRepository
	TagRepository      TagRepository
}

// NewRepositories constructs all repositories on top of the shared database
// gateway.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db, logger),
		DeckRepository:     NewDeckRepository(db, logger),
		CardRepository:     NewCardRepository(db, logger),
		FollowRepository:   NewFollowRepository(db, logger),
		FavoriteRepository: NewFavoriteRepository(db, logger),
		TagRepository:      NewTagRepository(db, logger),
	}
}
