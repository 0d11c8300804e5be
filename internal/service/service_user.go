package service

import (
	"context"
	"fmt"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/store"
	"github.com/cardify/cardify-server/models"
	"golang.org/x/sync/errgroup"
)

// userService is the concrete implementation of UserService. Beyond plain
// CRUD pass-through it owns the profile aggregation: one user record fanned
// out to its decks (each expanded with cards and tags), both directions of
// follow edges, and favorites.
type userService struct {
	userRepository     store.UserRepository
	deckRepository     store.DeckRepository
	cardRepository     store.CardRepository
	followRepository   store.FollowRepository
	favoriteRepository store.FavoriteRepository
	tagRepository      store.TagRepository

	logger *logger.Logger
}

// NewUserService constructs a UserService on top of the given repositories.
func NewUserService(repos *store.Repositories, logger *logger.Logger) UserService {
	return &userService{
		userRepository:     repos.UserRepository,
		deckRepository:     repos.DeckRepository,
		cardRepository:     repos.CardRepository,
		followRepository:   repos.FollowRepository,
		favoriteRepository: repos.FavoriteRepository,
		tagRepository:      repos.TagRepository,
		logger:             logger,
	}
}

// ListUsers returns all users matching the filter configuration. Password
// hashes are cleared before the records leave the service layer.
func (s *userService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// GetProfile returns the aggregated view of a user: account fields plus all
// owned decks with their cards and tags, followers, following, and favorites.
//
// The four collection reads are independent and are issued concurrently; the
// shared errgroup context cancels the remaining reads as soon as any one of
// them fails, and no partial profile is ever returned.
func (s *userService) GetProfile(ctx context.Context, username string) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("user search by username failed: %w", err)
	}
	user.Password = ""

	profile := models.UserProfile{User: user}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		decks, err := s.deckRepository.ListDecksByOwner(gctx, user.ID)
		if err != nil {
			return fmt.Errorf("listing decks failed: %w", err)
		}

		details := make([]models.DeckDetail, len(decks))

		dg, dctx := errgroup.WithContext(gctx)
		for i, deck := range decks {
			dg.Go(func() error {
				detail, err := expandDeck(dctx, s.cardRepository, s.tagRepository, deck)
				if err != nil {
					return err
				}
				details[i] = detail
				return nil
			})
		}
		if err := dg.Wait(); err != nil {
			return err
		}

		profile.Decks = details
		return nil
	})

	g.Go(func() error {
		followers, err := s.followRepository.ListFollowers(gctx, user.ID)
		if err != nil {
			return fmt.Errorf("listing followers failed: %w", err)
		}
		profile.Followers = followers
		return nil
	})

	g.Go(func() error {
		following, err := s.followRepository.ListFollowing(gctx, user.ID)
		if err != nil {
			return fmt.Errorf("listing following failed: %w", err)
		}
		profile.Following = following
		return nil
	})

	g.Go(func() error {
		favorites, err := s.favoriteRepository.ListFavoritesByUser(gctx, user.ID)
		if err != nil {
			return fmt.Errorf("listing favorites failed: %w", err)
		}
		profile.Favorites = favorites
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Err(err).Str("username", username).Msg("profile aggregation failed")
		return models.UserProfile{}, err
	}

	return profile, nil
}

// UpdateUser applies a sparse update to the account keyed by username.
func (s *userService) UpdateUser(ctx context.Context, username string, upd models.UserUpdate) (models.User, error) {
	user, err := s.userRepository.UpdateUser(ctx, username, upd)
	if err != nil {
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	user.Password = ""
	return user, nil
}

// DeleteUser removes the account. Owned decks, follow edges, and favorites
// are removed by the storage layer's cascades.
func (s *userService) DeleteUser(ctx context.Context, username string) error {
	if err := s.userRepository.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}
