package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/store"
	"github.com/cardify/cardify-server/models"
	"golang.org/x/sync/errgroup"
)

// socialService is the concrete implementation of SocialService. A
// self-follow is rejected before anything else, even when the username does
// not exist; after that every operation resolves its endpoints (users, or a
// user and a deck) so a dangling reference surfaces as NotFound rather than
// Conflict, then checks the relationship invariant. The pre-checks are not
// atomic against racing identical requests; the storage layer's unique
// constraints are the actual backstop and map to the same sentinel errors.
type socialService struct {
	userRepository     store.UserRepository
	deckRepository     store.DeckRepository
	followRepository   store.FollowRepository
	favoriteRepository store.FavoriteRepository

	logger *logger.Logger
}

// NewSocialService constructs a SocialService on top of the given repositories.
func NewSocialService(repos *store.Repositories, logger *logger.Logger) SocialService {
	return &socialService{
		userRepository:     repos.UserRepository,
		deckRepository:     repos.DeckRepository,
		followRepository:   repos.FollowRepository,
		favoriteRepository: repos.FavoriteRepository,
		logger:             logger,
	}
}

// ListFollowers returns the follow edges pointing at the given user.
// An unknown username is store.ErrUserNotFound.
func (s *socialService) ListFollowers(ctx context.Context, username string) ([]models.Follow, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.followRepository.ListFollowers(ctx, user.ID)
}

// ListFollowing returns the follow edges originating from the given user.
// An unknown username is store.ErrUserNotFound.
func (s *socialService) ListFollowing(ctx context.Context, username string) ([]models.Follow, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.followRepository.ListFollowing(ctx, user.ID)
}

// Follow creates a directed follow edge from follower to followed.
//
// Failure order: a follower following themselves is store.ErrSelfFollow
// whether or not the username exists; either username failing to resolve is
// NotFound; an existing edge is store.ErrAlreadyFollowing. On success the new
// edge is returned together with a confirmation message.
func (s *socialService) Follow(ctx context.Context, followerUsername string, followedUsername string) (models.FollowResult, error) {
	log := logger.FromContext(ctx)

	if followerUsername == followedUsername {
		log.Error().Str("username", followerUsername).Msg("self-follow rejected")
		return models.FollowResult{}, fmt.Errorf("%w: %s", store.ErrSelfFollow, followerUsername)
	}

	follower, followed, err := s.resolveUserPair(ctx, followerUsername, followedUsername)
	if err != nil {
		return models.FollowResult{}, err
	}

	if _, err := s.followRepository.GetFollow(ctx, follower.ID, followed.ID); err == nil {
		return models.FollowResult{}, fmt.Errorf("%w: %s is already following %s",
			store.ErrAlreadyFollowing, followerUsername, followedUsername)
	} else if !errors.Is(err, store.ErrFollowNotFound) {
		return models.FollowResult{}, fmt.Errorf("follow lookup failed: %w", err)
	}

	follow, err := s.followRepository.CreateFollow(ctx, follower.ID, followed.ID)
	if err != nil {
		log.Err(err).
			Str("follower", followerUsername).
			Str("followed", followedUsername).
			Msg("follow creation ended with error")
		return models.FollowResult{}, fmt.Errorf("follow creation ended with error: %w", err)
	}

	return models.FollowResult{
		Follow:  follow,
		Message: fmt.Sprintf("%s subscribed to %s's feed.", followerUsername, followedUsername),
	}, nil
}

// Unfollow removes the directed follow edge from follower to followed and
// returns a confirmation message. A missing edge is store.ErrFollowNotFound.
func (s *socialService) Unfollow(ctx context.Context, followerUsername string, followedUsername string) (string, error) {
	log := logger.FromContext(ctx)

	if followerUsername == followedUsername {
		log.Error().Str("username", followerUsername).Msg("self-unfollow rejected")
		return "", fmt.Errorf("%w: %s", store.ErrSelfFollow, followerUsername)
	}

	follower, followed, err := s.resolveUserPair(ctx, followerUsername, followedUsername)
	if err != nil {
		return "", err
	}

	if err := s.followRepository.DeleteFollow(ctx, follower.ID, followed.ID); err != nil {
		if errors.Is(err, store.ErrFollowNotFound) {
			return "", fmt.Errorf("%w: %s is not following %s",
				store.ErrFollowNotFound, followerUsername, followedUsername)
		}

		log.Err(err).
			Str("follower", followerUsername).
			Str("followed", followedUsername).
			Msg("follow deletion ended with error")
		return "", fmt.Errorf("follow deletion ended with error: %w", err)
	}

	return fmt.Sprintf("%s successfully unfollowed %s.", followerUsername, followedUsername), nil
}

// Favorite creates a favorite edge from the user to the deck addressed by
// (ownerUsername, slug).
//
// Failure order: the user or the deck failing to resolve is NotFound; an
// existing edge is store.ErrAlreadyFavorited. On success the new edge is
// returned together with a confirmation message naming the deck title.
func (s *socialService) Favorite(ctx context.Context, username string, ownerUsername string, slug string) (models.FavoriteResult, error) {
	log := logger.FromContext(ctx)

	user, deck, err := s.resolveUserAndDeck(ctx, username, ownerUsername, slug)
	if err != nil {
		return models.FavoriteResult{}, err
	}

	if _, err := s.favoriteRepository.GetFavorite(ctx, user.ID, deck.ID); err == nil {
		return models.FavoriteResult{}, fmt.Errorf("%w: %s has already favorited %s",
			store.ErrAlreadyFavorited, username, deck.Title)
	} else if !errors.Is(err, store.ErrFavoriteNotFound) {
		return models.FavoriteResult{}, fmt.Errorf("favorite lookup failed: %w", err)
	}

	favorite, err := s.favoriteRepository.CreateFavorite(ctx, user.ID, deck.ID)
	if err != nil {
		log.Err(err).
			Str("username", username).
			Str("deck", ownerUsername+"/"+slug).
			Msg("favorite creation ended with error")
		return models.FavoriteResult{}, fmt.Errorf("favorite creation ended with error: %w", err)
	}

	return models.FavoriteResult{
		Favorite: favorite,
		Message:  fmt.Sprintf("%s added %s to their favorites.", username, deck.Title),
	}, nil
}

// Unfavorite removes the favorite edge from the user to the deck and returns
// a confirmation message. A missing edge is store.ErrFavoriteNotFound.
func (s *socialService) Unfavorite(ctx context.Context, username string, ownerUsername string, slug string) (string, error) {
	log := logger.FromContext(ctx)

	user, deck, err := s.resolveUserAndDeck(ctx, username, ownerUsername, slug)
	if err != nil {
		return "", err
	}

	if err := s.favoriteRepository.DeleteFavorite(ctx, user.ID, deck.ID); err != nil {
		if errors.Is(err, store.ErrFavoriteNotFound) {
			return "", fmt.Errorf("%w: %s has not yet favorited %s",
				store.ErrFavoriteNotFound, username, deck.Title)
		}

		log.Err(err).
			Str("username", username).
			Str("deck", ownerUsername+"/"+slug).
			Msg("favorite deletion ended with error")
		return "", fmt.Errorf("favorite deletion ended with error: %w", err)
	}

	return fmt.Sprintf("%s successfully removed %s from their favorites list.", username, deck.Title), nil
}

// resolveUserPair looks up both endpoint users concurrently. Either lookup
// failing cancels the other and the error propagates unchanged, so a missing
// username keeps its store.ErrUserNotFound identity.
func (s *socialService) resolveUserPair(ctx context.Context, firstUsername string, secondUsername string) (models.User, models.User, error) {
	var first, second models.User

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.userRepository.GetUserByUsername(gctx, firstUsername)
		if err != nil {
			return err
		}
		first = user
		return nil
	})

	g.Go(func() error {
		user, err := s.userRepository.GetUserByUsername(gctx, secondUsername)
		if err != nil {
			return err
		}
		second = user
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.User{}, models.User{}, err
	}

	return first, second, nil
}

// resolveUserAndDeck looks up the acting user and the target deck
// concurrently, preserving store.ErrUserNotFound / store.ErrDeckNotFound
// identities on failure.
func (s *socialService) resolveUserAndDeck(ctx context.Context, username string, ownerUsername string, slug string) (models.User, models.Deck, error) {
	var user models.User
	var deck models.Deck

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found, err := s.userRepository.GetUserByUsername(gctx, username)
		if err != nil {
			return err
		}
		user = found
		return nil
	})

	g.Go(func() error {
		found, err := s.deckRepository.GetDeckByOwnerAndSlug(gctx, ownerUsername, slug)
		if err != nil {
			return err
		}
		deck = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.User{}, models.Deck{}, err
	}

	return user, deck, nil
}
