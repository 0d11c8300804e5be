package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/store"
	"github.com/cardify/cardify-server/models"
	"golang.org/x/sync/errgroup"
)

// deckService is the concrete implementation of DeckService. It derives deck
// slugs from titles at creation time, expands single-deck reads with cards
// and tags, and manages the deck's tag associations.
type deckService struct {
	deckRepository store.DeckRepository
	cardRepository store.CardRepository
	tagRepository  store.TagRepository

	logger *logger.Logger
}

// NewDeckService constructs a DeckService on top of the given repositories.
func NewDeckService(repos *store.Repositories, logger *logger.Logger) DeckService {
	return &deckService{
		deckRepository: repos.DeckRepository,
		cardRepository: repos.CardRepository,
		tagRepository:  repos.TagRepository,
		logger:         logger,
	}
}

// ListDecks returns all decks matching the filter configuration.
func (s *deckService) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	decks, err := s.deckRepository.ListDecks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing decks failed: %w", err)
	}

	return decks, nil
}

// GetDeck returns the aggregated view of a deck: the deck record plus its
// cards in creation order and its tag names in association order. The two
// collection reads run concurrently; no partial result is returned on error.
func (s *deckService) GetDeck(ctx context.Context, username string, slug string) (models.DeckDetail, error) {
	deck, err := s.deckRepository.GetDeckByOwnerAndSlug(ctx, username, slug)
	if err != nil {
		return models.DeckDetail{}, fmt.Errorf("deck search failed: %w", err)
	}

	detail, err := expandDeck(ctx, s.cardRepository, s.tagRepository, deck)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Err(err).Str("username", username).Str("slug", slug).Msg("deck aggregation failed")
		return models.DeckDetail{}, err
	}

	return detail, nil
}

// CreateDeck persists a new deck. The slug is derived from the title here
// and never changes afterwards, even if the title is updated later.
//
// Returns ErrInvalidDataProvided when the title or the owner username is
// empty or when the title yields an empty slug.
func (s *deckService) CreateDeck(ctx context.Context, deck models.Deck) (models.Deck, error) {
	log := logger.FromContext(ctx)

	if deck.Title == "" || deck.Username == "" {
		log.Error().Str("username", deck.Username).Str("title", deck.Title).Msg("invalid deck data provided")
		return models.Deck{}, ErrInvalidDataProvided
	}

	deck.Slug = Slugify(deck.Title)
	if deck.Slug == "" {
		log.Error().Str("title", deck.Title).Msg("title yields empty slug")
		return models.Deck{}, ErrInvalidDataProvided
	}

	created, err := s.deckRepository.CreateDeck(ctx, deck)
	if err != nil {
		log.Err(err).Str("username", deck.Username).Str("slug", deck.Slug).Msg("deck creation ended with error")
		return models.Deck{}, fmt.Errorf("deck creation ended with error: %w", err)
	}

	return created, nil
}

// UpdateDeck applies a sparse update keyed by the deck's natural key.
func (s *deckService) UpdateDeck(ctx context.Context, username string, slug string, upd models.DeckUpdate) (models.Deck, error) {
	deck, err := s.deckRepository.UpdateDeck(ctx, username, slug, upd)
	if err != nil {
		return models.Deck{}, fmt.Errorf("deck update failed: %w", err)
	}

	return deck, nil
}

// DeleteDeck removes a deck by its natural key.
func (s *deckService) DeleteDeck(ctx context.Context, username string, slug string) error {
	if err := s.deckRepository.DeleteDeck(ctx, username, slug); err != nil {
		return fmt.Errorf("deck deletion failed: %w", err)
	}

	return nil
}

// AddTag attaches a tag to the deck, creating the tag row on first use, and
// returns the deck's updated tag name list.
func (s *deckService) AddTag(ctx context.Context, username string, slug string, tagName string) ([]string, error) {
	log := logger.FromContext(ctx)

	if tagName == "" {
		log.Error().Str("username", username).Str("slug", slug).Msg("empty tag name provided")
		return nil, ErrInvalidDataProvided
	}

	deck, err := s.deckRepository.GetDeckByOwnerAndSlug(ctx, username, slug)
	if err != nil {
		return nil, fmt.Errorf("deck search failed: %w", err)
	}

	tag, err := s.tagRepository.GetOrCreateTag(ctx, tagName)
	if err != nil {
		return nil, fmt.Errorf("tag resolution failed: %w", err)
	}

	if _, err := s.tagRepository.AddTagToDeck(ctx, deck.ID, tag.ID); err != nil {
		return nil, fmt.Errorf("tag association failed: %w", err)
	}

	return s.tagRepository.ListTagNamesByDeck(ctx, deck.ID)
}

// RemoveTag detaches a tag from the deck and returns the deck's updated tag
// name list. The tag row itself is left in place for other decks.
func (s *deckService) RemoveTag(ctx context.Context, username string, slug string, tagName string) ([]string, error) {
	deck, err := s.deckRepository.GetDeckByOwnerAndSlug(ctx, username, slug)
	if err != nil {
		return nil, fmt.Errorf("deck search failed: %w", err)
	}

	tag, err := s.tagRepository.GetTagByName(ctx, tagName)
	if err != nil {
		return nil, fmt.Errorf("tag search failed: %w", err)
	}

	if err := s.tagRepository.RemoveTagFromDeck(ctx, deck.ID, tag.ID); err != nil {
		return nil, fmt.Errorf("tag dissociation failed: %w", err)
	}

	return s.tagRepository.ListTagNamesByDeck(ctx, deck.ID)
}

// expandDeck loads a deck's cards and tag names concurrently and assembles
// the aggregated view. Both collections come back non-nil.
func expandDeck(ctx context.Context, cards store.CardRepository, tags store.TagRepository, deck models.Deck) (models.DeckDetail, error) {
	detail := models.DeckDetail{Deck: deck}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deckCards, err := cards.ListCardsByDeck(gctx, deck.ID)
		if err != nil {
			return fmt.Errorf("listing cards failed: %w", err)
		}
		detail.Cards = deckCards
		return nil
	})

	g.Go(func() error {
		tagNames, err := tags.ListTagNamesByDeck(gctx, deck.ID)
		if err != nil {
			return fmt.Errorf("listing tags failed: %w", err)
		}
		detail.Tags = tagNames
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.DeckDetail{}, err
	}

	return detail, nil
}

// Slugify derives the URL-safe slug from a deck title: lower-cased, with
// every run of non-alphanumeric characters collapsed into a single hyphen
// and leading/trailing hyphens trimmed. "Spanish Verbs" becomes
// "spanish-verbs".
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}
