package service

import (
	"context"
	"fmt"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/store"
	"github.com/cardify/cardify-server/models"
)

// cardService is the concrete implementation of CardService.
type cardService struct {
	cardRepository store.CardRepository

	logger *logger.Logger
}

// NewCardService constructs a CardService on top of the given repositories.
func NewCardService(repos *store.Repositories, logger *logger.Logger) CardService {
	return &cardService{
		cardRepository: repos.CardRepository,
		logger:         logger,
	}
}

// ListCards returns all cards matching the filter configuration.
func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	cards, err := s.cardRepository.ListCards(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing cards failed: %w", err)
	}

	return cards, nil
}

// GetCard retrieves a single card by id.
func (s *cardService) GetCard(ctx context.Context, id int64) (models.Card, error) {
	card, err := s.cardRepository.GetCard(ctx, id)
	if err != nil {
		return models.Card{}, fmt.Errorf("card search failed: %w", err)
	}

	return card, nil
}

// CreateCard persists a new card into the deck addressed by the card's
// (username, deckSlug) reference. A missing deck surfaces as
// store.ErrDeckNotFound before anything is inserted.
//
// Returns ErrInvalidDataProvided when the deck reference or the front text
// is empty. An empty back is allowed; a card can pose a prompt with no
// answer yet.
func (s *cardService) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	if card.Username == "" || card.DeckSlug == "" || card.Front == "" {
		log.Error().
			Str("username", card.Username).
			Str("deck_slug", card.DeckSlug).
			Msg("invalid card data provided")
		return models.Card{}, ErrInvalidDataProvided
	}

	created, err := s.cardRepository.CreateCard(ctx, card)
	if err != nil {
		log.Err(err).
			Str("username", card.Username).
			Str("deck_slug", card.DeckSlug).
			Msg("card creation ended with error")
		return models.Card{}, fmt.Errorf("card creation ended with error: %w", err)
	}

	return created, nil
}

// UpdateCard applies a sparse update keyed by the card's id.
func (s *cardService) UpdateCard(ctx context.Context, id int64, upd models.CardUpdate) (models.Card, error) {
	card, err := s.cardRepository.UpdateCard(ctx, id, upd)
	if err != nil {
		return models.Card{}, fmt.Errorf("card update failed: %w", err)
	}

	return card, nil
}

// DeleteCard removes a card by id.
func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	if err := s.cardRepository.DeleteCard(ctx, id); err != nil {
		return fmt.Errorf("card deletion failed: %w", err)
	}

	return nil
}
