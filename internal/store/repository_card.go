package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/models"
)

// cardRepository is the PostgreSQL-backed implementation of [CardRepository].
// Storage references the owning deck by id; reads join through decks and
// users so every returned card carries the deck slug and owner username.
type cardRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCardRepository constructs a [CardRepository] backed by the provided
// database connection and logger.
func NewCardRepository(db *DB, logger *logger.Logger) CardRepository {
	logger.Debug().Msg("creating card repository")
	return &cardRepository{
		db:     db,
		logger: logger,
	}
}

// ListCards returns all cards matching the filter configuration.
func (r *cardRepository) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCardsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.ListCards").Msg("error: failed to build query")
		return nil, err
	}

	return r.queryCards(ctx, query, args...)
}

// ListCardsByDeck returns all cards of one deck in creation order. A deck
// with no cards yields an empty, non-nil slice.
func (r *cardRepository) ListCardsByDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	return r.queryCards(ctx, listCardsByDeck, deckID)
}

// GetCard retrieves a card by id.
//
// Error handling:
//   - No matching row → [ErrCardNotFound].
func (r *cardRepository) GetCard(ctx context.Context, id int64) (models.Card, error) {
	log := logger.FromContext(ctx)

	var card models.Card
	row := r.db.QueryRowContext(ctx, getCardByID, id)

	if err := scanCard(row, &card); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Card{}, fmt.Errorf("%w: %d", ErrCardNotFound, id)
		}

		log.Err(err).Str("func", "*cardRepository.GetCard").Int64("id", id).
			Str("classification", r.db.classify(err).String()).
			Msg("error: scanning error")
		return models.Card{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return card, nil
}

// CreateCard persists a new card. The owning deck reference (card.Username,
// card.DeckSlug) must resolve to an existing deck; otherwise the operation
// fails with [ErrDeckNotFound] and nothing is inserted.
func (r *cardRepository) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	deckID, err := r.resolveDeckID(ctx, card.Username, card.DeckSlug)
	if err != nil {
		return models.Card{}, err
	}

	created := models.Card{Username: card.Username, DeckSlug: card.DeckSlug}
	row := r.db.QueryRowContext(ctx, createCard, deckID, card.Front, card.Back)

	if err := scanCardBase(row, &created); err != nil {
		log.Err(err).Str("func", "*cardRepository.CreateCard").
			Str("username", card.Username).Str("deck_slug", card.DeckSlug).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to insert card")
		return models.Card{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// UpdateCard applies a sparse update keyed by card id.
//
// Error handling:
//   - Empty payload → [ErrEmptyUpdate] before any statement is issued.
//   - No matching row → [ErrCardNotFound].
func (r *cardRepository) UpdateCard(ctx context.Context, id int64, upd models.CardUpdate) (models.Card, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCardQuery(id, upd)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.UpdateCard").Int64("id", id).Msg("error: failed to build query")
		return models.Card{}, err
	}

	var card models.Card
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := scanCardBase(row, &card); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Card{}, fmt.Errorf("%w: %d", ErrCardNotFound, id)
		}

		log.Err(err).Str("func", "*cardRepository.UpdateCard").Int64("id", id).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to update card")
		return models.Card{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return card, nil
}

// DeleteCard removes a card by id.
//
// Error handling:
//   - No matching row → [ErrCardNotFound].
func (r *cardRepository) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	var deleted int64
	row := r.db.QueryRowContext(ctx, deleteCardByID, id)

	if err := row.Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrCardNotFound, id)
		}

		log.Err(err).Str("func", "*cardRepository.DeleteCard").Int64("id", id).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to delete card")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *cardRepository) queryCards(ctx context.Context, query string, args ...any) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.queryCards").
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cards := make([]models.Card, 0)
	for rows.Next() {
		var card models.Card
		if err := scanCard(rows, &card); err != nil {
			log.Err(err).Str("func", "*cardRepository.queryCards").
				Str("classification", r.db.classify(err).String()).
				Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*cardRepository.queryCards").
			Str("classification", r.db.classify(err).String()).
			Msg("error: rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cards, nil
}

func (r *cardRepository) resolveDeckID(ctx context.Context, username string, slug string) (int64, error) {
	log := logger.FromContext(ctx)

	var deckID int64
	row := r.db.QueryRowContext(ctx, getDeckIDByOwnerAndSlug, username, slug)

	if err := row.Scan(&deckID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s/%s", ErrDeckNotFound, username, slug)
		}

		log.Err(err).Str("func", "*cardRepository.resolveDeckID").
			Str("username", username).Str("slug", slug).
			Str("classification", r.db.classify(err).String()).
			Msg("error: scanning error")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return deckID, nil
}

func scanCard(row rowScanner, card *models.Card) error {
	return row.Scan(
		&card.ID,
		&card.DeckID,
		&card.DeckSlug,
		&card.Username,
		&card.Front,
		&card.Back,
		&card.CreatedAt,
	)
}

// scanCardBase scans a card row without the joined deck slug and username,
// as returned by INSERT/UPDATE RETURNING clauses.
func scanCardBase(row rowScanner, card *models.Card) error {
	return row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&card.CreatedAt,
	)
}
