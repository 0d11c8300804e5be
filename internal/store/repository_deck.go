package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/models"
	"github.com/jackc/pgerrcode"
)

// deckRepository is the PostgreSQL-backed implementation of [DeckRepository].
// Decks reference their owner by id in storage; every read joins back to the
// users table so returned records carry the owner's username.
type deckRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDeckRepository constructs a [DeckRepository] backed by the provided
// database connection and logger.
func NewDeckRepository(db *DB, logger *logger.Logger) DeckRepository {
	logger.Debug().Msg("creating deck repository")
	return &deckRepository{
		db:     db,
		logger: logger,
	}
}

// ListDecks returns all decks matching the filter configuration, ordered by
// the requested (allow-listed) column. An empty filter returns every deck.
func (r *deckRepository) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDecksQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*deckRepository.ListDecks").Msg("error: failed to build query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*deckRepository.ListDecks").
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	decks := make([]models.Deck, 0)
	for rows.Next() {
		var deck models.Deck
		if err := scanDeck(rows, &deck); err != nil {
			log.Err(err).Str("func", "*deckRepository.ListDecks").
				Str("classification", r.db.classify(err).String()).
				Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		decks = append(decks, deck)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*deckRepository.ListDecks").
			Str("classification", r.db.classify(err).String()).
			Msg("error: rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return decks, nil
}

// ListDecksByOwner returns every deck owned by the given user id in creation
// order. Unlike [ListDecks] the owner match is exact, which makes it the
// right call for profile aggregation.
func (r *deckRepository) ListDecksByOwner(ctx context.Context, userID int64) ([]models.Deck, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listDecksByOwner, userID)
	if err != nil {
		log.Err(err).Str("func", "*deckRepository.ListDecksByOwner").Int64("user_id", userID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	decks := make([]models.Deck, 0)
	for rows.Next() {
		var deck models.Deck
		if err := scanDeck(rows, &deck); err != nil {
			log.Err(err).Str("func", "*deckRepository.ListDecksByOwner").
				Str("classification", r.db.classify(err).String()).
				Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		decks = append(decks, deck)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*deckRepository.ListDecksByOwner").
			Str("classification", r.db.classify(err).String()).
			Msg("error: rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return decks, nil
}

// GetDeckByOwnerAndSlug retrieves a deck by its natural key: the owner's
// username and the deck slug.
//
// Error handling:
//   - No matching row → [ErrDeckNotFound].
func (r *deckRepository) GetDeckByOwnerAndSlug(ctx context.Context, username string, slug string) (models.Deck, error) {
	log := logger.FromContext(ctx)

	var deck models.Deck
	row := r.db.QueryRowContext(ctx, getDeckByOwnerAndSlug, username, slug)

	if err := scanDeck(row, &deck); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Deck{}, fmt.Errorf("%w: %s/%s", ErrDeckNotFound, username, slug)
		}

		log.Err(err).Str("func", "*deckRepository.GetDeckByOwnerAndSlug").
			Str("username", username).Str("slug", slug).
			Str("classification", r.db.classify(err).String()).
			Msg("error: scanning error")
		return models.Deck{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return deck, nil
}

// CreateDeck persists a new deck. The owner reference (deck.Username) is
// resolved to a users row first; a missing owner fails with [ErrUserNotFound]
// before the INSERT is attempted.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on (user_id, slug) → [ErrDuplicateSlug].
func (r *deckRepository) CreateDeck(ctx context.Context, deck models.Deck) (models.Deck, error) {
	log := logger.FromContext(ctx)

	ownerID, err := r.resolveOwnerID(ctx, deck.Username)
	if err != nil {
		return models.Deck{}, err
	}

	created := models.Deck{Username: deck.Username}
	row := r.db.QueryRowContext(ctx, createDeck,
		ownerID, deck.Title, deck.Description, deck.Slug, deck.IsPublic)

	if err := scanDeckBase(row, &created); err != nil {
		log.Err(err).Str("func", "*deckRepository.CreateDeck").
			Str("username", deck.Username).Str("slug", deck.Slug).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to insert deck")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Deck{}, fmt.Errorf("%w: %s/%s", ErrDuplicateSlug, deck.Username, deck.Slug)
		default:
			return models.Deck{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return created, nil
}

// UpdateDeck applies a sparse update keyed by the deck's natural key. The
// deck is resolved first so a missing key fails with [ErrDeckNotFound] and
// the UPDATE itself runs against the resolved id.
func (r *deckRepository) UpdateDeck(ctx context.Context, username string, slug string, upd models.DeckUpdate) (models.Deck, error) {
	log := logger.FromContext(ctx)

	deck, err := r.GetDeckByOwnerAndSlug(ctx, username, slug)
	if err != nil {
		return models.Deck{}, err
	}

	query, args, err := buildUpdateDeckQuery(deck.ID, upd)
	if err != nil {
		log.Err(err).Str("func", "*deckRepository.UpdateDeck").
			Str("username", username).Str("slug", slug).Msg("error: failed to build query")
		return models.Deck{}, err
	}

	updated := models.Deck{Username: username}
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := scanDeckBase(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Deck{}, fmt.Errorf("%w: %s/%s", ErrDeckNotFound, username, slug)
		}

		log.Err(err).Str("func", "*deckRepository.UpdateDeck").
			Str("username", username).Str("slug", slug).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to update deck")
		return models.Deck{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// DeleteDeck removes a deck by its natural key. Cards, tag associations, and
// favorite edges pointing at the deck are removed by ON DELETE CASCADE.
//
// Error handling:
//   - No matching row → [ErrDeckNotFound].
func (r *deckRepository) DeleteDeck(ctx context.Context, username string, slug string) error {
	log := logger.FromContext(ctx)

	var id int64
	row := r.db.QueryRowContext(ctx, deleteDeckByOwnerAndSlug, username, slug)

	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s/%s", ErrDeckNotFound, username, slug)
		}

		log.Err(err).Str("func", "*deckRepository.DeleteDeck").
			Str("username", username).Str("slug", slug).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to delete deck")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *deckRepository) resolveOwnerID(ctx context.Context, username string) (int64, error) {
	log := logger.FromContext(ctx)

	var ownerID int64
	row := r.db.QueryRowContext(ctx, getUserIDByUsername, username)

	if err := row.Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}

		log.Err(err).Str("func", "*deckRepository.resolveOwnerID").Str("username", username).
			Str("classification", r.db.classify(err).String()).
			Msg("error: scanning error")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return ownerID, nil
}

func scanDeck(row rowScanner, deck *models.Deck) error {
	return row.Scan(
		&deck.ID,
		&deck.Title,
		&deck.Description,
		&deck.Slug,
		&deck.Username,
		&deck.IsPublic,
		&deck.CreatedAt,
	)
}

// scanDeckBase scans a deck row without the joined owner username, as
// returned by INSERT/UPDATE RETURNING clauses.
func scanDeckBase(row rowScanner, deck *models.Deck) error {
	return row.Scan(
		&deck.ID,
		&deck.Title,
		&deck.Description,
		&deck.Slug,
		&deck.IsPublic,
		&deck.CreatedAt,
	)
}
