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

// favoriteRepository is the PostgreSQL-backed implementation of
// [FavoriteRepository]. The unique index on (user_id, deck_id) is the
// storage-level source of truth for edge uniqueness.
type favoriteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFavoriteRepository constructs a [FavoriteRepository] backed by the
// provided database connection and logger.
func NewFavoriteRepository(db *DB, logger *logger.Logger) FavoriteRepository {
	logger.Debug().Msg("creating favorite repository")
	return &favoriteRepository{
		db:     db,
		logger: logger,
	}
}

// ListFavoritesByUser returns every favorite edge belonging to the user.
func (r *favoriteRepository) ListFavoritesByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listFavoritesByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*favoriteRepository.ListFavoritesByUser").Int64("user_id", userID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	favorites := make([]models.Favorite, 0)
	for rows.Next() {
		var favorite models.Favorite
		if err := scanFavorite(rows, &favorite); err != nil {
			log.Err(err).Str("func", "*favoriteRepository.ListFavoritesByUser").
				Str("classification", r.db.classify(err).String()).
				Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*favoriteRepository.ListFavoritesByUser").
			Str("classification", r.db.classify(err).String()).
			Msg("error: rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return favorites, nil
}

// GetFavorite retrieves the edge for the (user, deck) pair.
//
// Error handling:
//   - No matching row → [ErrFavoriteNotFound].
func (r *favoriteRepository) GetFavorite(ctx context.Context, userID int64, deckID int64) (models.Favorite, error) {
	log := logger.FromContext(ctx)

	var favorite models.Favorite
	row := r.db.QueryRowContext(ctx, getFavoriteByPair, userID, deckID)

	if err := scanFavorite(row, &favorite); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Favorite{}, fmt.Errorf("%w: user %d, deck %d", ErrFavoriteNotFound, userID, deckID)
		}

		log.Err(err).Str("func", "*favoriteRepository.GetFavorite").
			Int64("user_id", userID).Int64("deck_id", deckID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: scanning error")
		return models.Favorite{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return favorite, nil
}

// CreateFavorite inserts a new (user, deck) edge and returns it with
// server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAlreadyFavorited]. The
//     constraint closes the race window left by any service-level pre-check.
func (r *favoriteRepository) CreateFavorite(ctx context.Context, userID int64, deckID int64) (models.Favorite, error) {
	log := logger.FromContext(ctx)

	var favorite models.Favorite
	row := r.db.QueryRowContext(ctx, createFavorite, userID, deckID)

	if err := scanFavorite(row, &favorite); err != nil {
		log.Err(err).Str("func", "*favoriteRepository.CreateFavorite").
			Int64("user_id", userID).Int64("deck_id", deckID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to insert favorite")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Favorite{}, fmt.Errorf("%w: user %d, deck %d", ErrAlreadyFavorited, userID, deckID)
		default:
			return models.Favorite{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return favorite, nil
}

// DeleteFavorite removes the edge for the (user, deck) pair.
//
// Error handling:
//   - No matching row → [ErrFavoriteNotFound].
func (r *favoriteRepository) DeleteFavorite(ctx context.Context, userID int64, deckID int64) error {
	log := logger.FromContext(ctx)

	var id int64
	row := r.db.QueryRowContext(ctx, deleteFavoriteByPair, userID, deckID)

	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: user %d, deck %d", ErrFavoriteNotFound, userID, deckID)
		}

		log.Err(err).Str("func", "*favoriteRepository.DeleteFavorite").
			Int64("user_id", userID).Int64("deck_id", deckID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to delete favorite")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func scanFavorite(row rowScanner, favorite *models.Favorite) error {
	return row.Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.DeckID,
		&favorite.CreatedAt,
	)
}
