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

// followRepository is the PostgreSQL-backed implementation of
// [FollowRepository]. Follow edges carry no state beyond their ordered
// endpoint pair; the unique index on (following_user_id, followed_user_id)
// and the self-follow check constraint are the storage-level source of truth
// for the edge invariants.
type followRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFollowRepository constructs a [FollowRepository] backed by the provided
// database connection and logger.
func NewFollowRepository(db *DB, logger *logger.Logger) FollowRepository {
	logger.Debug().Msg("creating follow repository")
	return &followRepository{
		db:     db,
		logger: logger,
	}
}

// ListFollowers returns every follow edge whose target is the given user.
func (r *followRepository) ListFollowers(ctx context.Context, userID int64) ([]models.Follow, error) {
	return r.queryFollows(ctx, listFollowers, userID)
}

// ListFollowing returns every follow edge whose actor is the given user.
func (r *followRepository) ListFollowing(ctx context.Context, userID int64) ([]models.Follow, error) {
	return r.queryFollows(ctx, listFollowing, userID)
}

// GetFollow retrieves the edge for the ordered (following, followed) pair.
//
// Error handling:
//   - No matching row → [ErrFollowNotFound].
func (r *followRepository) GetFollow(ctx context.Context, followingUserID int64, followedUserID int64) (models.Follow, error) {
	log := logger.FromContext(ctx)

	var follow models.Follow
	row := r.db.QueryRowContext(ctx, getFollowByPair, followingUserID, followedUserID)

	if err := scanFollow(row, &follow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Follow{}, fmt.Errorf("%w: %d -> %d", ErrFollowNotFound, followingUserID, followedUserID)
		}

		log.Err(err).Str("func", "*followRepository.GetFollow").
			Int64("following_user_id", followingUserID).
			Int64("followed_user_id", followedUserID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: scanning error")
		return models.Follow{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return follow, nil
}

// CreateFollow inserts a new directed edge and returns it with
// server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAlreadyFollowing]. The
//     constraint is the authoritative duplicate check; two concurrent
//     identical requests can both pass the service-level pre-check, and the
//     loser of the race lands here.
//   - PostgreSQL check_violation (23514) → [ErrSelfFollow].
func (r *followRepository) CreateFollow(ctx context.Context, followingUserID int64, followedUserID int64) (models.Follow, error) {
	log := logger.FromContext(ctx)

	var follow models.Follow
	row := r.db.QueryRowContext(ctx, createFollow, followingUserID, followedUserID)

	if err := scanFollow(row, &follow); err != nil {
		log.Err(err).Str("func", "*followRepository.CreateFollow").
			Int64("following_user_id", followingUserID).
			Int64("followed_user_id", followedUserID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to insert follow")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Follow{}, fmt.Errorf("%w: %d -> %d", ErrAlreadyFollowing, followingUserID, followedUserID)
		case pgerrcode.CheckViolation:
			return models.Follow{}, fmt.Errorf("%w: %d", ErrSelfFollow, followingUserID)
		default:
			return models.Follow{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return follow, nil
}

// DeleteFollow removes the edge for the ordered (following, followed) pair.
//
// Error handling:
//   - No matching row → [ErrFollowNotFound].
func (r *followRepository) DeleteFollow(ctx context.Context, followingUserID int64, followedUserID int64) error {
	log := logger.FromContext(ctx)

	var id int64
	row := r.db.QueryRowContext(ctx, deleteFollowByPair, followingUserID, followedUserID)

	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d -> %d", ErrFollowNotFound, followingUserID, followedUserID)
		}

		log.Err(err).Str("func", "*followRepository.DeleteFollow").
			Int64("following_user_id", followingUserID).
			Int64("followed_user_id", followedUserID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to delete follow")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *followRepository) queryFollows(ctx context.Context, query string, userID int64) ([]models.Follow, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Err(err).Str("func", "*followRepository.queryFollows").
			Int64("user_id", userID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	follows := make([]models.Follow, 0)
	for rows.Next() {
		var follow models.Follow
		if err := scanFollow(rows, &follow); err != nil {
			log.Err(err).Str("func", "*followRepository.queryFollows").
				Str("classification", r.db.classify(err).String()).
				Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		follows = append(follows, follow)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*followRepository.queryFollows").
			Str("classification", r.db.classify(err).String()).
			Msg("error: rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return follows, nil
}

func scanFollow(row rowScanner, follow *models.Follow) error {
	return row.Scan(
		&follow.ID,
		&follow.FollowingUserID,
		&follow.FollowedUserID,
		&follow.CreatedAt,
	)
}
