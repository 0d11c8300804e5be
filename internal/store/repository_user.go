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

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, filtered listing, sparse updates, and
// deletion against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// ListUsers returns all users matching the filter configuration, ordered by
// the requested (allow-listed) column. An empty filter returns every user.
func (r *userRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: failed to build query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").
				Str("classification", r.db.classify(err).String()).
				Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").
			Str("classification", r.db.classify(err).String()).
			Msg("error: rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// GetUserByUsername retrieves the user record whose username matches exactly.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as [ErrScanningRow].
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, getUserByUsername, username)

	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}

		log.Err(err).Str("func", "*userRepository.GetUserByUsername").Str("username", username).
			Str("classification", r.db.classify(err).String()).
			Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameTaken]. The unique
//     index on username is the authoritative duplicate check; any
//     application-level pre-check only produces a friendlier early error.
//   - Any other driver-level error → wrapped as [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.IsAdmin, user.IsPublic)

	if err := scanUser(row, &user); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to insert user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, fmt.Errorf("%w: %s", ErrUsernameTaken, user.Username)
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return user, nil
}

// UpdateUser applies a sparse update keyed by username. Only the fields
// present in upd appear in the SET clause.
//
// Error handling:
//   - Empty payload → [ErrEmptyUpdate] before any statement is issued.
//   - No matching row → [ErrUserNotFound].
func (r *userRepository) UpdateUser(ctx context.Context, username string, upd models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(username, upd)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Str("username", username).Msg("error: failed to build query")
		return models.User{}, err
	}

	var user models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}

		log.Err(err).Str("func", "*userRepository.UpdateUser").Str("username", username).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to update user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// DeleteUser removes the user row keyed by username. Owned decks, cards, and
// relationship edges are removed by the schema's ON DELETE CASCADE rules, so
// no orphaned rows remain.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
func (r *userRepository) DeleteUser(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	var id int64
	row := r.db.QueryRowContext(ctx, deleteUserByUsername, username)

	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}

		log.Err(err).Str("func", "*userRepository.DeleteUser").Str("username", username).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to delete user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.IsAdmin,
		&user.IsPublic,
		&user.CreatedAt,
	)
}
