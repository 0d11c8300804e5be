package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userTestColumns = []string{"id", "username", "password", "first_name", "last_name", "email", "is_admin", "is_public", "created_at"}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username:  "alice",
		Password:  "bcrypt-hash",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		IsPublic:  true,
	}

	now := time.Now()

	rows := sqlmock.
		NewRows(userTestColumns).
		AddRow(1, user.Username, user.Password, user.FirstName, user.LastName, user.Email, false, true, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Password, user.FirstName, user.LastName, user.Email, false, true).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.Username != user.Username {
		t.Errorf("expected username %s, got %s", user.Username, created.Username)
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("expected createdAt %v, got %v", now, created.CreatedAt)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "alice"}

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if !strings.Contains(err.Error(), "alice") {
		t.Errorf("expected offending username in error, got %q", err.Error())
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, models.User{Username: "alice"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestGetUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userTestColumns).
		AddRow(3, "bob", "hash", "Bob", "Jones", "bob@example.com", false, false, now)

	mock.ExpectQuery("(?s)SELECT (.+)FROM users").
		WithArgs("bob").
		WillReturnRows(rows)

	user, err := repo.GetUserByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 3 || user.Username != "bob" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("(?s)SELECT (.+)FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByUsername(ctx, "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("expected offending username in error, got %q", err.Error())
	}
}

func TestListUsers_FilterAndOrder(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userTestColumns).
		AddRow(1, "alice", "hash", "Alice", "Smith", "alice@example.com", false, true, now).
		AddRow(2, "malice", "hash", "Mal", "Ice", "malice@example.com", false, true, now)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE is_public = (.+) AND username ILIKE (.+) ORDER BY id").
		WithArgs(true, "%ali%").
		WillReturnRows(rows)

	users, err := repo.ListUsers(ctx, models.UserFilter{
		IsPublic: boolPtr(true),
		Username: strPtr("ali"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "alice" || users[1].Username != "malice" {
		t.Errorf("unexpected result order: %+v", users)
	}
}

func TestListUsers_EmptyFilterReturnsAll(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows(userTestColumns)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
		WillReturnRows(rows)

	users, err := repo.ListUsers(ctx, models.UserFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}

func TestUpdateUser_SparseFields(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userTestColumns).
		AddRow(1, "alice", "hash", "Alicia", "Smith", "alice@example.com", false, true, now)

	mock.ExpectQuery("UPDATE users SET first_name = (.+) WHERE username = (.+) RETURNING").
		WithArgs("Alicia", "alice").
		WillReturnRows(rows)

	updated, err := repo.UpdateUser(ctx, "alice", models.UserUpdate{FirstName: strPtr("Alicia")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Alicia" {
		t.Errorf("expected first name Alicia, got %s", updated.FirstName)
	}
}

func TestUpdateUser_EmptyPayload(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	_, err := repo.UpdateUser(context.Background(), "alice", models.UserUpdate{})
	if !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}

	// no statement may be issued for an empty payload
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database interaction: %v", err)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users SET").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateUser(context.Background(), "ghost", models.UserUpdate{FirstName: strPtr("G")})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("DELETE FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	if err := repo.DeleteUser(context.Background(), "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Owned decks, cards, and relationship edges are removed by the schema's
// ON DELETE CASCADE rules, so deleting a user must issue exactly one DELETE
// and no application-level cleanup statements.
func TestDeleteUser_NoAppLevelCleanup(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("DELETE FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	if err := repo.DeleteUser(context.Background(), "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected a single DELETE statement and nothing else: %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("DELETE FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	err := repo.DeleteUser(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
