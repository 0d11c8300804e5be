package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify_RetryableCodes(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	codes := []string{
		pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow,
	}

	for _, code := range codes {
		got := classifier.Classify(&pgconn.PgError{Code: code})
		if got != Retryable {
			t.Errorf("code %s: expected Retryable, got %v", code, got)
		}
	}
}

func TestClassify_NonRetryableCodes(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	codes := []string{
		pgerrcode.UniqueViolation,
		pgerrcode.ForeignKeyViolation,
		pgerrcode.CheckViolation,
		pgerrcode.SyntaxError,
		pgerrcode.UndefinedTable,
	}

	for _, code := range codes {
		got := classifier.Classify(&pgconn.PgError{Code: code})
		if got != NonRetryable {
			t.Errorf("code %s: expected NonRetryable, got %v", code, got)
		}
	}
}

func TestClassify_NilAndNonPostgresErrors(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	if got := classifier.Classify(nil); got != NonRetryable {
		t.Errorf("nil error: expected NonRetryable, got %v", got)
	}

	if got := classifier.Classify(errors.New("plain error")); got != NonRetryable {
		t.Errorf("non-postgres error: expected NonRetryable, got %v", got)
	}
}

func TestClassify_WrappedPgError(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	wrapped := errors.Join(errors.New("query failed"), &pgconn.PgError{Code: pgerrcode.DeadlockDetected})

	if got := classifier.Classify(wrapped); got != Retryable {
		t.Errorf("wrapped deadlock: expected Retryable, got %v", got)
	}
}

func TestErrorClassification_String(t *testing.T) {
	if got := Retryable.String(); got != "retryable" {
		t.Errorf("expected %q, got %q", "retryable", got)
	}

	if got := NonRetryable.String(); got != "non_retryable" {
		t.Errorf("expected %q, got %q", "non_retryable", got)
	}
}

// TestDBClassify_NoClassifier covers handles built over a bare connection, as
// repository tests do: classification must fall back instead of panicking.
func TestDBClassify_NoClassifier(t *testing.T) {
	db := &DB{}

	if got := db.classify(errors.New("boom")); got != NonRetryable {
		t.Errorf("expected NonRetryable fallback, got %v", got)
	}
}

func TestDBClassify_DelegatesToClassifier(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	if got := db.classify(&pgconn.PgError{Code: pgerrcode.ConnectionFailure}); got != Retryable {
		t.Errorf("expected Retryable, got %v", got)
	}
}
