package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when a username does not resolve to a row
	// in the users table.
	ErrUserNotFound = errors.New("user was not found")

	// ErrDeckNotFound is returned when an (owner username, slug) pair does
	// not resolve to a deck.
	ErrDeckNotFound = errors.New("deck was not found")

	// ErrCardNotFound is returned when a card id does not resolve to a row.
	ErrCardNotFound = errors.New("card was not found")

	// ErrTagNotFound is returned when a tag name does not resolve to a row.
	ErrTagNotFound = errors.New("tag was not found")

	// ErrUsernameTaken is returned when creating a user fails because the
	// username is already registered.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrDuplicateSlug is returned when creating a deck fails because the
	// owner already has a deck with the same slug.
	ErrDuplicateSlug = errors.New("deck slug already exists for this owner")

	// ErrAlreadyFollowing is returned when inserting a follow edge that
	// already exists for the ordered (following, followed) pair.
	ErrAlreadyFollowing = errors.New("follow relationship already exists")

	// ErrFollowNotFound is returned when a follow edge lookup or delete
	// matches no row.
	ErrFollowNotFound = errors.New("follow relationship was not found")

	// ErrSelfFollow is returned when the database check constraint rejects a
	// follow edge whose endpoints are the same user. The service layer
	// rejects self-follows before reaching the database; this sentinel is
	// the storage-level backstop.
	ErrSelfFollow = errors.New("user cannot follow themselves")

	// ErrAlreadyFavorited is returned when inserting a favorite edge that
	// already exists for the (user, deck) pair.
	ErrAlreadyFavorited = errors.New("favorite already exists")

	// ErrFavoriteNotFound is returned when a favorite edge lookup or delete
	// matches no row.
	ErrFavoriteNotFound = errors.New("favorite was not found")

	// ErrTagAlreadyOnDeck is returned when associating a tag with a deck
	// that already carries it.
	ErrTagAlreadyOnDeck = errors.New("tag is already associated with deck")

	// ErrTagNotOnDeck is returned when removing a tag association that does
	// not exist.
	ErrTagNotOnDeck = errors.New("tag is not associated with deck")

	// ErrEmptyUpdate is returned when a partial update payload carries no
	// fields. No statement is issued in that case.
	ErrEmptyUpdate = errors.New("update payload contains no fields")

	// ErrInvalidOrderBy is returned when a list operation is asked to order
	// by a column outside the entity's allow-list.
	ErrInvalidOrderBy = errors.New("order by column is not allowed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
