package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/cardify/cardify-server/models"
)

// psql is the statement builder shared by every dynamic query. All generated
// statements use PostgreSQL-style $n placeholders; filter values are always
// bound, never interpolated.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	userColumns = `id, username, password, first_name, last_name, email, is_admin, is_public, created_at`

	createUser = `INSERT INTO users (username, password, first_name, last_name, email, is_admin, is_public)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + userColumns + `;`

	getUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	deleteUserByUsername = `DELETE FROM users
    WHERE username = $1
    RETURNING id;`

	getUserIDByUsername = `SELECT id
    FROM users
    WHERE username = $1;`

	deckColumns = `d.id, d.title, d.description, d.slug, u.username, d.is_public, d.created_at`

	createDeck = `INSERT INTO decks (user_id, title, description, slug, is_public)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, title, description, slug, is_public, created_at;`

	getDeckByOwnerAndSlug = `SELECT ` + deckColumns + `
    FROM decks d
    JOIN users u ON u.id = d.user_id
    WHERE u.username = $1 AND d.slug = $2;`

	listDecksByOwner = `SELECT ` + deckColumns + `
    FROM decks d
    JOIN users u ON u.id = d.user_id
    WHERE d.user_id = $1
    ORDER BY d.id;`

	getDeckIDByOwnerAndSlug = `SELECT d.id
    FROM decks d
    JOIN users u ON u.id = d.user_id
    WHERE u.username = $1 AND d.slug = $2;`

	deleteDeckByOwnerAndSlug = `DELETE FROM decks
    WHERE slug = $2 AND user_id = (SELECT id FROM users WHERE username = $1)
    RETURNING id;`

	cardColumns = `c.id, c.deck_id, d.slug, u.username, c.front, c.back, c.created_at`

	cardJoins = ` FROM cards c
    JOIN decks d ON d.id = c.deck_id
    JOIN users u ON u.id = d.user_id`

	createCard = `INSERT INTO cards (deck_id, front, back)
    VALUES ($1, $2, $3)
    RETURNING id, deck_id, front, back, created_at;`

	getCardByID = `SELECT ` + cardColumns + cardJoins + `
    WHERE c.id = $1;`

	listCardsByDeck = `SELECT ` + cardColumns + cardJoins + `
    WHERE c.deck_id = $1
    ORDER BY c.id;`

	deleteCardByID = `DELETE FROM cards
    WHERE id = $1
    RETURNING id;`

	followColumns = `id, following_user_id, followed_user_id, created_at`

	listFollowers = `SELECT ` + followColumns + `
    FROM follows
    WHERE followed_user_id = $1
    ORDER BY id;`

	listFollowing = `SELECT ` + followColumns + `
    FROM follows
    WHERE following_user_id = $1
    ORDER BY id;`

	getFollowByPair = `SELECT ` + followColumns + `
    FROM follows
    WHERE following_user_id = $1 AND followed_user_id = $2;`

	createFollow = `INSERT INTO follows (following_user_id, followed_user_id)
    VALUES ($1, $2)
    RETURNING ` + followColumns + `;`

	deleteFollowByPair = `DELETE FROM follows
    WHERE following_user_id = $1 AND followed_user_id = $2
    RETURNING id;`

	favoriteColumns = `id, user_id, deck_id, created_at`

	listFavoritesByUser = `SELECT ` + favoriteColumns + `
    FROM favorites
    WHERE user_id = $1
    ORDER BY id;`

	getFavoriteByPair = `SELECT ` + favoriteColumns + `
    FROM favorites
    WHERE user_id = $1 AND deck_id = $2;`

	createFavorite = `INSERT INTO favorites (user_id, deck_id)
    VALUES ($1, $2)
    RETURNING ` + favoriteColumns + `;`

	deleteFavoriteByPair = `DELETE FROM favorites
    WHERE user_id = $1 AND deck_id = $2
    RETURNING id;`

	upsertTag = `INSERT INTO tags (tag_name)
    VALUES ($1)
    ON CONFLICT (tag_name) DO UPDATE SET tag_name = EXCLUDED.tag_name
    RETURNING id, tag_name;`

	getTagByName = `SELECT id, tag_name
    FROM tags
    WHERE tag_name = $1;`

	addTagToDeck = `INSERT INTO deck_tags (deck_id, tag_id)
    VALUES ($1, $2)
    RETURNING id, deck_id, tag_id;`

	removeTagFromDeck = `DELETE FROM deck_tags
    WHERE deck_id = $1 AND tag_id = $2
    RETURNING id;`

	listTagNamesByDeck = `SELECT t.tag_name
    FROM deck_tags dt
    JOIN tags t ON t.id = dt.tag_id
    WHERE dt.deck_id = $1
    ORDER BY dt.id;`
)

// Per-entity ORDER BY allow-lists. Keys are the column names accepted from
// callers; values are the qualified columns used in the generated statement.
// Anything outside the allow-list is rejected with [ErrInvalidOrderBy].
var (
	userOrderColumns = map[string]string{
		"id":         "id",
		"username":   "username",
		"first_name": "first_name",
		"last_name":  "last_name",
		"created_at": "created_at",
	}

	deckOrderColumns = map[string]string{
		"id":         "d.id",
		"title":      "d.title",
		"slug":       "d.slug",
		"username":   "u.username",
		"created_at": "d.created_at",
	}

	cardOrderColumns = map[string]string{
		"id":         "c.id",
		"created_at": "c.created_at",
	}
)

// resolveOrderBy maps a caller-supplied ORDER BY column through the entity's
// allow-list. An empty request falls back to the default ordering key.
func resolveOrderBy(allowed map[string]string, requested string, fallback string) (string, error) {
	if requested == "" {
		return fallback, nil
	}

	column, ok := allowed[requested]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderBy, requested)
	}

	return column, nil
}

// buildListUsersQuery translates a [models.UserFilter] into a parameterised
// SELECT. Only filters with a non-nil value contribute a WHERE condition;
// placeholder numbering follows the append order so omitted filters never
// reserve a slot. With no filters set the statement has no WHERE clause.
func buildListUsersQuery(filter models.UserFilter) (string, []any, error) {
	orderBy, err := resolveOrderBy(userOrderColumns, filter.OrderBy, "id")
	if err != nil {
		return "", nil, err
	}

	builder := psql.
		Select("id", "username", "password", "first_name", "last_name", "email", "is_admin", "is_public", "created_at").
		From("users")

	if filter.IsPublic != nil {
		builder = builder.Where(sq.Eq{"is_public": *filter.IsPublic})
	}
	if filter.IsAdmin != nil {
		builder = builder.Where(sq.Eq{"is_admin": *filter.IsAdmin})
	}
	if filter.Username != nil {
		builder = builder.Where(sq.ILike{"username": contains(*filter.Username)})
	}
	if filter.FirstName != nil {
		builder = builder.Where(sq.ILike{"first_name": contains(*filter.FirstName)})
	}
	if filter.LastName != nil {
		builder = builder.Where(sq.ILike{"last_name": contains(*filter.LastName)})
	}

	query, args, err := builder.OrderBy(orderBy).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListDecksQuery translates a [models.DeckFilter] into a parameterised
// SELECT joined to the owners table, so every returned row carries the
// owner's username. Term searches the deck title.
func buildListDecksQuery(filter models.DeckFilter) (string, []any, error) {
	orderBy, err := resolveOrderBy(deckOrderColumns, filter.OrderBy, "d.id")
	if err != nil {
		return "", nil, err
	}

	builder := psql.
		Select("d.id", "d.title", "d.description", "d.slug", "u.username", "d.is_public", "d.created_at").
		From("decks d").
		Join("users u ON u.id = d.user_id")

	if filter.Username != nil {
		builder = builder.Where(sq.ILike{"u.username": contains(*filter.Username)})
	}
	if filter.Term != nil {
		builder = builder.Where(sq.ILike{"d.title": contains(*filter.Term)})
	}
	if filter.IsPublic != nil {
		builder = builder.Where(sq.Eq{"d.is_public": *filter.IsPublic})
	}

	query, args, err := builder.OrderBy(orderBy).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListCardsQuery translates a [models.CardFilter] into a parameterised
// SELECT joined through decks and users. Both filters are exact matches.
func buildListCardsQuery(filter models.CardFilter) (string, []any, error) {
	orderBy, err := resolveOrderBy(cardOrderColumns, filter.OrderBy, "c.id")
	if err != nil {
		return "", nil, err
	}

	builder := psql.
		Select("c.id", "c.deck_id", "d.slug", "u.username", "c.front", "c.back", "c.created_at").
		From("cards c").
		Join("decks d ON d.id = c.deck_id").
		Join("users u ON u.id = d.user_id")

	if filter.Username != nil {
		builder = builder.Where(sq.Eq{"u.username": *filter.Username})
	}
	if filter.DeckID != nil {
		builder = builder.Where(sq.Eq{"c.deck_id": *filter.DeckID})
	}

	query, args, err := builder.OrderBy(orderBy).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserQuery builds a sparse UPDATE over only the fields present in
// upd, keyed by username. Returns [ErrEmptyUpdate] without building SQL when
// the payload carries no fields.
func buildUpdateUserQuery(username string, upd models.UserUpdate) (string, []any, error) {
	if upd.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("users")

	if upd.FirstName != nil {
		builder = builder.Set("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		builder = builder.Set("last_name", *upd.LastName)
	}
	if upd.Email != nil {
		builder = builder.Set("email", *upd.Email)
	}
	if upd.IsAdmin != nil {
		builder = builder.Set("is_admin", *upd.IsAdmin)
	}
	if upd.IsPublic != nil {
		builder = builder.Set("is_public", *upd.IsPublic)
	}

	query, args, err := builder.
		Where(sq.Eq{"username": username}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateDeckQuery builds a sparse UPDATE over only the fields present in
// upd, keyed by the deck's id. The slug is fixed at creation and never part
// of the SET clause.
func buildUpdateDeckQuery(deckID int64, upd models.DeckUpdate) (string, []any, error) {
	if upd.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("decks")

	if upd.Title != nil {
		builder = builder.Set("title", *upd.Title)
	}
	if upd.Description != nil {
		builder = builder.Set("description", *upd.Description)
	}
	if upd.IsPublic != nil {
		builder = builder.Set("is_public", *upd.IsPublic)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": deckID}).
		Suffix("RETURNING id, title, description, slug, is_public, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateCardQuery builds a sparse UPDATE over only the fields present in
// upd, keyed by the card's id.
func buildUpdateCardQuery(cardID int64, upd models.CardUpdate) (string, []any, error) {
	if upd.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("cards")

	if upd.Front != nil {
		builder = builder.Set("front", *upd.Front)
	}
	if upd.Back != nil {
		builder = builder.Set("back", *upd.Back)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": cardID}).
		Suffix("RETURNING id, deck_id, front, back, created_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// contains wraps a filter value into a case-insensitive "contains" pattern.
func contains(value string) string {
	return "%" + value + "%"
}
