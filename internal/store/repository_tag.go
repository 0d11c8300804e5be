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

// tagRepository is the PostgreSQL-backed implementation of [TagRepository].
type tagRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTagRepository constructs a [TagRepository] backed by the provided
// database connection and logger.
func NewTagRepository(db *DB, logger *logger.Logger) TagRepository {
	logger.Debug().Msg("creating tag repository")
	return &tagRepository{
		db:     db,
		logger: logger,
	}
}

// GetTagByName retrieves a tag by its name.
//
// Error handling:
//   - No matching row → [ErrTagNotFound].
func (r *tagRepository) GetTagByName(ctx context.Context, tagName string) (models.Tag, error) {
	log := logger.FromContext(ctx)

	var tag models.Tag
	row := r.db.QueryRowContext(ctx, getTagByName, tagName)

	if err := row.Scan(&tag.ID, &tag.TagName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tag{}, fmt.Errorf("%w: %s", ErrTagNotFound, tagName)
		}

		log.Err(err).Str("func", "*tagRepository.GetTagByName").Str("tag_name", tagName).
			Str("classification", r.db.classify(err).String()).
			Msg("error: scanning error")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return tag, nil
}

// GetOrCreateTag returns the tag with the given name, inserting it first if
// it does not exist. The upsert makes the operation safe under concurrent
// identical requests.
func (r *tagRepository) GetOrCreateTag(ctx context.Context, tagName string) (models.Tag, error) {
	log := logger.FromContext(ctx)

	var tag models.Tag
	row := r.db.QueryRowContext(ctx, upsertTag, tagName)

	if err := row.Scan(&tag.ID, &tag.TagName); err != nil {
		log.Err(err).Str("func", "*tagRepository.GetOrCreateTag").Str("tag_name", tagName).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to upsert tag")
		return models.Tag{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return tag, nil
}

// AddTagToDeck inserts a deck-tag association row.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrTagAlreadyOnDeck].
//   - PostgreSQL foreign_key_violation (23503) → [ErrDeckNotFound].
func (r *tagRepository) AddTagToDeck(ctx context.Context, deckID int64, tagID int64) (models.DeckTag, error) {
	log := logger.FromContext(ctx)

	var deckTag models.DeckTag
	row := r.db.QueryRowContext(ctx, addTagToDeck, deckID, tagID)

	if err := row.Scan(&deckTag.ID, &deckTag.DeckID, &deckTag.TagID); err != nil {
		log.Err(err).Str("func", "*tagRepository.AddTagToDeck").
			Int64("deck_id", deckID).Int64("tag_id", tagID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to insert deck tag")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.DeckTag{}, fmt.Errorf("%w: deck %d, tag %d", ErrTagAlreadyOnDeck, deckID, tagID)
		case pgerrcode.ForeignKeyViolation:
			return models.DeckTag{}, fmt.Errorf("%w: id %d", ErrDeckNotFound, deckID)
		default:
			return models.DeckTag{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return deckTag, nil
}

// RemoveTagFromDeck deletes a deck-tag association row.
//
// Error handling:
//   - No matching row → [ErrTagNotOnDeck].
func (r *tagRepository) RemoveTagFromDeck(ctx context.Context, deckID int64, tagID int64) error {
	log := logger.FromContext(ctx)

	var id int64
	row := r.db.QueryRowContext(ctx, removeTagFromDeck, deckID, tagID)

	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: deck %d, tag %d", ErrTagNotOnDeck, deckID, tagID)
		}

		log.Err(err).Str("func", "*tagRepository.RemoveTagFromDeck").
			Int64("deck_id", deckID).Int64("tag_id", tagID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to delete deck tag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListTagNamesByDeck returns the deck's tag names in association order. One
// joined query resolves all names in a single round trip; a deck with no
// tags yields an empty, non-nil slice.
func (r *tagRepository) ListTagNamesByDeck(ctx context.Context, deckID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listTagNamesByDeck, deckID)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.ListTagNamesByDeck").Int64("deck_id", deckID).
			Str("classification", r.db.classify(err).String()).
			Msg("error: failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Err(err).Str("func", "*tagRepository.ListTagNamesByDeck").
				Str("classification", r.db.classify(err).String()).
				Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*tagRepository.ListTagNamesByDeck").
			Str("classification", r.db.classify(err).String()).
			Msg("error: rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return names, nil
}
