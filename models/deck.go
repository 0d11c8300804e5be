package models

import "time"

// Deck is a collection of flashcards owned by a single user. The slug is
// derived from the title and unique only within its owner's decks; (username,
// slug) is the natural key for all deck lookups.
type Deck struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Slug is the URL-safe form of the title, unique per owner.
	Slug string `json:"slug"`

	// Username is the owner's handle. The row of truth references the owner
	// by id; this field is resolved through a join on every read.
	Username string `json:"username"`

	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Deck model.
func (d Deck) TableName() string {
	return "decks"
}

// DeckDetail is the aggregated view of a deck: the deck fields plus its
// cards in creation order and its tag names in association order. Both
// collections are always non-nil.
type DeckDetail struct {
	Deck

	Cards []Card   `json:"cards"`
	Tags  []string `json:"tags"`
}
