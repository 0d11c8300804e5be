package models

import "time"

// Card is a single flashcard belonging to exactly one deck. The owning deck
// is referenced by id in storage; DeckSlug and Username are resolved through
// joins so the wire shape still carries the owner's handle and the deck slug.
type Card struct {
	ID int64 `json:"id"`

	// DeckID is the storage-level reference to the owning deck.
	DeckID int64 `json:"deckId"`

	// DeckSlug is the owning deck's slug, derived on read.
	DeckSlug string `json:"deckSlug"`

	// Username is the owning deck's owner handle, derived on read.
	Username string `json:"username"`

	// Front is the prompt text.
	Front string `json:"front"`

	// Back is the answer text.
	Back string `json:"back"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Card model.
func (c Card) TableName() string {
	return "cards"
}
