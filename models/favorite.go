package models

import "time"

// Favorite is an associative edge between a user and a deck. The (user, deck)
// pair is unique.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	DeckID    int64     `json:"deckId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Favorite model.
func (f Favorite) TableName() string {
	return "favorites"
}
