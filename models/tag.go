package models

// Tag is a label shared across decks, associated many-to-many through the
// deck_tags table.
type Tag struct {
	ID      int64  `json:"id"`
	TagName string `json:"tagName"`
}

// TableName returns the name of the database table
// associated with the Tag model.
func (t Tag) TableName() string {
	return "tags"
}

// DeckTag is an association row linking a deck to a tag. It has no attributes
// beyond its endpoints; the id only fixes the association order.
type DeckTag struct {
	ID     int64 `json:"id"`
	DeckID int64 `json:"deckId"`
	TagID  int64 `json:"tagId"`
}

// TableName returns the name of the database table
// associated with the DeckTag model.
func (dt DeckTag) TableName() string {
	return "deck_tags"
}
