package models

// Sparse update payloads. A nil field is left untouched; the query builder
// emits a SET clause only for the fields that are present. An update with no
// fields set is rejected before any statement is issued.

// UserUpdate carries the changeable fields of a user, keyed by username.
type UserUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	IsAdmin   *bool   `json:"isAdmin"`
	IsPublic  *bool   `json:"isPublic"`
}

// IsEmpty reports whether no field is set.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil &&
		u.IsAdmin == nil && u.IsPublic == nil
}

// DeckUpdate carries the changeable fields of a deck, keyed by (username, slug).
// Changing the title does not re-derive the slug; the slug is fixed at creation.
type DeckUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

// IsEmpty reports whether no field is set.
func (d DeckUpdate) IsEmpty() bool {
	return d.Title == nil && d.Description == nil && d.IsPublic == nil
}

// CardUpdate carries the changeable fields of a card, keyed by id.
type CardUpdate struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// IsEmpty reports whether no field is set.
func (c CardUpdate) IsEmpty() bool {
	return c.Front == nil && c.Back == nil
}
