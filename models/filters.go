package models

// Filter configurations for list operations. A nil pointer field means the
// filter is not applied; set fields are ANDed together by the query builder.
// OrderBy, when empty, falls back to the entity's default ordering column.

// UserFilter narrows User listings. String filters match as case-insensitive
// "contains"; boolean filters match exactly.
type UserFilter struct {
	Username  *string
	FirstName *string
	LastName  *string
	IsPublic  *bool
	IsAdmin   *bool
	OrderBy   string
}

// DeckFilter narrows Deck listings. Username and Term match as
// case-insensitive "contains" (Term searches the title); IsPublic matches
// exactly.
type DeckFilter struct {
	Username *string
	Term     *string
	IsPublic *bool
	OrderBy  string
}

// CardFilter narrows Card listings. Both filters are exact matches.
type CardFilter struct {
	Username *string
	DeckID   *int64
	OrderBy  string
}
