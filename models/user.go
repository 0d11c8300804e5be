package models

import "time"

// User represents an account entity: the owner of decks and the endpoint of
// follow and favorite edges. The username is the natural key used in URLs and
// by every lookup; the numeric ID stays at the persistence layer for joins
// and relationship rows.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique, human-chosen handle. Stable once created.
	Username string `json:"username"`

	// Password stores the bcrypt hash of the user's password.
	// It is never serialized and never returned from any operation.
	Password string `json:"-"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	// IsAdmin grants administrative access at the HTTP layer.
	IsAdmin bool `json:"isAdmin"`

	// IsPublic controls whether the profile appears in listings.
	IsPublic bool `json:"isPublic"`

	// CreatedAt is assigned by the database on insert and immutable afterwards.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserProfile is the aggregated view of a user: the account fields plus all
// owned decks (each with its cards and tags), the follow edges in both
// directions, and the user's favorites. All four collections are always
// non-nil; an empty collection serializes as an empty JSON array.
type UserProfile struct {
	User

	Decks     []DeckDetail `json:"decks"`
	Followers []Follow     `json:"followers"`
	Following []Follow     `json:"following"`
	Favorites []Favorite   `json:"favorites"`
}
