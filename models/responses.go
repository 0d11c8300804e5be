package models

// FollowResult is returned by the follow operation: the newly created edge
// plus a human-readable confirmation message.
type FollowResult struct {
	Follow

	Message string `json:"message"`
}

// FavoriteResult is returned by the favorite operation: the newly created
// edge plus a human-readable confirmation message.
type FavoriteResult struct {
	Favorite

	Message string `json:"message"`
}
