package models

import "time"

// Follow is a directed edge between two users: the following user is the
// actor, the followed user the target. The ordered pair is unique and a user
// can never follow itself.
type Follow struct {
	ID              int64     `json:"id"`
	FollowingUserID int64     `json:"followingUserId"`
	FollowedUserID  int64     `json:"followedUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Follow model.
func (f Follow) TableName() string {
	return "follows"
}
