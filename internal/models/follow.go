package models

import "time"

// Follow is a directed edge: the follower receives the followed author's
// posts in their follow feed. The composite unique index makes concurrent
// duplicate follows safe at the datastore level.
type Follow struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	FollowerID  int       `gorm:"not null;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID int       `gorm:"not null;uniqueIndex:idx_follower_following" json:"following_id"`
	Follower    User      `gorm:"foreignKey:FollowerID" json:"follower"`
	Following   User      `gorm:"foreignKey:FollowingID" json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}
