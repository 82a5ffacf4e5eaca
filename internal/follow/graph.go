// Package follow owns the directed follow graph: who follows whom, and
// the rules every call site shares (no self-follow, idempotent edges).
package follow

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devzera/bear-blog/internal/models"
)

// ErrSelfFollow is returned when a user attempts to follow themselves.
var ErrSelfFollow = errors.New("follow: cannot follow yourself")

// ErrUserNotFound is returned when the user to be followed or unfollowed
// does not exist.
var ErrUserNotFound = errors.New("follow: user not found")

type Graph struct {
	db *gorm.DB
}

func NewGraph(db *gorm.DB) *Graph {
	return &Graph{db: db}
}

// Follow creates the edge follower -> following. Re-creating an existing
// edge is a no-op; the unique index on (follower_id, following_id) plus
// ON CONFLICT DO NOTHING keeps concurrent duplicate attempts safe.
func (g *Graph) Follow(ctx context.Context, followerID, followingID int) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, followingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	edge := models.Follow{FollowerID: followerID, FollowingID: followingID}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
}

// Unfollow removes the edge follower -> following. Removing a missing
// edge is a no-op.
func (g *Graph) Unfollow(ctx context.Context, followerID, followingID int) error {
	return g.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (g *Graph) IsFollowing(ctx context.Context, followerID, followingID int) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// FollowedAuthors returns the ids of every author the follower follows.
func (g *Graph) FollowedAuthors(ctx context.Context, followerID int) ([]int, error) {
	var ids []int
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	return ids, err
}

// HasFollowers reports whether at least one user follows userID.
func (g *Graph) HasFollowers(ctx context.Context, userID int) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// FollowerCount and FollowingCount back the profile page counters.
func (g *Graph) FollowerCount(ctx context.Context, userID int) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (g *Graph) FollowingCount(ctx context.Context, userID int) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
