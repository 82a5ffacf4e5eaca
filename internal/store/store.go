// Package store is the gorm-backed implementation of the post retrieval
// surface the feed assembler reads from.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/devzera/bear-blog/internal/feed"
	"github.com/devzera/bear-blog/internal/models"
)

// feedOrder is the strict total order every feed query uses. The id
// tie-break keeps pagination stable when posts share a timestamp.
const feedOrder = "created_at DESC, id DESC"

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ feed.Store = (*Store)(nil)

func (s *Store) AllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		Order(feedOrder).
		Find(&posts).Error
	return posts, err
}

func (s *Store) PostsByGroup(ctx context.Context, groupID int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		Where("group_id = ?", groupID).
		Order(feedOrder).
		Find(&posts).Error
	return posts, err
}

func (s *Store) PostsByAuthors(ctx context.Context, authorIDs []int) ([]models.Post, error) {
	var posts []models.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		Where("author_id IN ?", authorIDs).
		Order(feedOrder).
		Find(&posts).Error
	return posts, err
}

func (s *Store) GroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, feed.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, feed.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) Groups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).Order("title").Find(&groups).Error
	return groups, err
}
