package feed

import (
	"context"
	"errors"

	"github.com/devzera/bear-blog/internal/models"
)

var (
	// ErrNotFound is returned when a group slug or username does not
	// resolve to an existing record.
	ErrNotFound = errors.New("feed: not found")
	// ErrUnauthorized is returned when an anonymous viewer requests a
	// feed that only exists relative to an identity.
	ErrUnauthorized = errors.New("feed: viewer not authenticated")
)

// Store is the post retrieval surface the assembler reads from. Every
// post-returning method must order by created_at descending with ties
// broken by descending id, so pagination over an unchanged data set is
// reproducible across requests.
type Store interface {
	AllPosts(ctx context.Context) ([]models.Post, error)
	PostsByGroup(ctx context.Context, groupID int) ([]models.Post, error)
	PostsByAuthors(ctx context.Context, authorIDs []int) ([]models.Post, error)
	GroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Graph is the follow-relationship surface the assembler consults.
type Graph interface {
	FollowedAuthors(ctx context.Context, followerID int) ([]int, error)
	IsFollowing(ctx context.Context, followerID, followingID int) (bool, error)
	HasFollowers(ctx context.Context, userID int) (bool, error)
}

// Assembler resolves a logical feed request into an ordered post
// sequence. Pagination is applied by the caller.
type Assembler struct {
	store Store
	graph Graph
}

func NewAssembler(store Store, graph Graph) *Assembler {
	return &Assembler{store: store, graph: graph}
}

// Global returns every post, newest first.
func (a *Assembler) Global(ctx context.Context) ([]models.Post, error) {
	return a.store.AllPosts(ctx)
}

// Group returns the group matching slug and its posts, newest first.
func (a *Assembler) Group(ctx context.Context, slug string) (*models.Group, []models.Post, error) {
	group, err := a.store.GroupBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := a.store.PostsByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	return group, posts, nil
}

// AuthorFeed is a profile page's worth of data: the author's posts plus
// flags derived from the viewer and the follow graph. HasFollowers means
// the author has at least one follower, regardless of who is looking.
type AuthorFeed struct {
	Author       models.User
	Posts        []models.Post
	PostCount    int
	IsSelf       bool
	HasFollowers bool
	IsFollowing  bool
}

// Author returns the profile feed for username. viewerID 0 means the
// viewer is anonymous; IsSelf and IsFollowing are then always false.
func (a *Assembler) Author(ctx context.Context, viewerID int, username string) (*AuthorFeed, error) {
	author, err := a.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := a.store.PostsByAuthors(ctx, []int{author.ID})
	if err != nil {
		return nil, err
	}
	hasFollowers, err := a.graph.HasFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	f := &AuthorFeed{
		Author:       *author,
		Posts:        posts,
		PostCount:    len(posts),
		IsSelf:       viewerID != 0 && viewerID == author.ID,
		HasFollowers: hasFollowers,
	}
	if viewerID != 0 && !f.IsSelf {
		f.IsFollowing, err = a.graph.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Following returns posts authored by anyone the viewer follows, newest
// first. Anonymous viewers are rejected.
func (a *Assembler) Following(ctx context.Context, viewerID int) ([]models.Post, error) {
	if viewerID <= 0 {
		return nil, ErrUnauthorized
	}
	authors, err := a.graph.FollowedAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return []models.Post{}, nil
	}
	return a.store.PostsByAuthors(ctx, authors)
}
