package feed

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devzera/bear-blog/internal/models"
)

// fakeStore is an in-memory Store honoring the ordering contract.
type fakeStore struct {
	posts  []models.Post
	groups map[string]models.Group
	users  map[string]models.User
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups: make(map[string]models.Group),
		users:  make(map[string]models.User),
		nextID: 1,
	}
}

func (s *fakeStore) addUser(id int, username string) {
	s.users[username] = models.User{ID: id, Username: username}
}

func (s *fakeStore) addGroup(id int, slug string) {
	s.groups[slug] = models.Group{ID: id, Slug: slug, Title: slug}
}

func (s *fakeStore) addPost(authorID int, groupID *int, text string, createdAt time.Time) models.Post {
	post := models.Post{
		ID:        s.nextID,
		Text:      text,
		AuthorID:  authorID,
		GroupID:   groupID,
		CreatedAt: createdAt,
	}
	s.nextID++
	s.posts = append(s.posts, post)
	return post
}

func ordered(posts []models.Post) []models.Post {
	out := append([]models.Post(nil), posts...)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *fakeStore) AllPosts(_ context.Context) ([]models.Post, error) {
	return ordered(s.posts), nil
}

func (s *fakeStore) PostsByGroup(_ context.Context, groupID int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range s.posts {
		if p.GroupID != nil && *p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return ordered(out), nil
}

func (s *fakeStore) PostsByAuthors(_ context.Context, authorIDs []int) ([]models.Post, error) {
	want := make(map[int]bool, len(authorIDs))
	for _, id := range authorIDs {
		want[id] = true
	}
	var out []models.Post
	for _, p := range s.posts {
		if want[p.AuthorID] {
			out = append(out, p)
		}
	}
	return ordered(out), nil
}

func (s *fakeStore) GroupBySlug(_ context.Context, slug string) (*models.Group, error) {
	group, ok := s.groups[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return &group, nil
}

func (s *fakeStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// fakeGraph is an in-memory follow graph.
type fakeGraph struct {
	edges map[int]map[int]bool
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{edges: make(map[int]map[int]bool)}
}

func (g *fakeGraph) follow(followerID, followingID int) {
	if g.edges[followerID] == nil {
		g.edges[followerID] = make(map[int]bool)
	}
	g.edges[followerID][followingID] = true
}

func (g *fakeGraph) FollowedAuthors(_ context.Context, followerID int) ([]int, error) {
	var ids []int
	for id := range g.edges[followerID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *fakeGraph) IsFollowing(_ context.Context, followerID, followingID int) (bool, error) {
	return g.edges[followerID][followingID], nil
}

func (g *fakeGraph) HasFollowers(_ context.Context, userID int) (bool, error) {
	for _, followed := range g.edges {
		if followed[userID] {
			return true, nil
		}
	}
	return false, nil
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func assertNewestFirst(t *testing.T, posts []models.Post) {
	t.Helper()
	for i := 0; i+1 < len(posts); i++ {
		cur, next := posts[i], posts[i+1]
		assert.False(t, cur.CreatedAt.Before(next.CreatedAt),
			"posts out of order at %d", i)
		if cur.CreatedAt.Equal(next.CreatedAt) {
			assert.Greater(t, cur.ID, next.ID, "id tie-break violated at %d", i)
		}
	}
}

func TestGlobalFeedOrdering(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "dev")
	for i := 0; i < 12; i++ {
		store.addPost(1, nil, "post", baseTime.Add(time.Duration(i)*time.Minute))
	}
	// Two posts sharing a timestamp: higher id must come first.
	store.addPost(1, nil, "tie a", baseTime.Add(30*time.Minute))
	store.addPost(1, nil, "tie b", baseTime.Add(30*time.Minute))

	a := NewAssembler(store, newFakeGraph())
	posts, err := a.Global(context.Background())
	require.NoError(t, err)

	assert.Len(t, posts, 14)
	assertNewestFirst(t, posts)
	assert.Equal(t, "tie b", posts[0].Text)
	assert.Equal(t, "tie a", posts[1].Text)
}

func TestGroupFeed(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "dev")
	store.addGroup(7, "sport")
	sportID := 7
	for i := 0; i < 15; i++ {
		store.addPost(1, &sportID, "sport post", baseTime.Add(time.Duration(i)*time.Minute))
	}
	store.addPost(1, nil, "ungrouped", baseTime.Add(time.Hour))

	a := NewAssembler(store, newFakeGraph())
	group, posts, err := a.Group(context.Background(), "sport")
	require.NoError(t, err)
	assert.Equal(t, "sport", group.Slug)
	assert.Len(t, posts, 15)
	assertNewestFirst(t, posts)

	page1 := Paginate(posts, 1)
	assert.Len(t, page1.Items, 10)
	assert.True(t, page1.HasNext)
	assert.Equal(t, 15, page1.Items[0].ID)

	page2 := Paginate(posts, 2)
	assert.Len(t, page2.Items, 5)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrevious)
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	a := NewAssembler(newFakeStore(), newFakeGraph())

	_, _, err := a.Group(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthorFeed(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "dev")
	store.addUser(2, "arm")
	store.addPost(1, nil, "one", baseTime)
	store.addPost(1, nil, "two", baseTime.Add(time.Minute))
	store.addPost(2, nil, "other author", baseTime.Add(2*time.Minute))

	graph := newFakeGraph()
	graph.follow(2, 1)

	a := NewAssembler(store, graph)

	// Viewed by the author themselves.
	self, err := a.Author(context.Background(), 1, "dev")
	require.NoError(t, err)
	assert.True(t, self.IsSelf)
	assert.True(t, self.HasFollowers)
	assert.False(t, self.IsFollowing)
	assert.Equal(t, 2, self.PostCount)
	assertNewestFirst(t, self.Posts)

	// Viewed by a follower.
	byFollower, err := a.Author(context.Background(), 2, "dev")
	require.NoError(t, err)
	assert.False(t, byFollower.IsSelf)
	assert.True(t, byFollower.IsFollowing)

	// Viewed anonymously.
	anon, err := a.Author(context.Background(), 0, "dev")
	require.NoError(t, err)
	assert.False(t, anon.IsSelf)
	assert.False(t, anon.IsFollowing)
	assert.True(t, anon.HasFollowers)

	// An author nobody follows.
	lonely, err := a.Author(context.Background(), 1, "arm")
	require.NoError(t, err)
	assert.False(t, lonely.HasFollowers)
}

func TestAuthorFeedUnknownUsername(t *testing.T) {
	a := NewAssembler(newFakeStore(), newFakeGraph())

	_, err := a.Author(context.Background(), 0, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowFeed(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "dev")
	store.addUser(2, "arm")
	store.addUser(3, "mike")
	store.addPost(3, nil, "mike's own", baseTime)

	graph := newFakeGraph()
	graph.follow(2, 1) // arm follows dev

	a := NewAssembler(store, graph)

	store.addPost(1, nil, "for followers", baseTime.Add(time.Minute))

	armFeed, err := a.Following(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, armFeed, 1)
	assert.Equal(t, "for followers", armFeed[0].Text)

	mikeFeed, err := a.Following(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, mikeFeed)
}

func TestFollowFeedAnonymous(t *testing.T) {
	a := NewAssembler(newFakeStore(), newFakeGraph())

	_, err := a.Following(context.Background(), 0)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFollowFeedMultipleAuthors(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "dev")
	store.addUser(2, "arm")
	store.addUser(3, "mike")
	store.addPost(1, nil, "by dev", baseTime)
	store.addPost(3, nil, "by mike", baseTime.Add(time.Minute))
	store.addPost(2, nil, "by arm himself", baseTime.Add(2*time.Minute))

	graph := newFakeGraph()
	graph.follow(2, 1)
	graph.follow(2, 3)

	a := NewAssembler(store, graph)
	posts, err := a.Following(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assertNewestFirst(t, posts)
	assert.Equal(t, "by mike", posts[0].Text)
	assert.Equal(t, "by dev", posts[1].Text)
}
