package follow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devzera/bear-blog/internal/database"
	"github.com/devzera/bear-blog/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("bearblog_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func createUsers(t *testing.T, db *gorm.DB, usernames ...string) []models.User {
	t.Helper()
	users := make([]models.User, 0, len(usernames))
	for _, name := range usernames {
		user := models.User{
			Username: name,
			Email:    name + "@example.com",
			Password: "hash",
		}
		require.NoError(t, db.Create(&user).Error)
		users = append(users, user)
	}
	return users
}

func edgeCount(t *testing.T, db *gorm.DB, followerID, followingID int) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error)
	return count
}

func TestFollowIdempotent(t *testing.T) {
	db := setupTestDB(t)
	graph := NewGraph(db)
	ctx := context.Background()

	users := createUsers(t, db, "arm", "dev")
	arm, dev := users[0], users[1]

	require.NoError(t, graph.Follow(ctx, arm.ID, dev.ID))
	require.NoError(t, graph.Follow(ctx, arm.ID, dev.ID))

	assert.Equal(t, int64(1), edgeCount(t, db, arm.ID, dev.ID))

	following, err := graph.IsFollowing(ctx, arm.ID, dev.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestUnfollowIdempotent(t *testing.T) {
	db := setupTestDB(t)
	graph := NewGraph(db)
	ctx := context.Background()

	users := createUsers(t, db, "arm", "dev")
	arm, dev := users[0], users[1]

	require.NoError(t, graph.Follow(ctx, arm.ID, dev.ID))
	require.NoError(t, graph.Unfollow(ctx, arm.ID, dev.ID))
	require.NoError(t, graph.Unfollow(ctx, arm.ID, dev.ID))

	assert.Equal(t, int64(0), edgeCount(t, db, arm.ID, dev.ID))
}

func TestSelfFollowRejected(t *testing.T) {
	db := setupTestDB(t)
	graph := NewGraph(db)
	ctx := context.Background()

	users := createUsers(t, db, "arm")
	arm := users[0]

	err := graph.Follow(ctx, arm.ID, arm.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.Equal(t, int64(0), edgeCount(t, db, arm.ID, arm.ID))
}

func TestFollowUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	graph := NewGraph(db)
	ctx := context.Background()

	users := createUsers(t, db, "arm")

	err := graph.Follow(ctx, users[0].ID, 424242)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowedAuthorsAndCounts(t *testing.T) {
	db := setupTestDB(t)
	graph := NewGraph(db)
	ctx := context.Background()

	users := createUsers(t, db, "arm", "dev", "mike")
	arm, dev, mike := users[0], users[1], users[2]

	require.NoError(t, graph.Follow(ctx, arm.ID, dev.ID))
	require.NoError(t, graph.Follow(ctx, arm.ID, mike.ID))
	require.NoError(t, graph.Follow(ctx, mike.ID, dev.ID))

	authors, err := graph.FollowedAuthors(ctx, arm.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{dev.ID, mike.ID}, authors)

	hasFollowers, err := graph.HasFollowers(ctx, dev.ID)
	require.NoError(t, err)
	assert.True(t, hasFollowers)

	hasFollowers, err = graph.HasFollowers(ctx, arm.ID)
	require.NoError(t, err)
	assert.False(t, hasFollowers)

	followerCount, err := graph.FollowerCount(ctx, dev.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followerCount)

	followingCount, err := graph.FollowingCount(ctx, arm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followingCount)
}
