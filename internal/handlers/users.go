package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devzera/bear-blog/internal/feed"
	"github.com/devzera/bear-blog/internal/follow"
	"github.com/devzera/bear-blog/internal/models"
)

type UserHandler struct {
	db        *gorm.DB
	assembler *feed.Assembler
	graph     *follow.Graph
}

func NewUserHandler(db *gorm.DB, a *feed.Assembler, g *follow.Graph) *UserHandler {
	return &UserHandler{db: db, assembler: a, graph: g}
}

// GetUserProfile returns a user's profile: their paginated posts plus
// flags derived from the viewer (is_self, is_following) and the follow
// graph (has_followers). Anonymous viewers get the flags as false.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	username := c.Param("username")
	viewerID, _ := extractUserID(c)

	profile, err := h.assembler.Author(c.Request.Context(), viewerID, username)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	followerCount, _ := h.graph.FollowerCount(c.Request.Context(), profile.Author.ID)
	followingCount, _ := h.graph.FollowingCount(c.Request.Context(), profile.Author.ID)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       profile.Author.ID,
			"username": profile.Author.Username,
			"bio":      profile.Author.Bio,
			"avatar":   profile.Author.Avatar,
		},
		"page":            feed.Paginate(profile.Posts, pageNumber(c)),
		"post_count":      profile.PostCount,
		"follower_count":  followerCount,
		"following_count": followingCount,
		"is_self":         profile.IsSelf,
		"has_followers":   profile.HasFollowers,
		"is_following":    profile.IsFollowing,
	})
}

// UpdateUserProfile lets a user edit their own bio and avatar.
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	username := c.Param("username")

	viewerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.ID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	var input struct {
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"bio":      user.Bio,
		"avatar":   user.Avatar,
	})
}

// FollowUser follows a user by username. Following someone you already
// follow is a no-op that still succeeds.
func (h *UserHandler) FollowUser(c *gin.Context) {
	username := c.Param("username")
	viewerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var author models.User
	if err := h.db.Where("username = ?", username).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.graph.Follow(c.Request.Context(), viewerID, author.ID); err != nil {
		if errors.Is(err, follow.ErrSelfFollow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully followed user"})
}

// UnfollowUser unfollows a user by username. Unfollowing someone you do
// not follow is a no-op that still succeeds.
func (h *UserHandler) UnfollowUser(c *gin.Context) {
	username := c.Param("username")
	viewerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var author models.User
	if err := h.db.Where("username = ?", username).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.graph.Unfollow(c.Request.Context(), viewerID, author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

// GetFollowers returns a user's followers
func (h *UserHandler) GetFollowers(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var follows []models.Follow
	h.db.Where("following_id = ?", user.ID).Preload("Follower").Find(&follows)

	followers := []gin.H{}
	for _, f := range follows {
		followers = append(followers, gin.H{
			"id":       f.Follower.ID,
			"username": f.Follower.Username,
			"avatar":   f.Follower.Avatar,
		})
	}

	c.JSON(http.StatusOK, followers)
}

// GetFollowing returns users that a user is following
func (h *UserHandler) GetFollowing(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var follows []models.Follow
	h.db.Where("follower_id = ?", user.ID).Preload("Following").Find(&follows)

	following := []gin.H{}
	for _, f := range follows {
		following = append(following, gin.H{
			"id":       f.Following.ID,
			"username": f.Following.Username,
			"avatar":   f.Following.Avatar,
		})
	}

	c.JSON(http.StatusOK, following)
}
