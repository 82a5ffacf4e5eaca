package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devzera/bear-blog/internal/models"
)

type PostHandler struct {
	db *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db}
}

// GetPost returns a single post with its comments and the author's total
// post count.
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	var post models.Post

	if err := h.db.Preload("Author").Preload("Group").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var comments []models.Comment
	h.db.Where("post_id = ?", post.ID).Preload("Author").Order("created_at desc").Find(&comments)
	if comments == nil {
		comments = []models.Comment{}
	}

	var authorPostCount int64
	h.db.Model(&models.Post{}).Where("author_id = ?", post.AuthorID).Count(&authorPostCount)

	c.JSON(http.StatusOK, gin.H{
		"post":              post,
		"comments":          comments,
		"author_post_count": authorPostCount,
	})
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if input.GroupID != nil {
		var group models.Group
		if err := h.db.First(&group, *input.GroupID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Group does not exist"})
			return
		}
	}

	post := models.Post{
		Text:     input.Text,
		GroupID:  input.GroupID,
		Image:    input.Image,
		AuthorID: authorID,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	h.db.Preload("Author").Preload("Group").First(&post, post.ID)

	c.JSON(http.StatusCreated, post)
}

// UpdatePost updates an existing post (PROTECTED - requires ownership)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")

	viewerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Text    string `json:"text"`
		GroupID *int   `json:"group_id"`
		Image   string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	if input.Text != "" {
		post.Text = input.Text
	}
	if input.GroupID != nil {
		post.GroupID = input.GroupID
	}
	if input.Image != "" {
		post.Image = input.Image
	}

	h.db.Save(&post)
	h.db.Preload("Author").Preload("Group").First(&post, post.ID)

	c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post (PROTECTED - requires ownership). The home
// feed cache is deliberately not invalidated: a deleted post may keep
// showing up there until the TTL runs out.
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")

	viewerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	if err := h.db.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
