package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devzera/bear-blog/internal/feed"
	"github.com/devzera/bear-blog/internal/follow"
	"github.com/devzera/bear-blog/internal/store"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
	User    *UserHandler
	Feed    *FeedHandler
}

// NewHandler creates a unified handler with all sub-handlers sharing the
// same assembler, follow graph and home feed cache.
func NewHandler(db *gorm.DB, cache *feed.Cache) *Handler {
	posts := store.New(db)
	graph := follow.NewGraph(db)
	assembler := feed.NewAssembler(posts, graph)

	return &Handler{
		Auth:    NewAuthHandler(db),
		Post:    NewPostHandler(db),
		Comment: NewCommentHandler(db),
		User:    NewUserHandler(db, assembler, graph),
		Feed:    NewFeedHandler(posts, assembler, cache),
	}
}

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// pageNumber reads the ?page= query parameter. Absent or non-numeric
// values fall back to the first page.
func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}
