package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devzera/bear-blog/internal/feed"
	"github.com/devzera/bear-blog/internal/models"
	"github.com/devzera/bear-blog/internal/store"
)

type FeedHandler struct {
	store     *store.Store
	assembler *feed.Assembler
	cache     *feed.Cache
}

func NewFeedHandler(s *store.Store, a *feed.Assembler, c *feed.Cache) *FeedHandler {
	return &FeedHandler{store: s, assembler: a, cache: c}
}

// GetHomeFeed returns the global feed. The unpaginated first view is
// served from the shared TTL cache; any explicit ?page= request goes to
// the database directly, so only the highest-traffic page is cached.
func (h *FeedHandler) GetHomeFeed(c *gin.Context) {
	compute := func() (interface{}, error) {
		posts, err := h.assembler.Global(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return gin.H{"page": feed.Paginate(posts, pageNumber(c))}, nil
	}

	if _, paged := c.GetQuery("page"); paged {
		response, err := compute()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, response)
		return
	}

	response, err := h.cache.GetOrCompute(feed.HomeFeedKey, compute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetGroupFeed returns one group's posts, 404 on an unknown slug.
func (h *FeedHandler) GetGroupFeed(c *gin.Context) {
	slug := c.Param("slug")

	group, posts, err := h.assembler.Group(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group": group,
		"page":  feed.Paginate(posts, pageNumber(c)),
	})
}

// GetFollowFeed returns posts authored by everyone the viewer follows.
func (h *FeedHandler) GetFollowFeed(c *gin.Context) {
	viewerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	posts, err := h.assembler.Following(c.Request.Context(), viewerID)
	if err != nil {
		if errors.Is(err, feed.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": feed.Paginate(posts, pageNumber(c))})
}

// GetGroups lists all groups.
func (h *FeedHandler) GetGroups(c *gin.Context) {
	groups, err := h.store.Groups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}
	c.JSON(http.StatusOK, groups)
}
