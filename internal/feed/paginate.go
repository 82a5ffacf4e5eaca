package feed

import "github.com/devzera/bear-blog/internal/models"

// PageSize is the fixed number of posts per page.
const PageSize = 10

// Page is one fixed-size window of a feed.
type Page struct {
	Items       []models.Post `json:"items"`
	Number      int           `json:"page"`
	PageCount   int           `json:"page_count"`
	Total       int           `json:"total"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

// Paginate slices posts into the requested 1-based page. Out-of-range
// page numbers clamp to the nearest valid page instead of erroring:
// below 1 clamps to the first page, past the end clamps to the last.
func Paginate(posts []models.Post, requested int) Page {
	n := len(posts)
	if n == 0 {
		return Page{Items: []models.Post{}, Number: 1, PageCount: 0, Total: 0}
	}

	pageCount := (n + PageSize - 1) / PageSize
	page := requested
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > n {
		end = n
	}

	return Page{
		Items:       posts[start:end],
		Number:      page,
		PageCount:   pageCount,
		Total:       n,
		HasNext:     page < pageCount,
		HasPrevious: page > 1,
	}
}
