package models

import "time"

// Group is a topic posts can be filed under. Groups are created by the
// seed process, never through the public API.
type Group struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
