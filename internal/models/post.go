package models

import "time"

type Post struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"not null" json:"text"`
	AuthorID int    `gorm:"not null;index" json:"author_id"`
	GroupID  *int   `gorm:"index" json:"group_id,omitempty"`
	Image    string `json:"image"`

	Author User   `gorm:"foreignKey:AuthorID" json:"author"`
	Group  *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Text    string `json:"text"`
	GroupID *int   `json:"group_id"`
	Image   string `json:"image"`
}
