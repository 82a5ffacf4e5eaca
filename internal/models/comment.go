package models

import "time"

type Comment struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Body     string `gorm:"not null" json:"body"`
	AuthorID int    `gorm:"not null" json:"author_id"`
	PostID   int    `gorm:"not null;index" json:"post_id"`

	Author User `gorm:"foreignKey:AuthorID" json:"author"`

	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}
