package models

import "time"

// Comment is a flat reply to a post. Author fields are a snapshot.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;index:idx_comment_post_created,priority:1" json:"postId"`
	AuthorID     uint      `gorm:"not null;index" json:"authorId"`
	AuthorName   string    `gorm:"not null" json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	AuthorBadge  string    `json:"authorBadge"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Media        MediaList `json:"media"`
	Status       string    `gorm:"not null;default:active" json:"status"`
	CreatedAt    time.Time `gorm:"index:idx_comment_post_created,priority:2" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName pins the table name.
func (Comment) TableName() string {
	return "community_comments"
}
