package models

import "time"

// Moderation states shared by posts and comments.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
	StatusFlagged = "flagged"
)

// Counter columns on community_posts.
const (
	ColumnLikes   = "likes_count"
	ColumnReplies = "replies_count"
	ColumnReposts = "reposts_count"
)

// Post is a community feed entry.
//
// AuthorName, AuthorAvatar and AuthorBadge are copied from the user at
// creation and are not refreshed when the profile changes.
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AuthorID     uint      `gorm:"not null;index" json:"authorId"`
	AuthorName   string    `gorm:"not null" json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	AuthorBadge  string    `json:"authorBadge"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Media        MediaList `json:"media"`
	Topic        string    `gorm:"not null;index;default:general" json:"topic"`
	LikesCount   int       `gorm:"not null;default:0" json:"likesCount"`
	RepliesCount int       `gorm:"not null;default:0" json:"repliesCount"`
	RepostsCount int       `gorm:"not null;default:0" json:"repostsCount"`
	Status       string    `gorm:"not null;default:active;index" json:"status"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	IsLiked    bool `gorm:"-" json:"isLiked"`
	IsReposted bool `gorm:"-" json:"isReposted"`
}

// TableName pins the table name.
func (Post) TableName() string {
	return "community_posts"
}

// CounterFor returns the counter column backing an interaction type.
func CounterFor(kind InteractionType) string {
	if kind == InteractionRepost {
		return ColumnReposts
	}
	return ColumnLikes
}
