package models

import "time"

// InteractionType distinguishes ledger rows.
type InteractionType string

const (
	InteractionLike   InteractionType = "like"
	InteractionRepost InteractionType = "repost"
)

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool {
	return t == InteractionLike || t == InteractionRepost
}

// Interaction is one row of the like/repost ledger. At most one row exists
// per (post, user, type).
type Interaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	PostID    uint            `gorm:"not null;uniqueIndex:idx_interaction_post_user_type,priority:1" json:"postId"`
	UserID    uint            `gorm:"not null;index;uniqueIndex:idx_interaction_post_user_type,priority:2" json:"userId"`
	Type      InteractionType `gorm:"type:varchar(16);not null;uniqueIndex:idx_interaction_post_user_type,priority:3" json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

// InteractionState is the caller's ledger state for one post.
type InteractionState struct {
	Liked    bool
	Reposted bool
}

// ToggleResult is the outcome of a like or repost toggle.
type ToggleResult struct {
	Type   InteractionType
	Active bool
	Count  int
}
