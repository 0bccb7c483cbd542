package models

import "time"

// User is the account record. This service only reads it, apart from seeding.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	Badge       string    `json:"badge"`
	IsAdmin     bool      `gorm:"default:false" json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SnapshotName is the display name copied onto posts and comments.
func (u *User) SnapshotName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
