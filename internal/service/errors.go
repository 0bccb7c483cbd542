package service

import (
	"errors"

	"bridgehead/internal/models"

	"gorm.io/gorm"
)

// postNotFound turns a missing-row error into a 404 AppError and passes
// anything else through.
func postNotFound(err error, postID uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", postID)
	}
	return err
}

// authorNotFound maps a token whose user no longer exists to 401.
func authorNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewUnauthorizedError("User not found")
	}
	return err
}
