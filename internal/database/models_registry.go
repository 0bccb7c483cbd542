package database

import "bridgehead/internal/models"

// PersistentModels returns the schema-managed GORM models.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.Post{},
		&models.Interaction{},
		&models.Comment{},
	}
}
