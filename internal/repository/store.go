package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories that share one connection or transaction.
type Store struct {
	db           *gorm.DB
	Posts        PostRepository
	Interactions InteractionRepository
	Comments     CommentRepository
	Users        UserRepository
}

// NewStore builds repositories over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Posts:        NewPostRepository(db),
		Interactions: NewInteractionRepository(db),
		Comments:     NewCommentRepository(db),
		Users:        NewUserRepository(db),
	}
}

// InTx runs fn with a Store bound to a single transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
