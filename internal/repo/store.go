package repo

import (
	"context"

	"gorm.io/gorm"
)

// Store wraps all database access. Handlers never touch *gorm.DB directly,
// they go through a Store injected into the services.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Tx runs fn inside a transaction. The closure receives a Store bound to the
// transaction; any error (or panic) rolls the whole thing back.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx})
	})
}
