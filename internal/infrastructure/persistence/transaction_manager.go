package persistence

import (
	"context"

	"gorm.io/gorm"
)

// GormTransactionManager opens transaction boundaries for application-level
// units of work.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Atomic runs fn inside a transaction, committing on nil and rolling back on
// error. The handle passed to fn joins every repository call into the same
// transaction.
func (m *GormTransactionManager) Atomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return Atomic(ctx, m.db, fn)
}
