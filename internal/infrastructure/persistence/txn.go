package persistence

import (
	"context"

	"gorm.io/gorm"
)

// Acquire joins the caller's transaction or opens a new one.
//
// With a non-nil existing handle, the returned scope is that transaction and
// commit/rollback are no-ops: ownership of the transaction boundary belongs
// to whoever opened it first, so a nested acquisition can never double-commit
// or double-rollback. With a nil existing handle, a new transaction is opened
// on base and the returned funcs perform the real commit/rollback.
//
// Every repository write method goes through this, which is what lets the
// reconciliation engine compose many repository calls under one transaction
// while each method stays callable on its own.
func Acquire(ctx context.Context, base, existing *gorm.DB) (scope *gorm.DB, commit, rollback func() error) {
	if existing != nil {
		noop := func() error { return nil }
		return existing, noop, noop
	}
	tx := base.WithContext(ctx).Begin()
	return tx,
		func() error { return tx.Commit().Error },
		func() error { return tx.Rollback().Error }
}

// Atomic opens a transaction on base, runs fn inside it, and commits or rolls
// back depending on fn's error. fn's error is returned unmodified.
func Atomic(ctx context.Context, base *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx, commit, rollback := Acquire(ctx, base, nil)
	if err := tx.Error; err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = rollback()
		return err
	}
	return commit()
}
