package commerce

import (
	"context"

	"gorm.io/gorm"
)

// TransactionManager opens a transaction boundary for a multi-repository unit
// of work. The handle it passes to fn is forwarded to every repository call
// inside the unit so they all join the same transaction.
type TransactionManager interface {
	Atomic(ctx context.Context, fn func(tx *gorm.DB) error) error
}
