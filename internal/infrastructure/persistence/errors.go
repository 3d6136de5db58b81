package persistence

import (
	"errors"
	"fmt"

	"github.com/orderdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateWriteError converts a storage-engine error into the domain error
// taxonomy. Constraint violations become validation-shaped errors naming the
// offending field so callers (and the duplicate-merge recovery) can
// pattern-match on a structured kind instead of a driver message. Anything
// unrecognized passes through unmodified.
func translateWriteError(err error, uniqueField string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewValidationError(uniqueField, shared.ErrCodeUniqueViolation,
			fmt.Sprintf("%s must be unique", uniqueField))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewValidationError(uniqueField, shared.ErrCodeForeignKey,
			"referenced row does not exist or is still referenced")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	default:
		return err
	}
}

// translateReadError maps the storage engine's missing-row error to the
// domain's not-found error and passes everything else through.
func translateReadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
