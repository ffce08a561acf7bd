package persistence

import (
	"errors"

	"github.com/erp/ledger/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors onto domain errors. The database is opened
// with TranslateError so unique and foreign key violations arrive as gorm
// sentinels on both postgres and sqlite. Check violations are only translated
// on postgres.
func translateError(err error, conflictMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConflictError(conflictMessage)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewConflictError(conflictMessage)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.NewValidationError("", "Value is out of range for a stored column")
	default:
		return err
	}
}

func concurrencyConflict(kind string) error {
	return shared.NewDomainError(shared.CodeConcurrencyConflict, kind+" was modified by another transaction")
}
