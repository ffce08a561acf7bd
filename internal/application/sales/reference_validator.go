package sales

import (
	"context"
	"fmt"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Ref is one optional foreign key to check
type Ref struct {
	Field string
	Kind  shared.ReferenceKind
	ID    *uuid.UUID
}

// ReferenceValidator confirms that foreign keys resolve before anything is written
type ReferenceValidator struct {
	checker shared.ReferenceChecker
}

// NewReferenceValidator creates a validator over the given checker
func NewReferenceValidator(checker shared.ReferenceChecker) *ReferenceValidator {
	return &ReferenceValidator{checker: checker}
}

// Require checks one reference. A nil id is valid and costs no lookup.
func (v *ReferenceValidator) Require(ctx context.Context, field string, kind shared.ReferenceKind, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	exists, err := v.checker.Exists(ctx, kind, *id)
	if err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if !exists {
		return shared.NewInvalidReferenceError(field, *id)
	}
	return nil
}

// RequireAll checks references in order and stops at the first failure
func (v *ReferenceValidator) RequireAll(ctx context.Context, refs ...Ref) error {
	for _, r := range refs {
		if err := v.Require(ctx, r.Field, r.Kind, r.ID); err != nil {
			return err
		}
	}
	return nil
}

func refTo(id uuid.UUID) *uuid.UUID {
	return &id
}
