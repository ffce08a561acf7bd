package ledger

import (
	"fmt"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CodeCreditLimitExceeded is the error code for a rejected charge
const CodeCreditLimitExceeded = "CREDIT_LIMIT_EXCEEDED"

// ErrCreditLimitExceeded is the sentinel matched by errors.Is
var ErrCreditLimitExceeded = shared.NewDomainError(CodeCreditLimitExceeded, "Credit limit exceeded")

// NewAccountInUseError reports an account that cannot be deleted because
// orders or payments still reference it
func NewAccountInUseError() *shared.DomainError {
	return shared.NewValidationError("", "Cannot delete account with existing orders or payments")
}

// CreditLimitExceededError reports a charge whose resulting balance would pass the credit limit
type CreditLimitExceededError struct {
	AccountID       uuid.UUID
	Limit           valueobject.Money
	PriorBalance    valueobject.Money
	RejectedBalance valueobject.Money
}

// Error implements the error interface
func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf(
		"Adding this item would exceed credit limit. Credit limit: %s, Current balance: %s, New balance would be: %s",
		e.Limit, e.PriorBalance, e.RejectedBalance,
	)
}

// Unwrap lets errors.As find the domain error carrying the code
func (e *CreditLimitExceededError) Unwrap() error {
	return &shared.DomainError{Code: CodeCreditLimitExceeded, Message: e.Error()}
}

// Is matches the ErrCreditLimitExceeded sentinel
func (e *CreditLimitExceededError) Is(target error) bool {
	return target == ErrCreditLimitExceeded
}
