package ledger

import (
	"strings"
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AccountStatus represents the lifecycle state of a customer account
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

// IsValid checks if the status is a known value
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusSuspended, AccountStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of AccountStatus
func (s AccountStatus) String() string {
	return string(s)
}

// Account is the aggregate root that owns a customer's running balance.
// CurrentBalance is positive when the customer owes money and is only ever
// changed through Apply.
type Account struct {
	shared.BaseAggregateRoot
	CustomerID     uuid.UUID
	AccountNumber  string
	CreditLimit    *valueobject.Money
	OpeningBalance valueobject.Money
	CurrentBalance valueobject.Money
	Status         AccountStatus
	OpenedDate     time.Time
}

// NewAccount opens an account with an initial balance
func NewAccount(customerID uuid.UUID, accountNumber string, creditLimit *valueobject.Money, openingBalance valueobject.Money) (*Account, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "customer_id is required")
	}
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, shared.NewValidationError("account_number", "account_number is required")
	}
	if len(accountNumber) > 50 {
		return nil, shared.NewValidationError("account_number", "account_number cannot exceed 50 characters")
	}
	if creditLimit != nil && creditLimit.IsNegative() {
		return nil, shared.NewValidationError("credit_limit", "credit_limit cannot be negative")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		AccountNumber:     accountNumber,
		CreditLimit:       creditLimit,
		OpeningBalance:    openingBalance,
		CurrentBalance:    openingBalance,
		Status:            AccountStatusActive,
		OpenedDate:        time.Now(),
	}, nil
}

// HasCreditLimit reports whether the balance is bounded
func (a *Account) HasCreditLimit() bool {
	return a.CreditLimit != nil
}

// AvailableCredit returns how much more can be charged, or nil when unbounded
func (a *Account) AvailableCredit() *valueobject.Money {
	if a.CreditLimit == nil {
		return nil
	}
	available := a.CreditLimit.Sub(a.CurrentBalance)
	return &available
}

// CheckCredit returns a CreditLimitExceededError if applying adj would push the
// balance past the limit. Only credit-checked kinds are tested; the boundary
// is inclusive, so a balance equal to the limit is accepted.
func (a *Account) CheckCredit(adj Adjustment) error {
	if !adj.Kind.CreditChecked() || a.CreditLimit == nil {
		return nil
	}
	proposed := a.CurrentBalance.Add(adj.Delta)
	if proposed.GreaterThan(*a.CreditLimit) {
		return &CreditLimitExceededError{
			AccountID:       a.ID,
			Limit:           *a.CreditLimit,
			PriorBalance:    a.CurrentBalance,
			RejectedBalance: proposed,
		}
	}
	return nil
}

// Apply runs the adjustment state machine against this account: compute the
// proposed balance, check the ceiling for charges, then write. A rejected
// adjustment leaves the account untouched.
func (a *Account) Apply(adj Adjustment) (*Entry, error) {
	if !adj.Kind.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown ledger adjustment kind: "+string(adj.Kind))
	}
	if adj.AccountID != a.ID {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Adjustment is addressed to a different account")
	}
	if adj.Kind == KindPayment && adj.Delta.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Payment adjustments must decrease the balance")
	}
	if adj.Kind == KindCharge && a.Status != AccountStatusActive && adj.Delta.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot charge a "+strings.ToLower(string(a.Status))+" account")
	}
	if err := a.CheckCredit(adj); err != nil {
		return nil, err
	}

	before := a.CurrentBalance
	a.CurrentBalance = before.Add(adj.Delta)
	a.IncrementVersion()

	return newEntry(a.ID, adj, before, a.CurrentBalance), nil
}

// SetCreditLimit changes the ceiling. Lowering it below the current balance is
// allowed; it only blocks further charges. The caller bumps the version when
// saving.
func (a *Account) SetCreditLimit(limit *valueobject.Money) error {
	if limit != nil && limit.IsNegative() {
		return shared.NewValidationError("credit_limit", "credit_limit cannot be negative")
	}
	a.CreditLimit = limit
	a.Touch()
	return nil
}

// SetStatus changes the account status
func (a *Account) SetStatus(status AccountStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Invalid account status: "+string(status))
	}
	a.Status = status
	a.Touch()
	return nil
}
