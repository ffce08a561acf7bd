package ledger

import (
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Kind tags a ledger adjustment with the policy it is subject to
type Kind string

const (
	// KindCharge increases what the customer owes and is gated by the credit limit
	KindCharge Kind = "CHARGE"
	// KindPayment records money received; always a negative delta, never gated
	KindPayment Kind = "PAYMENT"
	// KindReversal undoes a prior contribution; never gated
	KindReversal Kind = "REVERSAL"
)

// IsValid checks if the kind is one of the known variants
func (k Kind) IsValid() bool {
	switch k {
	case KindCharge, KindPayment, KindReversal:
		return true
	}
	return false
}

// CreditChecked reports whether adjustments of this kind must respect the credit limit
func (k Kind) CreditChecked() bool {
	return k == KindCharge
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// SourceType identifies the workflow that produced an adjustment
type SourceType string

const (
	SourceOrder     SourceType = "ORDER"
	SourceOrderLine SourceType = "ORDER_LINE"
	SourcePayment   SourceType = "PAYMENT"
	SourceSale      SourceType = "SALE"
)

// Source points back at the record whose monetary contribution is being posted
type Source struct {
	Type SourceType
	ID   string
}

// Adjustment is a signed change to one account's balance
type Adjustment struct {
	Kind      Kind
	AccountID uuid.UUID
	Delta     valueobject.Money
	Source    Source
	Reason    string
}

// Charge creates a credit-checked adjustment
func Charge(accountID uuid.UUID, delta valueobject.Money, source Source, reason string) Adjustment {
	return Adjustment{Kind: KindCharge, AccountID: accountID, Delta: delta, Source: source, Reason: reason}
}

// Payment creates an adjustment for money received. The delta is always negative
// regardless of the sign of amount.
func Payment(accountID uuid.UUID, amount valueobject.Money, source Source, reason string) Adjustment {
	return Adjustment{Kind: KindPayment, AccountID: accountID, Delta: amount.Abs().Neg(), Source: source, Reason: reason}
}

// Reversal creates an unconditional adjustment
func Reversal(accountID uuid.UUID, delta valueobject.Money, source Source, reason string) Adjustment {
	return Adjustment{Kind: KindReversal, AccountID: accountID, Delta: delta, Source: source, Reason: reason}
}

// ForTotalChange picks the variant for a change in an order's contribution:
// increases are charges, decreases reduce debt and are reversals.
func ForTotalChange(accountID uuid.UUID, delta valueobject.Money, source Source, reason string) Adjustment {
	if delta.IsNegative() {
		return Reversal(accountID, delta, source, reason)
	}
	return Charge(accountID, delta, source, reason)
}

// IsNoop reports whether applying the adjustment would not move the balance
func (a Adjustment) IsNoop() bool {
	return a.Delta.IsZero()
}

// Inverse returns the compensating adjustment that undoes this one
func (a Adjustment) Inverse() Adjustment {
	return Reversal(a.AccountID, a.Delta.Neg(), a.Source, "compensation: "+a.Reason)
}
