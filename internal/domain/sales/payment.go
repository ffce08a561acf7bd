package sales

import (
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Payment records money received, optionally against an order and an account
type Payment struct {
	shared.BaseEntity
	OrderID       *uuid.UUID
	AccountID     *uuid.UUID
	CardID        *uuid.UUID
	Amount        valueobject.Money
	PaymentMethod PaymentMethod
	PaymentDate   time.Time
}

// NewPayment validates and builds a payment
func NewPayment(amount valueobject.Money, method PaymentMethod, paymentDate time.Time) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "amount must be greater than 0")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("payment_method", "Invalid payment_method: "+string(method))
	}
	if paymentDate.IsZero() {
		return nil, shared.NewValidationError("payment_date", "payment_date is required")
	}
	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		Amount:        amount,
		PaymentMethod: method,
		PaymentDate:   paymentDate,
	}, nil
}
