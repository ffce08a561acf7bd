package sales

import (
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Order is a customer order. TotalAmount is the cached sum of its lines; for an
// order without lines it may carry an explicit value or be empty.
type Order struct {
	shared.BaseAggregateRoot
	OrderDatetime time.Time
	Channel       Channel
	CustomerID    uuid.UUID
	AccountID     *uuid.UUID
	LocationID    *uuid.UUID
	TotalAmount   *valueobject.Money
	Status        OrderStatus
}

// NewOrder creates a pending order
func NewOrder(customerID uuid.UUID, channel Channel) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "customer_id is required")
	}
	if !channel.IsValid() {
		return nil, shared.NewValidationError("channel", "Invalid channel: "+string(channel))
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderDatetime:     time.Now(),
		Channel:           channel,
		CustomerID:        customerID,
		Status:            OrderStatusPending,
	}, nil
}

// SetStatus changes the order status
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Invalid order status: "+string(status))
	}
	o.Status = status
	return nil
}

// SetChannel changes the order channel
func (o *Order) SetChannel(channel Channel) error {
	if !channel.IsValid() {
		return shared.NewValidationError("channel", "Invalid channel: "+string(channel))
	}
	o.Channel = channel
	return nil
}

// SetTotal replaces the stored total. A nil total clears it.
func (o *Order) SetTotal(total *valueobject.Money) error {
	if total != nil && total.IsNegative() {
		return shared.NewValidationError("total_amount", "total_amount cannot be negative")
	}
	o.TotalAmount = total
	return nil
}

// Contribution is the amount this order adds to its account balance
func (o *Order) Contribution() valueobject.Money {
	if o.TotalAmount == nil {
		return valueobject.Zero()
	}
	return *o.TotalAmount
}

// IsOnAccount reports whether the order is billed to a customer account
func (o *Order) IsOnAccount() bool {
	return o.AccountID != nil
}
