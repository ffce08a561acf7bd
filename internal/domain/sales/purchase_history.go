package sales

import (
	"time"

	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PurchaseRecord is one row of a customer's purchase history: an order joined
// with one of its lines. An order without lines yields a single record whose
// line fields are nil.
type PurchaseRecord struct {
	CustomerID     uuid.UUID
	CustomerName   string
	Email          *string
	OrderID        uuid.UUID
	OrderDatetime  time.Time
	Channel        Channel
	TotalAmount    *valueobject.Money
	OrderStatus    OrderStatus
	LocationID     *uuid.UUID
	LocationName   *string
	LineNo         *int
	ProductID      *uuid.UUID
	ProductName    *string
	SKU            *string
	Quantity       *int
	UnitPrice      *valueobject.Money
	DiscountAmount *valueobject.Money
}
