package sales

import (
	"context"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	AccountID  *uuid.UUID
	Status     *OrderStatus
}

// OrderRepository defines persistence for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForUpdate locks the order row for the rest of the transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	// FindByAccount returns every order billed to the account
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Order, error)
	// FindPurchaseHistory returns the customer's orders joined with their
	// lines, newest order first
	FindPurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]PurchaseRecord, error)
	Create(ctx context.Context, order *Order) error
	// SaveWithLock persists an order whose Version was incremented once since
	// it was loaded
	SaveWithLock(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderLineRepository defines persistence for order lines
type OrderLineRepository interface {
	Find(ctx context.Context, orderID uuid.UUID, lineNo int) (*OrderLine, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderLine, error)
	// FindAll pages through every line ordered by order and line number
	FindAll(ctx context.Context, filter shared.Filter) ([]OrderLine, int64, error)
	CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	Create(ctx context.Context, line *OrderLine) error
	Update(ctx context.Context, line *OrderLine) error
	Delete(ctx context.Context, orderID uuid.UUID, lineNo int) error
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	shared.Filter
	OrderID   *uuid.UUID
	AccountID *uuid.UUID
}

// PaymentRepository defines persistence for payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Payment, error)
	CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	Create(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository reads catalog prices
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
}

// InventoryRepository reads and decrements stock
type InventoryRepository interface {
	// FindForUpdate locks the stock row for the rest of the transaction
	FindForUpdate(ctx context.Context, locationID, productID uuid.UUID) (*InventoryItem, error)
	// SaveWithLock persists an item whose Version was incremented once since
	// it was loaded
	SaveWithLock(ctx context.Context, item *InventoryItem) error
}
