package sales

import (
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Product is a catalog entry. Only the price is used here.
type Product struct {
	ID        uuid.UUID
	Name      string
	SKU       string
	UnitPrice valueobject.Money
}

// InventoryItem is the stock of one product at one location
type InventoryItem struct {
	LocationID      uuid.UUID
	ProductID       uuid.UUID
	QuantityOnHand  int
	ReorderLevel    int
	ReorderQuantity int
	Version         int
}

// Deduct removes quantity from stock
func (i *InventoryItem) Deduct(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity", "quantity must be greater than 0")
	}
	if i.QuantityOnHand < quantity {
		return shared.ErrInsufficientStock
	}
	i.QuantityOnHand -= quantity
	i.Version++
	return nil
}

// NeedsReorder reports whether stock has fallen to the reorder level
func (i *InventoryItem) NeedsReorder() bool {
	return i.QuantityOnHand <= i.ReorderLevel
}
