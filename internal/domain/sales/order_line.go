package sales

import (
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OrderLine is one product line of an order, keyed by (OrderID, LineNo)
type OrderLine struct {
	OrderID        uuid.UUID
	LineNo         int
	ProductID      uuid.UUID
	Quantity       int
	UnitPrice      valueobject.Money
	DiscountAmount *valueobject.Money
}

// NewOrderLine validates and builds a line
func NewOrderLine(orderID uuid.UUID, lineNo int, productID uuid.UUID, quantity int, unitPrice valueobject.Money, discount *valueobject.Money) (*OrderLine, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("order_id", "order_id is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id", "product_id is required")
	}
	if lineNo <= 0 {
		return nil, shared.NewValidationError("line_no", "line_no must be positive")
	}
	line := &OrderLine{OrderID: orderID, LineNo: lineNo, ProductID: productID}
	if err := line.SetQuantity(quantity); err != nil {
		return nil, err
	}
	if err := line.SetUnitPrice(unitPrice); err != nil {
		return nil, err
	}
	if err := line.SetDiscount(discount); err != nil {
		return nil, err
	}
	return line, nil
}

// SetQuantity changes the quantity
func (l *OrderLine) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity", "quantity must be greater than 0")
	}
	l.Quantity = quantity
	return nil
}

// SetUnitPrice changes the unit price
func (l *OrderLine) SetUnitPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewValidationError("unit_price", "unit_price cannot be negative")
	}
	l.UnitPrice = price
	return nil
}

// SetDiscount changes the discount. Nil means no discount. A discount may
// not exceed quantity*unit_price.
func (l *OrderLine) SetDiscount(discount *valueobject.Money) error {
	if discount != nil && discount.IsNegative() {
		return shared.NewValidationError("discount_amount", "discount_amount cannot be negative")
	}
	if err := l.checkDiscount(discount); err != nil {
		return err
	}
	l.DiscountAmount = discount
	return nil
}

// ClearDiscount removes the discount
func (l *OrderLine) ClearDiscount() {
	l.DiscountAmount = nil
}

// CheckDiscount reports a discount left above the gross amount by a later
// quantity or price change
func (l *OrderLine) CheckDiscount() error {
	return l.checkDiscount(l.DiscountAmount)
}

func (l *OrderLine) checkDiscount(discount *valueobject.Money) error {
	if discount != nil && discount.GreaterThan(l.Gross()) {
		return shared.NewValidationError("discount_amount", "discount_amount cannot exceed quantity * unit_price")
	}
	return nil
}

// Gross returns quantity*unit_price before any discount
func (l *OrderLine) Gross() valueobject.Money {
	return l.UnitPrice.MulQty(l.Quantity)
}

// Total returns quantity*unit_price minus the discount
func (l *OrderLine) Total() valueobject.Money {
	total := l.Gross()
	if l.DiscountAmount != nil {
		total = total.Sub(*l.DiscountAmount)
	}
	return total
}
