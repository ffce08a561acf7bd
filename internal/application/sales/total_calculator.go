package sales

import (
	"context"
	"fmt"

	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OrderTotalCalculator derives an order's total from its stored lines
type OrderTotalCalculator struct{}

// RecalcOrderTotal reads the order's current lines and sums them. The caller
// persists the result.
func (OrderTotalCalculator) RecalcOrderTotal(ctx context.Context, lines sales.OrderLineRepository, orderID uuid.UUID) (valueobject.Money, error) {
	current, err := lines.FindByOrder(ctx, orderID)
	if err != nil {
		return valueobject.Zero(), fmt.Errorf("load order lines: %w", err)
	}
	return sales.CalculateOrderTotal(current), nil
}
