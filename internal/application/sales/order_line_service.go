package sales

import (
	"context"
	"fmt"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderLineService handles order line mutations. Every mutation refreshes
// the owning order's total and posts the difference to its account.
type OrderLineService struct {
	runner
	lineRepo   sales.OrderLineRepository
	adjuster   *ledgerapp.Adjuster
	calculator OrderTotalCalculator
}

// NewOrderLineService creates a new OrderLineService
func NewOrderLineService(
	lineRepo sales.OrderLineRepository,
	scope TransactionScope,
	adjuster *ledgerapp.Adjuster,
	logger *zap.Logger,
	metrics ledgerapp.Metrics,
) *OrderLineService {
	return &OrderLineService{
		runner:   newRunner(scope, logger, metrics),
		lineRepo: lineRepo,
		adjuster: adjuster,
	}
}

// Create adds a line. The unit price defaults to the catalog price and the
// line number to one past the highest existing number.
func (s *OrderLineService) Create(ctx context.Context, req CreateOrderLineRequest) (*OrderLineResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "quantity must be greater than 0")
	}

	var created *sales.OrderLine
	err := s.execute(ctx, "create_order_line", func(repos TransactionalRepositories) error {
		refs := NewReferenceValidator(repos.References())
		if err := refs.RequireAll(ctx,
			Ref{Field: "order_id", Kind: shared.RefOrder, ID: refTo(req.OrderID)},
			Ref{Field: "product_id", Kind: shared.RefProduct, ID: refTo(req.ProductID)},
		); err != nil {
			return err
		}

		order, err := lockOrder(ctx, repos, req.OrderID, "Order")
		if err != nil {
			return err
		}

		unitPrice, err := s.resolveUnitPrice(ctx, repos, req.ProductID, req.UnitPrice)
		if err != nil {
			return err
		}

		existing, err := repos.OrderLineRepo().FindByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		lineNo := sales.NextLineNo(existing)
		if req.LineNo != nil {
			lineNo = *req.LineNo
			for _, l := range existing {
				if l.LineNo == lineNo {
					return shared.NewConflictError("Order line already exists for this order and line number")
				}
			}
		}

		line, err := sales.NewOrderLine(order.ID, lineNo, req.ProductID, req.Quantity, unitPrice, req.DiscountAmount)
		if err != nil {
			return err
		}
		if err := repos.OrderLineRepo().Create(ctx, line); err != nil {
			return err
		}

		if err := s.refreshTotal(ctx, repos, order, line.LineNo, "order line added"); err != nil {
			return err
		}

		created, err = repos.OrderLineRepo().Find(ctx, order.ID, line.LineNo)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderLineResponse(created)
	return &resp, nil
}

// Update changes a line's product, quantity, price or discount
func (s *OrderLineService) Update(ctx context.Context, orderID uuid.UUID, lineNo int, req UpdateOrderLineRequest) (*OrderLineResponse, error) {
	if req.IsEmpty() {
		return nil, shared.NewValidationError("", "No fields to update")
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "quantity must be greater than 0")
	}

	var updated *sales.OrderLine
	err := s.execute(ctx, "update_order_line", func(repos TransactionalRepositories) error {
		refs := NewReferenceValidator(repos.References())
		if err := refs.Require(ctx, "product_id", shared.RefProduct, req.ProductID); err != nil {
			return err
		}

		order, err := lockOrder(ctx, repos, orderID, "Order line")
		if err != nil {
			return err
		}
		line, err := repos.OrderLineRepo().Find(ctx, orderID, lineNo)
		if err != nil {
			return notFoundAs(err, "Order line")
		}

		if req.ProductID != nil {
			line.ProductID = *req.ProductID
		}
		if req.Quantity != nil {
			if err := line.SetQuantity(*req.Quantity); err != nil {
				return err
			}
		}
		if req.UnitPrice != nil {
			if err := line.SetUnitPrice(*req.UnitPrice); err != nil {
				return err
			}
		}
		if req.ClearDiscount {
			line.ClearDiscount()
		} else if req.DiscountAmount != nil {
			if err := line.SetDiscount(req.DiscountAmount); err != nil {
				return err
			}
		}
		if err := line.CheckDiscount(); err != nil {
			return err
		}

		if err := repos.OrderLineRepo().Update(ctx, line); err != nil {
			return err
		}
		if err := s.refreshTotal(ctx, repos, order, lineNo, "order line updated"); err != nil {
			return err
		}

		updated, err = repos.OrderLineRepo().Find(ctx, orderID, lineNo)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderLineResponse(updated)
	return &resp, nil
}

// Delete removes a line and credits its value back to the account
func (s *OrderLineService) Delete(ctx context.Context, orderID uuid.UUID, lineNo int) error {
	return s.execute(ctx, "delete_order_line", func(repos TransactionalRepositories) error {
		order, err := lockOrder(ctx, repos, orderID, "Order line")
		if err != nil {
			return err
		}
		if _, err := repos.OrderLineRepo().Find(ctx, orderID, lineNo); err != nil {
			return notFoundAs(err, "Order line")
		}
		if err := repos.OrderLineRepo().Delete(ctx, orderID, lineNo); err != nil {
			return err
		}
		return s.refreshTotal(ctx, repos, order, lineNo, "order line removed")
	})
}

// Get returns one line
func (s *OrderLineService) Get(ctx context.Context, orderID uuid.UUID, lineNo int) (*OrderLineResponse, error) {
	line, err := s.lineRepo.Find(ctx, orderID, lineNo)
	if err != nil {
		return nil, notFoundAs(err, "Order line")
	}
	resp := ToOrderLineResponse(line)
	return &resp, nil
}

// ListByOrder returns every line of an order
func (s *OrderLineService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderLineResponse, error) {
	lines, err := s.lineRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderLineResponses(lines), nil
}

// ListAll returns a page of every line, ordered by order and line number
func (s *OrderLineService) ListAll(ctx context.Context, filter OrderLineListFilter) ([]OrderLineResponse, int64, error) {
	lines, total, err := s.lineRepo.FindAll(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}.Normalize())
	if err != nil {
		return nil, 0, err
	}
	return ToOrderLineResponses(lines), total, nil
}

func (s *OrderLineService) resolveUnitPrice(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, given *valueobject.Money) (valueobject.Money, error) {
	if given != nil {
		return *given, nil
	}
	product, err := repos.ProductRepo().FindByID(ctx, productID)
	if err != nil {
		return valueobject.Money{}, notFoundAs(err, "Product")
	}
	return product.UnitPrice, nil
}

// refreshTotal recomputes the order total from its lines, posts the change
// to the order's account and stores the new total. It must run after the
// line write and before commit.
func (s *OrderLineService) refreshTotal(ctx context.Context, repos TransactionalRepositories, order *sales.Order, lineNo int, reason string) error {
	newTotal, err := s.calculator.RecalcOrderTotal(ctx, repos.OrderLineRepo(), order.ID)
	if err != nil {
		return err
	}
	delta := newTotal.Sub(order.Contribution())

	if order.AccountID != nil {
		src := ledger.Source{Type: ledger.SourceOrderLine, ID: fmt.Sprintf("%s:%d", order.ID, lineNo)}
		if _, err := s.adjuster.Apply(ctx, repos, ledger.ForTotalChange(*order.AccountID, delta, src, reason)); err != nil {
			return err
		}
	}

	if order.TotalAmount != nil && order.TotalAmount.Equals(newTotal) {
		return nil
	}
	if err := order.SetTotal(&newTotal); err != nil {
		return err
	}
	order.IncrementVersion()
	return repos.OrderRepo().SaveWithLock(ctx, order)
}
