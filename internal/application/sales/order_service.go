// Package sales orchestrates the order, line, payment and point-of-sale
// mutations that feed account balances.
package sales

import (
	"context"
	"errors"
	"fmt"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order mutations and queries
type OrderService struct {
	runner
	orderRepo sales.OrderRepository
	lineRepo  sales.OrderLineRepository
	adjuster  *ledgerapp.Adjuster
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo sales.OrderRepository,
	lineRepo sales.OrderLineRepository,
	scope TransactionScope,
	adjuster *ledgerapp.Adjuster,
	logger *zap.Logger,
	metrics ledgerapp.Metrics,
) *OrderService {
	return &OrderService{
		runner:    newRunner(scope, logger, metrics),
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
		adjuster:  adjuster,
	}
}

// Create inserts an order and charges its explicit total to the account
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	var created *sales.Order
	err := s.execute(ctx, "create_order", func(repos TransactionalRepositories) error {
		refs := NewReferenceValidator(repos.References())
		if err := refs.RequireAll(ctx,
			Ref{Field: "customer_id", Kind: shared.RefCustomer, ID: refTo(req.CustomerID)},
			Ref{Field: "account_id", Kind: shared.RefAccount, ID: req.AccountID},
			Ref{Field: "location_id", Kind: shared.RefLocation, ID: req.LocationID},
		); err != nil {
			return err
		}

		order, err := sales.NewOrder(req.CustomerID, sales.Channel(req.Channel))
		if err != nil {
			return err
		}
		if req.OrderDatetime != nil {
			order.OrderDatetime = *req.OrderDatetime
		}
		if req.Status != nil {
			if err := order.SetStatus(sales.OrderStatus(*req.Status)); err != nil {
				return err
			}
		}
		if err := order.SetTotal(req.TotalAmount); err != nil {
			return err
		}
		order.AccountID = req.AccountID
		order.LocationID = req.LocationID

		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return err
		}

		if order.AccountID != nil {
			adj := ledger.Charge(*order.AccountID, order.Contribution(), orderSource(order.ID), "order created")
			if _, err := s.adjuster.Apply(ctx, repos, adj); err != nil {
				return err
			}
		}

		created, err = repos.OrderRepo().FindByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(created)
	return &resp, nil
}

// Update applies a partial update. Changes to the total or the account move
// the order's contribution between balances in the same transaction.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if req.IsEmpty() {
		return nil, shared.NewValidationError("", "No fields to update")
	}

	var updated *sales.Order
	err := s.execute(ctx, "update_order", func(repos TransactionalRepositories) error {
		order, err := lockOrder(ctx, repos, id, "Order")
		if err != nil {
			return err
		}

		accountID := req.AccountID
		if req.ClearAccount {
			accountID = nil
		}
		locationID := req.LocationID
		if req.ClearLocation {
			locationID = nil
		}
		refs := NewReferenceValidator(repos.References())
		if err := refs.RequireAll(ctx,
			Ref{Field: "customer_id", Kind: shared.RefCustomer, ID: req.CustomerID},
			Ref{Field: "account_id", Kind: shared.RefAccount, ID: accountID},
			Ref{Field: "location_id", Kind: shared.RefLocation, ID: locationID},
		); err != nil {
			return err
		}

		oldAccount := order.AccountID
		oldTotal := order.Contribution()

		if req.OrderDatetime != nil {
			order.OrderDatetime = *req.OrderDatetime
		}
		if req.Channel != nil {
			if err := order.SetChannel(sales.Channel(*req.Channel)); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if err := order.SetStatus(sales.OrderStatus(*req.Status)); err != nil {
				return err
			}
		}
		if req.CustomerID != nil {
			order.CustomerID = *req.CustomerID
		}
		if req.ClearAccount || req.AccountID != nil {
			order.AccountID = accountID
		}
		if req.ClearLocation || req.LocationID != nil {
			order.LocationID = locationID
		}
		if req.TotalAmount != nil {
			lineCount, err := repos.OrderLineRepo().CountByOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			if lineCount > 0 {
				return shared.NewValidationError("total_amount", "total_amount is derived from order lines and cannot be set directly")
			}
			if err := order.SetTotal(req.TotalAmount); err != nil {
				return err
			}
		}

		adjs := contributionChange(orderSource(order.ID), oldAccount, oldTotal, order.AccountID, order.Contribution(), "order updated")
		if err := s.adjuster.ApplyAll(ctx, repos, adjs...); err != nil {
			return err
		}

		order.IncrementVersion()
		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		updated, err = repos.OrderRepo().FindByID(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(updated)
	return &resp, nil
}

// Delete removes an order without lines or payments and credits its total
// back to the account
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.execute(ctx, "delete_order", func(repos TransactionalRepositories) error {
		order, err := lockOrder(ctx, repos, id, "Order")
		if err != nil {
			return err
		}

		lineCount, err := repos.OrderLineRepo().CountByOrder(ctx, id)
		if err != nil {
			return err
		}
		paymentCount, err := repos.PaymentRepo().CountByOrder(ctx, id)
		if err != nil {
			return err
		}
		if lineCount > 0 || paymentCount > 0 {
			return shared.NewConflictError("Cannot delete order with existing order lines or payments")
		}

		if err := repos.OrderRepo().Delete(ctx, id); err != nil {
			return err
		}

		adjs := contributionChange(orderSource(id), order.AccountID, order.Contribution(), nil, valueobject.Zero(), "order deleted")
		return s.adjuster.ApplyAll(ctx, repos, adjs...)
	})
}

// GetByID returns an order with its lines
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Order")
	}
	lines, err := s.lineRepo.FindByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	resp.Lines = ToOrderLineResponses(lines)
	return &resp, nil
}

// List returns a page of orders
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	f := sales.OrderFilter{
		Filter:     shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderDir: filter.OrderDir}.Normalize(),
		CustomerID: optionalID(filter.CustomerID),
		AccountID:  optionalID(filter.AccountID),
	}
	if filter.Status != "" {
		status := sales.OrderStatus(filter.Status)
		f.Status = &status
	}
	orders, total, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// PurchaseHistory returns the customer's orders joined with their lines,
// newest first. An unknown customer has an empty history.
func (s *OrderService) PurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]PurchaseRecordResponse, error) {
	records, err := s.orderRepo.FindPurchaseHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseRecordResponses(records), nil
}

func orderSource(id uuid.UUID) ledger.Source {
	return ledger.Source{Type: ledger.SourceOrder, ID: id.String()}
}

// lockOrder loads and row-locks an order, reporting a miss as kind not found
func lockOrder(ctx context.Context, repos TransactionalRepositories, id uuid.UUID, kind string) (*sales.Order, error) {
	order, err := repos.OrderRepo().FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, kind)
	}
	return order, nil
}

func notFoundAs(err error, kind string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(kind)
	}
	return fmt.Errorf("load %s: %w", kind, err)
}
