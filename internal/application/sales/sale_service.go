package sales

import (
	"context"
	"errors"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared"
	"go.uber.org/zap"
)

// SaleCompletedMessage is returned with every successful sale
const SaleCompletedMessage = "Transaction completed successfully"

// SaleService runs point-of-sale transactions: an in-store order charged to
// an account with stock taken from one location
type SaleService struct {
	runner
	adjuster *ledgerapp.Adjuster
}

// NewSaleService creates a new SaleService
func NewSaleService(scope TransactionScope, adjuster *ledgerapp.Adjuster, logger *zap.Logger, metrics ledgerapp.Metrics) *SaleService {
	return &SaleService{
		runner:   newRunner(scope, logger, metrics),
		adjuster: adjuster,
	}
}

// Sell records the sale, charges the account and decrements stock, all or nothing
func (s *SaleService) Sell(ctx context.Context, req SaleRequest) (*SaleResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "quantity must be greater than 0")
	}

	var resp *SaleResponse
	err := s.execute(ctx, "sale", func(repos TransactionalRepositories) error {
		if _, err := repos.AccountRepo().FindByID(ctx, req.AccountID); err != nil {
			return notFoundAs(err, "Account")
		}
		refs := NewReferenceValidator(repos.References())
		if err := refs.Require(ctx, "customer_id", shared.RefCustomer, refTo(req.CustomerID)); err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return notFoundAs(err, "Product")
		}
		stock, err := repos.InventoryRepo().FindForUpdate(ctx, req.LocationID, req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(shared.CodeNotFound, "Inventory record not found for this location/product")
			}
			return err
		}
		if err := stock.Deduct(req.Quantity); err != nil {
			return err
		}

		order, err := sales.NewOrder(req.CustomerID, sales.ChannelInStore)
		if err != nil {
			return err
		}
		if err := order.SetStatus(sales.OrderStatusCompleted); err != nil {
			return err
		}
		order.AccountID = &req.AccountID
		order.LocationID = &req.LocationID
		total := product.UnitPrice.MulQty(req.Quantity)
		if err := order.SetTotal(&total); err != nil {
			return err
		}
		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return err
		}

		line, err := sales.NewOrderLine(order.ID, 1, product.ID, req.Quantity, product.UnitPrice, nil)
		if err != nil {
			return err
		}
		if err := repos.OrderLineRepo().Create(ctx, line); err != nil {
			return err
		}

		src := ledger.Source{Type: ledger.SourceSale, ID: order.ID.String()}
		if _, err := s.adjuster.Apply(ctx, repos, ledger.Charge(req.AccountID, total, src, "point of sale")); err != nil {
			return err
		}

		if err := repos.InventoryRepo().SaveWithLock(ctx, stock); err != nil {
			return err
		}

		account, err := repos.AccountRepo().FindByID(ctx, req.AccountID)
		if err != nil {
			return err
		}
		orderResp := ToOrderResponse(order)
		orderResp.Lines = []OrderLineResponse{ToOrderLineResponse(line)}
		resp = &SaleResponse{
			Message:   SaleCompletedMessage,
			TotalCost: total,
			Order:     orderResp,
			Account:   ledgerapp.ToAccountResponse(account),
			Inventory: ToInventoryResponse(stock),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale completed",
		zap.String("order_id", resp.Order.ID.String()),
		zap.String("account_id", req.AccountID.String()),
		zap.String("total", resp.TotalCost.String()),
		zap.Int("quantity", req.Quantity),
	)
	return resp, nil
}
