package sales

import (
	"context"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared"
)

// TransactionScope runs a mutation atomically. Every write made through the
// repositories handed to fn commits together or not at all.
type TransactionScope interface {
	// Execute runs fn within a database transaction. If fn returns an error the
	// transaction is rolled back; if the rollback itself fails the result is a
	// *shared.CompensationFailureError wrapping both errors.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides every repository an orchestrator needs,
// all sharing the same database transaction.
type TransactionalRepositories interface {
	ledgerapp.Repositories
	OrderRepo() sales.OrderRepository
	OrderLineRepo() sales.OrderLineRepository
	PaymentRepo() sales.PaymentRepository
	ProductRepo() sales.ProductRepository
	InventoryRepo() sales.InventoryRepository
	// References returns the existence checker bound to the transaction
	References() shared.ReferenceChecker
}
