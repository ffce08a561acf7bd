package sales

import (
	"context"
	"errors"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"go.uber.org/zap"
)

// runner executes an orchestrator body in the transaction scope and reports
// failed rollbacks
type runner struct {
	scope   TransactionScope
	logger  *zap.Logger
	metrics ledgerapp.Metrics
}

func newRunner(scope TransactionScope, logger *zap.Logger, metrics ledgerapp.Metrics) runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = ledgerapp.NoopMetrics{}
	}
	return runner{scope: scope, logger: logger, metrics: metrics}
}

func (r runner) execute(ctx context.Context, operation string, fn func(repos TransactionalRepositories) error) error {
	err := r.scope.Execute(ctx, fn)
	var cf *shared.CompensationFailureError
	if errors.As(err, &cf) {
		r.metrics.RecordCompensationFailure(ctx, operation)
		r.logger.Error("rollback failed, manual reconciliation required",
			zap.String("operation", operation),
			zap.NamedError("cause", cf.Cause),
			zap.NamedError("compensation_error", cf.CompensationErr),
		)
	}
	return err
}
