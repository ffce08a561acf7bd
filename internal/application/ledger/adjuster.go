// Package ledger holds the use cases that move account balances.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Repositories is the slice of a transaction the adjuster needs. Both
// repositories must be bound to the caller's transaction.
type Repositories interface {
	AccountRepo() ledger.AccountRepository
	EntryRepo() ledger.EntryRepository
}

// Adjuster applies ledger adjustments: lock the account, check and move the
// balance, persist it, and append the journal entry.
type Adjuster struct {
	logger  *zap.Logger
	metrics Metrics
}

// NewAdjuster creates a new Adjuster
func NewAdjuster(logger *zap.Logger, metrics Metrics) *Adjuster {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Adjuster{logger: logger, metrics: metrics}
}

// Apply posts adj inside the caller's transaction. A zero delta is skipped and
// returns a nil entry. A missing account is a validation error on account_id.
func (a *Adjuster) Apply(ctx context.Context, repos Repositories, adj ledger.Adjustment) (_ *ledger.Entry, err error) {
	if adj.IsNoop() {
		return nil, nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "apply",
		telemetry.SpanAttrAccountID, adj.AccountID.String(),
		telemetry.SpanAttrKind, adj.Kind.String(),
		telemetry.SpanAttrAmount, adj.Delta.String(),
		telemetry.SpanAttrSourceType, string(adj.Source.Type),
		telemetry.SpanAttrSourceID, adj.Source.ID,
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	account, err := repos.AccountRepo().FindByIDForUpdate(ctx, adj.AccountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewInvalidReferenceError("account_id", adj.AccountID)
		}
		return nil, fmt.Errorf("lock account: %w", err)
	}

	entry, err := account.Apply(adj)
	if err != nil {
		a.reject(ctx, adj, err)
		return nil, err
	}

	if err := repos.AccountRepo().SaveWithLock(ctx, account); err != nil {
		return nil, err
	}
	if err := repos.EntryRepo().Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append ledger entry: %w", err)
	}

	a.metrics.RecordAdjustment(ctx, adj.Kind, adj.Delta)
	a.logger.Info("ledger adjustment applied",
		zap.String("account_id", adj.AccountID.String()),
		zap.String("kind", adj.Kind.String()),
		zap.String("delta", adj.Delta.String()),
		zap.String("balance_before", entry.BalanceBefore.String()),
		zap.String("balance_after", entry.BalanceAfter.String()),
		zap.String("source_type", string(adj.Source.Type)),
		zap.String("source_id", adj.Source.ID),
	)
	return entry, nil
}

// ApplyAll posts adjustments in order and stops at the first failure. The
// caller's transaction rollback undoes any that were already applied.
func (a *Adjuster) ApplyAll(ctx context.Context, repos Repositories, adjs ...ledger.Adjustment) error {
	for _, adj := range adjs {
		if _, err := a.Apply(ctx, repos, adj); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adjuster) reject(ctx context.Context, adj ledger.Adjustment, err error) {
	code := "UNKNOWN"
	var de *shared.DomainError
	if errors.As(err, &de) {
		code = de.Code
	}
	a.metrics.RecordRejection(ctx, adj.Kind, code)
	a.logger.Warn("ledger adjustment rejected",
		zap.String("account_id", adj.AccountID.String()),
		zap.String("kind", adj.Kind.String()),
		zap.String("delta", adj.Delta.String()),
		zap.String("code", code),
		zap.Error(err),
	)
}
