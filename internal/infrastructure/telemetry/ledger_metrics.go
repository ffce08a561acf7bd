package telemetry

import (
	"context"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"go.opentelemetry.io/otel/metric"
)

// LedgerMetrics counts ledger outcomes. Amounts are exported in minor units
// (cents) so they fit an integer counter.
type LedgerMetrics struct {
	adjustments          *Counter
	adjustedAmount       *Counter
	rejections           *Counter
	compensationFailures *Counter
}

// NewLedgerMetrics creates the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	adjustments, err := NewCounter(meter, "ledger_adjustments_total", "Applied ledger adjustments", "{adjustments}")
	if err != nil {
		return nil, err
	}
	adjustedAmount, err := NewCounter(meter, "ledger_adjusted_amount_total", "Absolute adjusted amount in cents", "{cents}")
	if err != nil {
		return nil, err
	}
	rejections, err := NewCounter(meter, "ledger_rejections_total", "Rejected ledger adjustments", "{adjustments}")
	if err != nil {
		return nil, err
	}
	compensationFailures, err := NewCounter(meter, "ledger_compensation_failures_total",
		"Mutations whose rollback failed and need manual reconciliation", "{failures}")
	if err != nil {
		return nil, err
	}

	return &LedgerMetrics{
		adjustments:          adjustments,
		adjustedAmount:       adjustedAmount,
		rejections:           rejections,
		compensationFailures: compensationFailures,
	}, nil
}

// RecordAdjustment counts an applied adjustment
func (m *LedgerMetrics) RecordAdjustment(ctx context.Context, kind ledger.Kind, delta valueobject.Money) {
	attrs := AttrLedgerKind.String(kind.String())
	m.adjustments.Inc(ctx, attrs)
	m.adjustedAmount.Add(ctx, delta.Abs().Amount().Shift(2).IntPart(), attrs)
}

// RecordRejection counts an adjustment refused by the account
func (m *LedgerMetrics) RecordRejection(ctx context.Context, kind ledger.Kind, code string) {
	m.rejections.Inc(ctx, AttrLedgerKind.String(kind.String()), AttrErrorCode.String(code))
}

// RecordCompensationFailure counts a failed rollback
func (m *LedgerMetrics) RecordCompensationFailure(ctx context.Context, operation string) {
	m.compensationFailures.Inc(ctx, AttrOperation.String(operation))
}
