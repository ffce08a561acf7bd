package ledger

import (
	"context"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
)

// Metrics receives ledger outcomes. The telemetry package provides the OTEL
// implementation; NoopMetrics is used when metrics are disabled.
type Metrics interface {
	RecordAdjustment(ctx context.Context, kind ledger.Kind, delta valueobject.Money)
	RecordRejection(ctx context.Context, kind ledger.Kind, code string)
	RecordCompensationFailure(ctx context.Context, operation string)
}

// NoopMetrics discards everything
type NoopMetrics struct{}

func (NoopMetrics) RecordAdjustment(context.Context, ledger.Kind, valueobject.Money) {}
func (NoopMetrics) RecordRejection(context.Context, ledger.Kind, string)             {}
func (NoopMetrics) RecordCompensationFailure(context.Context, string)                {}

var _ Metrics = NoopMetrics{}
