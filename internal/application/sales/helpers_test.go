package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockReferenceChecker is a mock implementation of shared.ReferenceChecker
type MockReferenceChecker struct {
	mock.Mock
}

func (m *MockReferenceChecker) Exists(ctx context.Context, kind shared.ReferenceKind, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, id)
	return args.Bool(0), args.Error(1)
}

// MockMetrics records compensation failures reported by the runner
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordAdjustment(context.Context, ledger.Kind, valueobject.Money) {}
func (m *MockMetrics) RecordRejection(context.Context, ledger.Kind, string)             {}
func (m *MockMetrics) RecordCompensationFailure(ctx context.Context, operation string) {
	m.Called(ctx, operation)
}

// stubScope returns a fixed error without running fn
type stubScope struct {
	err error
}

func (s stubScope) Execute(context.Context, func(TransactionalRepositories) error) error {
	return s.err
}

func TestReferenceValidator_Require(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("nil id costs no lookup", func(t *testing.T) {
		checker := new(MockReferenceChecker)
		err := NewReferenceValidator(checker).Require(ctx, "account_id", shared.RefAccount, nil)
		require.NoError(t, err)
		checker.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("existing reference passes", func(t *testing.T) {
		checker := new(MockReferenceChecker)
		checker.On("Exists", ctx, shared.RefAccount, id).Return(true, nil).Once()
		require.NoError(t, NewReferenceValidator(checker).Require(ctx, "account_id", shared.RefAccount, &id))
		checker.AssertExpectations(t)
	})

	t.Run("missing reference names the field", func(t *testing.T) {
		checker := new(MockReferenceChecker)
		checker.On("Exists", ctx, shared.RefLocation, id).Return(false, nil)

		err := NewReferenceValidator(checker).Require(ctx, "location_id", shared.RefLocation, &id)

		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, shared.CodeValidation, de.Code)
		assert.Equal(t, "location_id", de.Field)
	})

	t.Run("lookup failure is not a validation error", func(t *testing.T) {
		checker := new(MockReferenceChecker)
		checker.On("Exists", ctx, shared.RefCard, id).Return(false, errors.New("connection reset"))

		err := NewReferenceValidator(checker).Require(ctx, "card_id", shared.RefCard, &id)

		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrValidation)
	})
}

func TestReferenceValidator_RequireAll_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	customer, account, location := uuid.New(), uuid.New(), uuid.New()

	checker := new(MockReferenceChecker)
	checker.On("Exists", ctx, shared.RefCustomer, customer).Return(true, nil)
	checker.On("Exists", ctx, shared.RefAccount, account).Return(false, nil)

	err := NewReferenceValidator(checker).RequireAll(ctx,
		Ref{Field: "customer_id", Kind: shared.RefCustomer, ID: &customer},
		Ref{Field: "account_id", Kind: shared.RefAccount, ID: &account},
		Ref{Field: "location_id", Kind: shared.RefLocation, ID: &location},
	)

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "account_id", de.Field)
	checker.AssertNotCalled(t, "Exists", ctx, shared.RefLocation, location)
}

func TestContributionChange(t *testing.T) {
	src := ledger.Source{Type: ledger.SourceOrder, ID: "o-1"}
	a, b := uuid.New(), uuid.New()
	m := valueobject.MustMoney

	type posted struct {
		account uuid.UUID
		kind    ledger.Kind
		delta   string
	}

	tests := []struct {
		name       string
		oldAccount *uuid.UUID
		oldTotal   string
		newAccount *uuid.UUID
		newTotal   string
		want       []posted
	}{
		{name: "no account either side", oldTotal: "10", newTotal: "20"},
		{name: "same account increase", oldAccount: &a, oldTotal: "100", newAccount: &a, newTotal: "150",
			want: []posted{{a, ledger.KindCharge, "50.00"}}},
		{name: "same account decrease", oldAccount: &a, oldTotal: "100", newAccount: &a, newTotal: "40",
			want: []posted{{a, ledger.KindReversal, "-60.00"}}},
		{name: "account moved", oldAccount: &a, oldTotal: "100", newAccount: &b, newTotal: "120",
			want: []posted{{a, ledger.KindReversal, "-100.00"}, {b, ledger.KindCharge, "120.00"}}},
		{name: "account removed", oldAccount: &a, oldTotal: "100", newTotal: "100",
			want: []posted{{a, ledger.KindReversal, "-100.00"}}},
		{name: "account added", oldTotal: "0", newAccount: &b, newTotal: "75",
			want: []posted{{b, ledger.KindCharge, "75.00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adjs := contributionChange(src, tt.oldAccount, m(tt.oldTotal), tt.newAccount, m(tt.newTotal), "order updated")
			require.Len(t, adjs, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.account, adjs[i].AccountID)
				assert.Equal(t, w.kind, adjs[i].Kind)
				assert.Equal(t, w.delta, adjs[i].Delta.String())
			}
		})
	}
}

func TestRunner_ReportsCompensationFailure(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.ErrorLevel)
	metrics := new(MockMetrics)
	metrics.On("RecordCompensationFailure", ctx, "order.update").Return()

	cause := errors.New("credit limit exceeded")
	failure := shared.NewCompensationFailureError(cause, errors.New("rollback: connection lost"))
	r := newRunner(stubScope{err: failure}, zap.New(core), metrics)

	err := r.execute(ctx, "order.update", func(TransactionalRepositories) error { return nil })

	assert.ErrorIs(t, err, cause)
	metrics.AssertExpectations(t)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "order.update", logs.All()[0].ContextMap()["operation"])
}

func TestRunner_PlainFailureIsNotReported(t *testing.T) {
	metrics := new(MockMetrics)
	r := newRunner(stubScope{err: shared.ErrConflict}, nil, metrics)

	err := r.execute(context.Background(), "payment.delete", func(TransactionalRepositories) error { return nil })

	assert.ErrorIs(t, err, shared.ErrConflict)
	metrics.AssertNotCalled(t, "RecordCompensationFailure", mock.Anything, mock.Anything)
}
