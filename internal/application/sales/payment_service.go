package sales

import (
	"context"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService records and removes payments. Payments reduce the account
// balance and are never subject to the credit limit.
type PaymentService struct {
	runner
	paymentRepo sales.PaymentRepository
	adjuster    *ledgerapp.Adjuster
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo sales.PaymentRepository,
	scope TransactionScope,
	adjuster *ledgerapp.Adjuster,
	logger *zap.Logger,
	metrics ledgerapp.Metrics,
) *PaymentService {
	return &PaymentService{
		runner:      newRunner(scope, logger, metrics),
		paymentRepo: paymentRepo,
		adjuster:    adjuster,
	}
}

// Create records a payment and credits the account when one is given
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	if req.Amount == nil {
		return nil, shared.NewValidationError("amount", "amount is required")
	}
	if req.PaymentDate == nil {
		return nil, shared.NewValidationError("payment_date", "payment_date is required")
	}

	var created *sales.Payment
	err := s.execute(ctx, "create_payment", func(repos TransactionalRepositories) error {
		refs := NewReferenceValidator(repos.References())
		if err := refs.RequireAll(ctx,
			Ref{Field: "order_id", Kind: shared.RefOrder, ID: req.OrderID},
			Ref{Field: "card_id", Kind: shared.RefCard, ID: req.CardID},
			Ref{Field: "account_id", Kind: shared.RefAccount, ID: req.AccountID},
		); err != nil {
			return err
		}

		payment, err := sales.NewPayment(*req.Amount, sales.PaymentMethod(req.PaymentMethod), *req.PaymentDate)
		if err != nil {
			return err
		}
		payment.OrderID = req.OrderID
		payment.AccountID = req.AccountID
		payment.CardID = req.CardID

		if err := repos.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}

		if payment.AccountID != nil {
			adj := ledger.Payment(*payment.AccountID, payment.Amount, paymentSource(payment.ID), "payment received")
			if _, err := s.adjuster.Apply(ctx, repos, adj); err != nil {
				return err
			}
		}

		created, err = repos.PaymentRepo().FindByID(ctx, payment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := ToPaymentResponse(created)
	return &resp, nil
}

// Delete removes a payment and restores the amount it had credited
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.execute(ctx, "delete_payment", func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, "Payment")
		}
		if err := repos.PaymentRepo().Delete(ctx, id); err != nil {
			return err
		}
		if payment.AccountID == nil {
			return nil
		}
		adj := ledger.Reversal(*payment.AccountID, payment.Amount, paymentSource(id), "payment deleted")
		_, err = s.adjuster.Apply(ctx, repos, adj)
		return err
	})
}

// GetByID returns one payment
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Payment")
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// List returns a page of payments
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	payments, total, err := s.paymentRepo.FindAll(ctx, sales.PaymentFilter{
		Filter:    shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderDir: filter.OrderDir}.Normalize(),
		OrderID:   optionalID(filter.OrderID),
		AccountID: optionalID(filter.AccountID),
	})
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, total, nil
}

func paymentSource(id uuid.UUID) ledger.Source {
	return ledger.Source{Type: ledger.SourcePayment, ID: id.String()}
}
