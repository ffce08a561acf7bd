package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContributionSource sums what the sales side says an account owes
type ContributionSource interface {
	SumOrderTotals(ctx context.Context, accountID uuid.UUID) (valueobject.Money, error)
	SumPayments(ctx context.Context, accountID uuid.UUID) (valueobject.Money, error)
	// CountReferences counts the orders and payments pointing at the account
	CountReferences(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// StatementArchive stores exported statements
type StatementArchive interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// AccountService handles account maintenance and read models
type AccountService struct {
	accountRepo   ledger.AccountRepository
	entryRepo     ledger.EntryRepository
	refs          shared.ReferenceChecker
	contributions ContributionSource
	archive       StatementArchive
	logger        *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accountRepo ledger.AccountRepository,
	entryRepo ledger.EntryRepository,
	refs shared.ReferenceChecker,
	contributions ContributionSource,
	logger *zap.Logger,
) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accountRepo:   accountRepo,
		entryRepo:     entryRepo,
		refs:          refs,
		contributions: contributions,
		logger:        logger,
	}
}

// SetStatementArchive enables statement export
func (s *AccountService) SetStatementArchive(archive StatementArchive) {
	s.archive = archive
}

// Create opens a new account for an existing customer
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	exists, err := s.refs.Exists(ctx, shared.RefCustomer, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewInvalidReferenceError("customer_id", req.CustomerID)
	}

	taken, err := s.accountRepo.ExistsByAccountNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewConflictError("Account number already exists")
	}

	opening := valueobject.Zero()
	if req.OpeningBalance != nil {
		opening = *req.OpeningBalance
	}
	account, err := ledger.NewAccount(req.CustomerID, req.AccountNumber, req.CreditLimit, opening)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// GetByID returns one account
func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// List returns a page of accounts
func (s *AccountService) List(ctx context.Context, filter AccountListFilter) ([]AccountResponse, int64, error) {
	accounts, total, err := s.accountRepo.FindAll(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderDir: filter.OrderDir,
	}.Normalize())
	if err != nil {
		return nil, 0, err
	}
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses, total, nil
}

// Update changes the credit limit or status. A version clash with a
// concurrent balance adjustment is reported as a concurrency conflict.
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	if req.CreditLimit == nil && !req.RemoveCreditLimit && req.Status == nil {
		return nil, shared.NewValidationError("", "No fields to update")
	}

	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RemoveCreditLimit {
		if err := account.SetCreditLimit(nil); err != nil {
			return nil, err
		}
	} else if req.CreditLimit != nil {
		if err := account.SetCreditLimit(req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := account.SetStatus(ledger.AccountStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	account.IncrementVersion()
	if err := s.accountRepo.SaveWithLock(ctx, account); err != nil {
		return nil, err
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// Delete removes an account nothing references any more. Its journal goes
// with it.
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	account, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	refs, err := s.contributions.CountReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("count account references: %w", err)
	}
	if refs > 0 {
		return ledger.NewAccountInUseError()
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("Account")
		}
		return err
	}

	s.logger.Info("account deleted",
		zap.String("account_id", id.String()),
		zap.String("account_number", account.AccountNumber),
		zap.String("balance", account.CurrentBalance.String()),
	)
	return nil
}

// ListEntries returns a page of the account's journal
func (s *AccountService) ListEntries(ctx context.Context, id uuid.UUID, filter AccountListFilter) ([]EntryResponse, int64, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, 0, err
	}
	entries, total, err := s.entryRepo.FindByAccount(ctx, id, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderDir: filter.OrderDir,
	}.Normalize())
	if err != nil {
		return nil, 0, err
	}
	return ToEntryResponses(entries), total, nil
}

// Reconcile recomputes the balance from the source records and from the
// journal and compares both with the stored value
func (s *AccountService) Reconcile(ctx context.Context, id uuid.UUID) (*ReconciliationReport, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	orderTotal, err := s.contributions.SumOrderTotals(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sum order totals: %w", err)
	}
	paymentTotal, err := s.contributions.SumPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}
	entries, err := s.entryRepo.ListByAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}

	journal := account.OpeningBalance
	for i := range entries {
		journal = journal.Add(entries[i].Amount)
	}
	expected := account.OpeningBalance.Add(orderTotal).Sub(paymentTotal)
	diff := account.CurrentBalance.Sub(expected)

	report := &ReconciliationReport{
		AccountID:       id,
		StoredBalance:   account.CurrentBalance,
		OpeningBalance:  account.OpeningBalance,
		OrderTotal:      orderTotal,
		PaymentTotal:    paymentTotal,
		ExpectedBalance: expected,
		JournalBalance:  journal,
		EntryCount:      len(entries),
		Difference:      diff,
		Consistent:      diff.IsZero() && journal.Equals(account.CurrentBalance),
		CheckedAt:       time.Now(),
	}
	if !report.Consistent {
		s.logger.Warn("account balance drift detected",
			zap.String("account_id", id.String()),
			zap.String("stored", account.CurrentBalance.String()),
			zap.String("expected", expected.String()),
			zap.String("journal", journal.String()),
		)
	}
	return report, nil
}

// ExportStatement writes the account and its full journal to the archive
func (s *AccountService) ExportStatement(ctx context.Context, id uuid.UUID) (*StatementReceipt, error) {
	if s.archive == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Statement storage is not configured")
	}

	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}

	now := time.Now().UTC()
	statement := Statement{
		Account:     ToAccountResponse(account),
		Entries:     ToEntryResponses(entries),
		GeneratedAt: now,
	}
	body, err := json.Marshal(statement)
	if err != nil {
		return nil, fmt.Errorf("encode statement: %w", err)
	}

	key := fmt.Sprintf("statements/%s/%s.json", id, now.Format("20060102T150405Z"))
	if err := s.archive.Upload(ctx, key, body, "application/json"); err != nil {
		return nil, err
	}

	receipt := &StatementReceipt{AccountID: id, StorageKey: key, EntryCount: len(entries)}
	if url, expiresAt, err := s.archive.GenerateDownloadURL(ctx, key, 0); err == nil {
		receipt.DownloadURL = url
		receipt.ExpiresAt = expiresAt
	} else {
		s.logger.Warn("statement download url unavailable", zap.String("key", key), zap.Error(err))
	}

	s.logger.Info("statement exported",
		zap.String("account_id", id.String()),
		zap.String("key", key),
		zap.Int("entries", len(entries)),
	)
	return receipt, nil
}

func (s *AccountService) find(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Account")
		}
		return nil, err
	}
	return account, nil
}
