package ledger

import (
	"context"
	"time"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of ledger.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveWithLock(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEntryRepository is a mock implementation of ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]ledger.Entry, int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]ledger.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Entry, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

// MockReferenceChecker is a mock implementation of shared.ReferenceChecker
type MockReferenceChecker struct {
	mock.Mock
}

func (m *MockReferenceChecker) Exists(ctx context.Context, kind shared.ReferenceKind, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, id)
	return args.Bool(0), args.Error(1)
}

// MockContributionSource is a mock implementation of ContributionSource
type MockContributionSource struct {
	mock.Mock
}

func (m *MockContributionSource) SumOrderTotals(ctx context.Context, accountID uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockContributionSource) SumPayments(ctx context.Context, accountID uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockContributionSource) CountReferences(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatementArchive is a mock implementation of StatementArchive
type MockStatementArchive struct {
	mock.Mock
}

func (m *MockStatementArchive) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockStatementArchive) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockMetrics records adjuster callbacks
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordAdjustment(ctx context.Context, kind ledger.Kind, delta valueobject.Money) {
	m.Called(ctx, kind, delta)
}

func (m *MockMetrics) RecordRejection(ctx context.Context, kind ledger.Kind, code string) {
	m.Called(ctx, kind, code)
}

func (m *MockMetrics) RecordCompensationFailure(ctx context.Context, operation string) {
	m.Called(ctx, operation)
}

// testRepos bundles the mocked repositories as an adjuster Repositories
type testRepos struct {
	accounts *MockAccountRepository
	entries  *MockEntryRepository
}

func newTestRepos() *testRepos {
	return &testRepos{accounts: new(MockAccountRepository), entries: new(MockEntryRepository)}
}

func (r *testRepos) AccountRepo() ledger.AccountRepository { return r.accounts }
func (r *testRepos) EntryRepo() ledger.EntryRepository     { return r.entries }

func newTestAccount(balance string, limit *string) *ledger.Account {
	var creditLimit *valueobject.Money
	if limit != nil {
		l := valueobject.MustMoney(*limit)
		creditLimit = &l
	}
	account, err := ledger.NewAccount(uuid.New(), "ACC-"+uuid.NewString()[:8], creditLimit, valueobject.MustMoney(balance))
	if err != nil {
		panic(err)
	}
	return account
}

func strPtr(s string) *string { return &s }
