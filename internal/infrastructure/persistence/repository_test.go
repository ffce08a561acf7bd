package persistence

import (
	"errors"
	"testing"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAccountRepository_RoundTrip(t *testing.T) {
	db := newSQLiteDatabase(t)
	s := seedReferences(t, db.DB)
	repo := NewGormAccountRepository(db.DB)
	ctx := testContext()

	account, err := ledger.NewAccount(s.CustomerID, "ACC-001", money("100.00"), valueobject.MustMoney("12.50"))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	loaded, err := repo.FindByIDForUpdate(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACC-001", loaded.AccountNumber)
	require.NotNil(t, loaded.CreditLimit)
	assert.True(t, loaded.CreditLimit.Equals(valueobject.MustMoney("100")))
	assert.True(t, loaded.CurrentBalance.Equals(valueobject.MustMoney("12.50")))
	assert.Equal(t, 1, loaded.Version)

	taken, err := repo.ExistsByAccountNumber(ctx, "ACC-001")
	require.NoError(t, err)
	assert.True(t, taken)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAccountRepository_DuplicateNumberIsConflict(t *testing.T) {
	db := newSQLiteDatabase(t)
	s := seedReferences(t, db.DB)
	repo := NewGormAccountRepository(db.DB)

	first, _ := ledger.NewAccount(s.CustomerID, "DUP-1", nil, valueobject.Zero())
	second, _ := ledger.NewAccount(s.CustomerID, "DUP-1", nil, valueobject.Zero())
	require.NoError(t, repo.Create(testContext(), first))

	err := repo.Create(testContext(), second)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestGormAccountRepository_SaveWithLockDetectsStaleVersion(t *testing.T) {
	db := newSQLiteDatabase(t)
	s := seedReferences(t, db.DB)
	repo := NewGormAccountRepository(db.DB)
	ctx := testContext()

	account, _ := ledger.NewAccount(s.CustomerID, "ACC-LOCK", nil, valueobject.Zero())
	require.NoError(t, repo.Create(ctx, account))

	a, _ := repo.FindByID(ctx, account.ID)
	b, _ := repo.FindByID(ctx, account.ID)

	_, err := a.Apply(ledger.Charge(a.ID, valueobject.MustMoney("5"), ledger.Source{Type: ledger.SourceOrder, ID: "o1"}, "test"))
	require.NoError(t, err)
	require.NoError(t, repo.SaveWithLock(ctx, a))

	_, err = b.Apply(ledger.Charge(b.ID, valueobject.MustMoney("7"), ledger.Source{Type: ledger.SourceOrder, ID: "o2"}, "test"))
	require.NoError(t, err)
	err = repo.SaveWithLock(ctx, b)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	stored, _ := repo.FindByID(ctx, account.ID)
	assert.True(t, stored.CurrentBalance.Equals(valueobject.MustMoney("5")))
	assert.Equal(t, 2, stored.Version)
}

func TestGormEntryRepository_AppendAndPage(t *testing.T) {
	db := newSQLiteDatabase(t)
	s := seedReferences(t, db.DB)
	accounts := NewGormAccountRepository(db.DB)
	entries := NewGormEntryRepository(db.DB)
	ctx := testContext()

	account, _ := ledger.NewAccount(s.CustomerID, "ACC-J", nil, valueobject.Zero())
	require.NoError(t, accounts.Create(ctx, account))

	for _, amt := range []string{"10", "20", "30"} {
		entry, err := account.Apply(ledger.Charge(account.ID, valueobject.MustMoney(amt), ledger.Source{Type: ledger.SourceOrder, ID: amt}, "charge"))
		require.NoError(t, err)
		require.NoError(t, entries.Append(ctx, entry))
	}

	all, err := entries.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	sum := valueobject.Zero()
	for _, e := range all {
		assert.True(t, e.BalanceAfter.Equals(e.BalanceBefore.Add(e.Amount)))
		sum = sum.Add(e.Amount)
	}
	assert.True(t, sum.Equals(valueobject.MustMoney("60")))

	page, total, err := entries.FindByAccount(ctx, account.ID, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 1)
}

func TestGormOrderLineRepository_CompositeKey(t *testing.T) {
	db := newSQLiteDatabase(t)
	s := seedReferences(t, db.DB)
	orders := NewGormOrderRepository(db.DB)
	lines := NewGormOrderLineRepository(db.DB)
	ctx := testContext()

	order, err := sales.NewOrder(s.CustomerID, sales.ChannelOnline)
	require.NoError(t, err)
	require.NoError(t, orders.Create(ctx, order))

	line, err := sales.NewOrderLine(order.ID, 1, s.ProductID, 2, valueobject.MustMoney("10"), money("1.50"))
	require.NoError(t, err)
	require.NoError(t, lines.Create(ctx, line))

	err = lines.Create(ctx, line)
	assert.ErrorIs(t, err, shared.ErrConflict)

	line.Quantity = 3
	line.DiscountAmount = nil
	require.NoError(t, lines.Update(ctx, line))

	found, err := lines.Find(ctx, order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, found.Quantity)
	assert.Nil(t, found.DiscountAmount)

	count, err := lines.CountByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, lines.Delete(ctx, order.ID, 1))
	assert.ErrorIs(t, lines.Delete(ctx, order.ID, 1), shared.ErrNotFound)
}

func TestGormReferenceChecker(t *testing.T) {
	db := newSQLiteDatabase(t)
	s := seedReferences(t, db.DB)
	checker := NewGormReferenceChecker(db.DB)
	ctx := testContext()

	tests := []struct {
		kind shared.ReferenceKind
		id   uuid.UUID
		want bool
	}{
		{shared.RefCustomer, s.CustomerID, true},
		{shared.RefLocation, s.LocationID, true},
		{shared.RefProduct, s.ProductID, true},
		{shared.RefCard, s.CardID, true},
		{shared.RefAccount, uuid.New(), false},
		{shared.RefOrder, uuid.New(), false},
	}
	for _, tt := range tests {
		ok, err := checker.Exists(ctx, tt.kind, tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, tt.kind)
	}

	_, err := checker.Exists(ctx, shared.ReferenceKind("warehouse"), uuid.New())
	assert.Error(t, err)
}

func TestGormInventoryRepository_SaveWithLock(t *testing.T) {
	db := newSQLiteDatabase(t)
	s := seedReferences(t, db.DB)
	seedInventory(t, db.DB, s.LocationID, s.ProductID, 10)
	repo := NewGormInventoryRepository(db.DB)
	ctx := testContext()

	item, err := repo.FindForUpdate(ctx, s.LocationID, s.ProductID)
	require.NoError(t, err)
	require.NoError(t, item.Deduct(4))
	require.NoError(t, repo.SaveWithLock(ctx, item))

	reloaded, err := repo.FindForUpdate(ctx, s.LocationID, s.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 6, reloaded.QuantityOnHand)

	err = reloaded.Deduct(7)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

	_, err = repo.FindForUpdate(ctx, s.LocationID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
