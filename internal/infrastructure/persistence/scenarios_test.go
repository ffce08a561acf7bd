package persistence

import (
	"errors"
	"testing"
	"time"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	appsales "github.com/erp/ledger/internal/application/sales"
	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ledgerHarness wires the application services onto a sqlite database the
// same way the server does onto postgres
type ledgerHarness struct {
	t        *testing.T
	db       *Database
	seed     seed
	accounts *ledgerapp.AccountService
	orders   *appsales.OrderService
	lines    *appsales.OrderLineService
	payments *appsales.PaymentService
	sales    *appsales.SaleService
}

func newLedgerHarness(t *testing.T) *ledgerHarness {
	t.Helper()
	return newLedgerHarnessOn(t, newSQLiteDatabase(t))
}

func newLedgerHarnessOn(t *testing.T, db *Database) *ledgerHarness {
	t.Helper()
	logger := zap.NewNop()
	metrics := ledgerapp.NoopMetrics{}
	scope := NewGormTransactionScope(db.DB)
	adjuster := ledgerapp.NewAdjuster(logger, metrics)

	return &ledgerHarness{
		t:    t,
		db:   db,
		seed: seedReferences(t, db.DB),
		accounts: ledgerapp.NewAccountService(
			NewGormAccountRepository(db.DB),
			NewGormEntryRepository(db.DB),
			NewGormReferenceChecker(db.DB),
			NewGormContributionSource(db.DB),
			logger,
		),
		orders:   appsales.NewOrderService(NewGormOrderRepository(db.DB), NewGormOrderLineRepository(db.DB), scope, adjuster, logger, metrics),
		lines:    appsales.NewOrderLineService(NewGormOrderLineRepository(db.DB), scope, adjuster, logger, metrics),
		payments: appsales.NewPaymentService(NewGormPaymentRepository(db.DB), scope, adjuster, logger, metrics),
		sales:    appsales.NewSaleService(scope, adjuster, logger, metrics),
	}
}

func (h *ledgerHarness) openAccount(number string, limit *valueobject.Money) uuid.UUID {
	h.t.Helper()
	acc, err := h.accounts.Create(testContext(), ledgerapp.CreateAccountRequest{
		CustomerID:    h.seed.CustomerID,
		AccountNumber: number,
		CreditLimit:   limit,
	})
	require.NoError(h.t, err)
	return acc.ID
}

func (h *ledgerHarness) balance(accountID uuid.UUID) string {
	h.t.Helper()
	acc, err := h.accounts.GetByID(testContext(), accountID)
	require.NoError(h.t, err)
	return acc.CurrentBalance.String()
}

func (h *ledgerHarness) newOrder(accountID *uuid.UUID, total *valueobject.Money) uuid.UUID {
	h.t.Helper()
	order, err := h.orders.Create(testContext(), appsales.CreateOrderRequest{
		Channel:     "ONLINE",
		CustomerID:  h.seed.CustomerID,
		AccountID:   accountID,
		TotalAmount: total,
	})
	require.NoError(h.t, err)
	return order.ID
}

func (h *ledgerHarness) addLine(orderID uuid.UUID, price string) (*appsales.OrderLineResponse, error) {
	return h.lines.Create(testContext(), appsales.CreateOrderLineRequest{
		OrderID:   orderID,
		ProductID: h.seed.ProductID,
		Quantity:  1,
		UnitPrice: money(price),
	})
}

func (h *ledgerHarness) assertReconciled(accountID uuid.UUID) {
	h.t.Helper()
	report, err := h.accounts.Reconcile(testContext(), accountID)
	require.NoError(h.t, err)
	assert.True(h.t, report.Consistent, "stored %s expected %s journal %s",
		report.StoredBalance, report.ExpectedBalance, report.JournalBalance)
}

func TestCreditLimitBoundary(t *testing.T) {
	h := newLedgerHarness(t)
	accountID := h.openAccount("LIMIT-100", money("100.00"))
	orderID := h.newOrder(&accountID, nil)

	_, err := h.addLine(orderID, "80.00")
	require.NoError(t, err)
	require.Equal(t, "80.00", h.balance(accountID))

	t.Run("line pushing balance past the limit is rejected", func(t *testing.T) {
		_, err := h.addLine(orderID, "30.00")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ledger.ErrCreditLimitExceeded))

		var cle *ledger.CreditLimitExceededError
		require.True(t, errors.As(err, &cle))
		assert.Equal(t, "100.00", cle.Limit.String())
		assert.Equal(t, "80.00", cle.PriorBalance.String())
		assert.Equal(t, "110.00", cle.RejectedBalance.String())

		assert.Equal(t, "80.00", h.balance(accountID))
		lines, err := h.lines.ListByOrder(testContext(), orderID)
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})

	t.Run("line reaching exactly the limit is allowed", func(t *testing.T) {
		line, err := h.addLine(orderID, "20.00")
		require.NoError(t, err)
		assert.Equal(t, 2, line.LineNo)
		assert.Equal(t, "100.00", h.balance(accountID))

		order, err := h.orders.GetByID(testContext(), orderID)
		require.NoError(t, err)
		require.NotNil(t, order.TotalAmount)
		assert.Equal(t, "100.00", order.TotalAmount.String())
	})

	t.Run("removing a line always succeeds at the limit", func(t *testing.T) {
		require.NoError(t, h.lines.Delete(testContext(), orderID, 2))
		assert.Equal(t, "80.00", h.balance(accountID))
	})

	h.assertReconciled(accountID)
}

func TestOrderPaymentLifecycle(t *testing.T) {
	h := newLedgerHarness(t)
	accountID := h.openAccount("OPEN-1", nil)

	orderID := h.newOrder(&accountID, money("150.00"))
	assert.Equal(t, "150.00", h.balance(accountID))

	payment, err := h.payments.Create(testContext(), appsales.CreatePaymentRequest{
		OrderID:       &orderID,
		AccountID:     &accountID,
		Amount:        money("60.00"),
		PaymentMethod: "ACCOUNT",
		PaymentDate:   ptr(time.Now()),
	})
	require.NoError(t, err)
	assert.Equal(t, "90.00", h.balance(accountID))
	h.assertReconciled(accountID)

	err = h.orders.Delete(testContext(), orderID)
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.Equal(t, "90.00", h.balance(accountID))

	require.NoError(t, h.payments.Delete(testContext(), payment.ID))
	assert.Equal(t, "150.00", h.balance(accountID))

	require.NoError(t, h.orders.Delete(testContext(), orderID))
	assert.Equal(t, "0.00", h.balance(accountID))
	h.assertReconciled(accountID)

	entries, total, err := h.accounts.ListEntries(testContext(), accountID, ledgerapp.AccountListFilter{OrderDir: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	kinds := make([]string, len(entries))
	for i, e := range entries {
		kinds[i] = e.Kind
	}
	assert.ElementsMatch(t, []string{"CHARGE", "PAYMENT", "REVERSAL", "REVERSAL"}, kinds)
}

func TestOrderUpdateMovesContributionBetweenAccounts(t *testing.T) {
	h := newLedgerHarness(t)
	first := h.openAccount("MOVE-A", nil)
	second := h.openAccount("MOVE-B", money("50.00"))
	orderID := h.newOrder(&first, money("40.00"))

	_, err := h.orders.Update(testContext(), orderID, appsales.UpdateOrderRequest{AccountID: &second})
	require.NoError(t, err)
	assert.Equal(t, "0.00", h.balance(first))
	assert.Equal(t, "40.00", h.balance(second))

	_, err = h.orders.Update(testContext(), orderID, appsales.UpdateOrderRequest{TotalAmount: money("60.00")})
	assert.ErrorIs(t, err, ledger.ErrCreditLimitExceeded)
	assert.Equal(t, "40.00", h.balance(second))

	_, err = h.orders.Update(testContext(), orderID, appsales.UpdateOrderRequest{ClearAccount: true})
	require.NoError(t, err)
	assert.Equal(t, "0.00", h.balance(second))

	h.assertReconciled(first)
	h.assertReconciled(second)
}

func TestOrderUpdateRejectsTotalWhenLinesExist(t *testing.T) {
	h := newLedgerHarness(t)
	accountID := h.openAccount("DERIVED", nil)
	orderID := h.newOrder(&accountID, nil)
	_, err := h.addLine(orderID, "25.00")
	require.NoError(t, err)

	_, err = h.orders.Update(testContext(), orderID, appsales.UpdateOrderRequest{TotalAmount: money("5.00")})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, "25.00", h.balance(accountID))
}

func TestInvalidReferencesWriteNothing(t *testing.T) {
	h := newLedgerHarness(t)
	missing := uuid.New()

	_, err := h.orders.Create(testContext(), appsales.CreateOrderRequest{
		Channel:    "ONLINE",
		CustomerID: h.seed.CustomerID,
		AccountID:  &missing,
	})
	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, shared.CodeValidation, de.Code)
	assert.Equal(t, "account_id", de.Field)

	orders, total, err := h.orders.List(testContext(), appsales.OrderListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)
}

func TestPointOfSale(t *testing.T) {
	h := newLedgerHarness(t)
	seedInventory(t, h.db.DB, h.seed.LocationID, h.seed.ProductID, 8)
	accountID := h.openAccount("POS-1", money("50.00"))

	req := appsales.SaleRequest{
		AccountID:  accountID,
		CustomerID: h.seed.CustomerID,
		LocationID: h.seed.LocationID,
		ProductID:  h.seed.ProductID,
		Quantity:   3,
	}

	resp, err := h.sales.Sell(testContext(), req)
	require.NoError(t, err)
	assert.Equal(t, appsales.SaleCompletedMessage, resp.Message)
	assert.Equal(t, "30.00", resp.TotalCost.String())
	assert.Equal(t, "30.00", resp.Account.CurrentBalance.String())
	assert.Equal(t, 5, resp.Inventory.QuantityOnHand)
	assert.True(t, resp.Inventory.NeedsReorder)
	assert.Equal(t, "COMPLETED", resp.Order.Status)

	t.Run("over the limit leaves stock untouched", func(t *testing.T) {
		req.Quantity = 3
		_, err := h.sales.Sell(testContext(), req)
		assert.ErrorIs(t, err, ledger.ErrCreditLimitExceeded)

		var onHand int
		require.NoError(t, h.db.DB.Table("inventory").Select("quantity_on_hand").
			Where("location_id = ? AND product_id = ?", h.seed.LocationID, h.seed.ProductID).
			Scan(&onHand).Error)
		assert.Equal(t, 5, onHand)
		assert.Equal(t, "30.00", h.balance(accountID))
	})

	t.Run("insufficient stock", func(t *testing.T) {
		req.Quantity = 6
		_, err := h.sales.Sell(testContext(), req)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("unknown stock record", func(t *testing.T) {
		other := req
		other.LocationID = uuid.New()
		other.Quantity = 1
		_, err := h.sales.Sell(testContext(), other)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	h.assertReconciled(accountID)
}

func TestOrderLineUpdateMovesBalance(t *testing.T) {
	h := newLedgerHarness(t)
	accountID := h.openAccount("LINE-UPD", money("100.00"))
	orderID := h.newOrder(&accountID, nil)

	_, err := h.addLine(orderID, "40.00")
	require.NoError(t, err)
	require.Equal(t, "40.00", h.balance(accountID))

	t.Run("quantity change posts the difference", func(t *testing.T) {
		line, err := h.lines.Update(testContext(), orderID, 1, appsales.UpdateOrderLineRequest{Quantity: ptr(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, line.Quantity)
		assert.Equal(t, "80.00", line.LineTotal.String())
		assert.Equal(t, "80.00", h.balance(accountID))
	})

	t.Run("quantity past the limit keeps the old line and balance", func(t *testing.T) {
		_, err := h.lines.Update(testContext(), orderID, 1, appsales.UpdateOrderLineRequest{Quantity: ptr(3)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ledger.ErrCreditLimitExceeded)

		assert.Equal(t, "80.00", h.balance(accountID))
		line, err := h.lines.Get(testContext(), orderID, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, line.Quantity)

		order, err := h.orders.GetByID(testContext(), orderID)
		require.NoError(t, err)
		require.NotNil(t, order.TotalAmount)
		assert.Equal(t, "80.00", order.TotalAmount.String())
	})

	t.Run("discount posts a reversal", func(t *testing.T) {
		line, err := h.lines.Update(testContext(), orderID, 1, appsales.UpdateOrderLineRequest{DiscountAmount: money("30.00")})
		require.NoError(t, err)
		assert.Equal(t, "50.00", line.LineTotal.String())
		assert.Equal(t, "50.00", h.balance(accountID))

		order, err := h.orders.GetByID(testContext(), orderID)
		require.NoError(t, err)
		require.NotNil(t, order.TotalAmount)
		assert.Equal(t, "50.00", order.TotalAmount.String())

		entries, _, err := h.accounts.ListEntries(testContext(), accountID, ledgerapp.AccountListFilter{OrderDir: "asc"})
		require.NoError(t, err)
		var reversals []string
		for _, e := range entries {
			if e.Kind == "REVERSAL" {
				reversals = append(reversals, e.Amount.String())
			}
		}
		assert.Equal(t, []string{"-30.00"}, reversals)
	})

	t.Run("discount above the gross line value is rejected", func(t *testing.T) {
		_, err := h.lines.Update(testContext(), orderID, 1, appsales.UpdateOrderLineRequest{DiscountAmount: money("80.01")})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrValidation)
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "discount_amount", de.Field)
		assert.Equal(t, "50.00", h.balance(accountID))
	})

	t.Run("price cut below the discount is rejected", func(t *testing.T) {
		_, err := h.lines.Update(testContext(), orderID, 1, appsales.UpdateOrderLineRequest{UnitPrice: money("10.00")})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrValidation)

		line, err := h.lines.Get(testContext(), orderID, 1)
		require.NoError(t, err)
		assert.Equal(t, "40.00", line.UnitPrice.String())
	})

	t.Run("clearing the discount charges it back", func(t *testing.T) {
		line, err := h.lines.Update(testContext(), orderID, 1, appsales.UpdateOrderLineRequest{ClearDiscount: true})
		require.NoError(t, err)
		assert.Nil(t, line.DiscountAmount)
		assert.Equal(t, "80.00", h.balance(accountID))
	})

	h.assertReconciled(accountID)
}

func TestAccountDelete(t *testing.T) {
	h := newLedgerHarness(t)
	accountID := h.openAccount("DEL-1", nil)
	orderID := h.newOrder(&accountID, money("25.00"))

	err := h.accounts.Delete(testContext(), accountID)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.EqualError(t, err, "Cannot delete account with existing orders or payments")
	assert.Equal(t, "25.00", h.balance(accountID))

	require.NoError(t, h.orders.Delete(testContext(), orderID))
	require.NoError(t, h.accounts.Delete(testContext(), accountID))

	_, err = h.accounts.GetByID(testContext(), accountID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var entries int64
	require.NoError(t, h.db.DB.Model(&models.LedgerEntryModel{}).Where("account_id = ?", accountID).Count(&entries).Error)
	assert.Zero(t, entries)

	err = h.accounts.Delete(testContext(), accountID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPurchaseHistory(t *testing.T) {
	h := newLedgerHarness(t)
	older := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	first, err := h.orders.Create(testContext(), appsales.CreateOrderRequest{
		OrderDatetime: &older,
		Channel:       "INSTORE",
		CustomerID:    h.seed.CustomerID,
		LocationID:    &h.seed.LocationID,
	})
	require.NoError(t, err)
	_, err = h.addLine(first.ID, "12.00")
	require.NoError(t, err)
	_, err = h.addLine(first.ID, "3.00")
	require.NoError(t, err)

	second, err := h.orders.Create(testContext(), appsales.CreateOrderRequest{
		OrderDatetime: &newer,
		Channel:       "ONLINE",
		CustomerID:    h.seed.CustomerID,
	})
	require.NoError(t, err)

	history, err := h.orders.PurchaseHistory(testContext(), h.seed.CustomerID)
	require.NoError(t, err)
	require.Len(t, history, 3)

	t.Run("newest order first with a null line for lineless orders", func(t *testing.T) {
		assert.Equal(t, second.ID, history[0].OrderID)
		assert.Nil(t, history[0].LineNo)
		assert.Nil(t, history[0].ProductName)
		assert.Nil(t, history[0].LocationName)
	})

	t.Run("lines follow in line order with product and location", func(t *testing.T) {
		for i, rec := range history[1:] {
			assert.Equal(t, first.ID, rec.OrderID)
			require.NotNil(t, rec.LineNo)
			assert.Equal(t, i+1, *rec.LineNo)
			require.NotNil(t, rec.ProductName)
			assert.Equal(t, "Espresso Beans", *rec.ProductName)
			require.NotNil(t, rec.LocationName)
			assert.Equal(t, "Main Street", *rec.LocationName)
			assert.Equal(t, "Ada Lovelace", rec.CustomerName)
			require.NotNil(t, rec.TotalAmount)
			assert.Equal(t, "15.00", rec.TotalAmount.String())
		}
		require.NotNil(t, history[1].UnitPrice)
		assert.Equal(t, "12.00", history[1].UnitPrice.String())
	})

	t.Run("unknown customer has no history", func(t *testing.T) {
		none, err := h.orders.PurchaseHistory(testContext(), uuid.New())
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestOrderLineListAll(t *testing.T) {
	h := newLedgerHarness(t)
	first := h.newOrder(nil, nil)
	second := h.newOrder(nil, nil)
	for _, orderID := range []uuid.UUID{first, second} {
		_, err := h.addLine(orderID, "1.00")
		require.NoError(t, err)
		_, err = h.addLine(orderID, "2.00")
		require.NoError(t, err)
	}

	lines, total, err := h.lines.ListAll(testContext(), appsales.OrderLineListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, lines, 4)

	page, total, err := h.lines.ListAll(testContext(), appsales.OrderLineListFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, page, 1)

	byOrder, err := h.lines.ListByOrder(testContext(), second)
	require.NoError(t, err)
	require.Len(t, byOrder, 2)
	assert.Equal(t, 1, byOrder[0].LineNo)
	assert.Equal(t, 2, byOrder[1].LineNo)
}
