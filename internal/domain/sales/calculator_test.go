package sales

import (
	"errors"
	"testing"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v string) valueobject.Money {
	return valueobject.MustMoney(v)
}

func moneyPtr(v string) *valueobject.Money {
	m := valueobject.MustMoney(v)
	return &m
}

func TestCalculateOrderTotal(t *testing.T) {
	orderID := uuid.New()
	line := func(no, qty int, price string, discount *valueobject.Money) OrderLine {
		return OrderLine{OrderID: orderID, LineNo: no, ProductID: uuid.New(), Quantity: qty, UnitPrice: money(price), DiscountAmount: discount}
	}

	tests := []struct {
		name  string
		lines []OrderLine
		want  string
	}{
		{"no lines", nil, "0.00"},
		{"single line", []OrderLine{line(1, 3, "10.00", nil)}, "30.00"},
		{"discount subtracted", []OrderLine{line(1, 2, "25.00", moneyPtr("5"))}, "45.00"},
		{"several lines", []OrderLine{
			line(1, 1, "19.99", nil),
			line(2, 3, "0.10", nil),
			line(3, 2, "50.00", moneyPtr("0.99")),
		}, "119.30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateOrderTotal(tt.lines).String())
		})
	}
}

func TestNextLineNo(t *testing.T) {
	assert.Equal(t, 1, NextLineNo(nil))
	assert.Equal(t, 8, NextLineNo([]OrderLine{{LineNo: 2}, {LineNo: 7}, {LineNo: 3}}))
}

func TestNewOrderLine(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		l, err := NewOrderLine(uuid.New(), 1, uuid.New(), 2, money("3.50"), nil)
		require.NoError(t, err)
		assert.Equal(t, "7.00", l.Total().String())
	})

	tests := []struct {
		name     string
		qty      int
		price    string
		discount *valueobject.Money
	}{
		{"zero quantity", 0, "1", nil},
		{"negative quantity", -2, "1", nil},
		{"negative price", 1, "-1", nil},
		{"negative discount", 1, "1", moneyPtr("-1")},
		{"discount above gross", 1, "10.00", moneyPtr("15.00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrderLine(uuid.New(), 1, uuid.New(), tt.qty, money(tt.price), tt.discount)
			assert.Error(t, err)
		})
	}
}

func TestOrderLine_DiscountBound(t *testing.T) {
	t.Run("discount equal to gross is allowed", func(t *testing.T) {
		l, err := NewOrderLine(uuid.New(), 1, uuid.New(), 2, money("5.00"), moneyPtr("10.00"))
		require.NoError(t, err)
		assert.True(t, l.Total().IsZero())
	})

	t.Run("rejection names the discount field", func(t *testing.T) {
		l, err := NewOrderLine(uuid.New(), 1, uuid.New(), 1, money("10.00"), nil)
		require.NoError(t, err)

		err = l.SetDiscount(moneyPtr("15.00"))

		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "discount_amount", de.Field)
		assert.Nil(t, l.DiscountAmount, "rejected discount is not applied")
	})

	t.Run("quantity cut below the discount is caught", func(t *testing.T) {
		l, err := NewOrderLine(uuid.New(), 1, uuid.New(), 3, money("10.00"), moneyPtr("25.00"))
		require.NoError(t, err)
		require.NoError(t, l.SetQuantity(2))

		assert.ErrorIs(t, l.CheckDiscount(), shared.ErrValidation)
		l.ClearDiscount()
		assert.NoError(t, l.CheckDiscount())
	})
}

func TestInventoryItem_Deduct(t *testing.T) {
	item := &InventoryItem{QuantityOnHand: 5, ReorderLevel: 2, Version: 1}

	require.NoError(t, item.Deduct(3))
	assert.Equal(t, 2, item.QuantityOnHand)
	assert.Equal(t, 2, item.Version)
	assert.True(t, item.NeedsReorder())

	err := item.Deduct(3)
	assert.Error(t, err)
	assert.Equal(t, "Not enough quantity on hand", err.Error())
	assert.Equal(t, 2, item.QuantityOnHand)
}
