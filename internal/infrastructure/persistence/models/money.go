package models

import (
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

func moneyToDecimal(m valueobject.Money) decimal.Decimal {
	return m.Amount()
}

func optionalMoneyToDecimal(m *valueobject.Money) *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := m.Amount()
	return &d
}

func optionalDecimalToMoney(d *decimal.Decimal) *valueobject.Money {
	if d == nil {
		return nil
	}
	m := valueobject.NewMoney(*d)
	return &m
}
