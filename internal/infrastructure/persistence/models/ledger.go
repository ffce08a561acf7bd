package models

import (
	"time"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the accounts table
type AccountModel struct {
	AggregateModel
	CustomerID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	AccountNumber  string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CreditLimit    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	OpeningBalance decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	CurrentBalance decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Status         string           `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	OpenedDate     time.Time        `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		AccountNumber:     m.AccountNumber,
		CreditLimit:       optionalDecimalToMoney(m.CreditLimit),
		OpeningBalance:    valueobject.NewMoney(m.OpeningBalance),
		CurrentBalance:    valueobject.NewMoney(m.CurrentBalance),
		Status:            ledger.AccountStatus(m.Status),
		OpenedDate:        m.OpenedDate,
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.CustomerID = a.CustomerID
	m.AccountNumber = a.AccountNumber
	m.CreditLimit = optionalMoneyToDecimal(a.CreditLimit)
	m.OpeningBalance = moneyToDecimal(a.OpeningBalance)
	m.CurrentBalance = moneyToDecimal(a.CurrentBalance)
	m.Status = string(a.Status)
	m.OpenedDate = a.OpenedDate
}

// AccountModelFromDomain creates a new persistence model from a domain Account
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// LedgerEntryModel is the persistence model for the append-only ledger_entries table
type LedgerEntryModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_entries_account_created,priority:1"`
	Kind          string          `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SourceType    string          `gorm:"type:varchar(20);not null"`
	SourceID      string          `gorm:"type:varchar(100);not null"`
	Reason        string          `gorm:"type:varchar(255)"`
	CreatedAt     time.Time       `gorm:"not null;index:idx_ledger_entries_account_created,priority:2"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain Entry
func (m *LedgerEntryModel) ToDomain() *ledger.Entry {
	return &ledger.Entry{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Kind:          ledger.Kind(m.Kind),
		Amount:        valueobject.NewMoney(m.Amount),
		BalanceBefore: valueobject.NewMoney(m.BalanceBefore),
		BalanceAfter:  valueobject.NewMoney(m.BalanceAfter),
		SourceType:    ledger.SourceType(m.SourceType),
		SourceID:      m.SourceID,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}

// LedgerEntryModelFromDomain creates a new persistence model from a domain Entry
func LedgerEntryModelFromDomain(e *ledger.Entry) *LedgerEntryModel {
	return &LedgerEntryModel{
		ID:            e.ID,
		AccountID:     e.AccountID,
		Kind:          string(e.Kind),
		Amount:        moneyToDecimal(e.Amount),
		BalanceBefore: moneyToDecimal(e.BalanceBefore),
		BalanceAfter:  moneyToDecimal(e.BalanceAfter),
		SourceType:    string(e.SourceType),
		SourceID:      e.SourceID,
		Reason:        e.Reason,
		CreatedAt:     e.CreatedAt,
	}
}
