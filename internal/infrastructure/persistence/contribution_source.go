package persistence

import (
	"context"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormContributionSource sums what orders and payments say an account's
// balance should be. Reconciliation compares it with the stored balance.
type GormContributionSource struct {
	db *gorm.DB
}

// NewGormContributionSource creates a new GormContributionSource
func NewGormContributionSource(db *gorm.DB) *GormContributionSource {
	return &GormContributionSource{db: db}
}

// SumOrderTotals sums total_amount over the account's orders, counting an
// empty total as zero
func (s *GormContributionSource) SumOrderTotals(ctx context.Context, accountID uuid.UUID) (valueobject.Money, error) {
	return s.sum(ctx, &models.OrderModel{}, "total_amount", accountID)
}

// SumPayments sums the amounts of payments credited to the account
func (s *GormContributionSource) SumPayments(ctx context.Context, accountID uuid.UUID) (valueobject.Money, error) {
	return s.sum(ctx, &models.PaymentModel{}, "amount", accountID)
}

// CountReferences counts the orders and payments that point at the account
func (s *GormContributionSource) CountReferences(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var total int64
	for _, model := range []any{&models.OrderModel{}, &models.PaymentModel{}} {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).
			Where("account_id = ?", accountID).
			Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

func (s *GormContributionSource) sum(ctx context.Context, model any, column string, accountID uuid.UUID) (valueobject.Money, error) {
	var total decimal.NullDecimal
	if err := s.db.WithContext(ctx).Model(model).
		Select("SUM("+column+")").
		Where("account_id = ?", accountID).
		Scan(&total).Error; err != nil {
		return valueobject.Zero(), err
	}
	if !total.Valid {
		return valueobject.Zero(), nil
	}
	return valueobject.NewMoney(total.Decimal), nil
}

var _ ledgerapp.ContributionSource = (*GormContributionSource)(nil)
