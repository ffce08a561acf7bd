package persistence

import (
	"context"
	"fmt"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var referenceTables = map[shared.ReferenceKind]string{
	shared.RefCustomer: "customers",
	shared.RefAccount:  "accounts",
	shared.RefLocation: "locations",
	shared.RefProduct:  "products",
	shared.RefOrder:    "orders",
	shared.RefCard:     "cards",
}

// GormReferenceChecker answers existence lookups with a single count query
type GormReferenceChecker struct {
	db *gorm.DB
}

// NewGormReferenceChecker creates a new GormReferenceChecker
func NewGormReferenceChecker(db *gorm.DB) *GormReferenceChecker {
	return &GormReferenceChecker{db: db}
}

// Exists reports whether a row with id exists for the given kind
func (c *GormReferenceChecker) Exists(ctx context.Context, kind shared.ReferenceKind, id uuid.UUID) (bool, error) {
	table, ok := referenceTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown reference kind %q", kind)
	}
	var count int64
	if err := c.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ shared.ReferenceChecker = (*GormReferenceChecker)(nil)
