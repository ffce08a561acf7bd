package persistence

import (
	"context"
	"time"

	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements sales.InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindForUpdate loads the stock row for a location/product pair and locks it
func (r *GormInventoryRepository) FindForUpdate(ctx context.Context, locationID, productID uuid.UUID) (*sales.InventoryItem, error) {
	var model models.InventoryModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("location_id = ? AND product_id = ?", locationID, productID).
		First(&model).Error; err != nil {
		return nil, translateError(err, "")
	}
	return model.ToDomain(), nil
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormInventoryRepository) SaveWithLock(ctx context.Context, item *sales.InventoryItem) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryModel{}).
		Where("location_id = ? AND product_id = ? AND version = ?", item.LocationID, item.ProductID, item.Version-1).
		Updates(map[string]any{
			"quantity_on_hand": item.QuantityOnHand,
			"version":          item.Version,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return concurrencyConflict("Inventory record")
	}
	return nil
}

var _ sales.InventoryRepository = (*GormInventoryRepository)(nil)
