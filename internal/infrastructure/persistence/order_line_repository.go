package persistence

import (
	"context"

	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderLineRepository implements sales.OrderLineRepository using GORM
type GormOrderLineRepository struct {
	db *gorm.DB
}

// NewGormOrderLineRepository creates a new GormOrderLineRepository
func NewGormOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db}
}

// Find returns one line by its composite key
func (r *GormOrderLineRepository) Find(ctx context.Context, orderID uuid.UUID, lineNo int) (*sales.OrderLine, error) {
	var model models.OrderLineModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND line_no = ?", orderID, lineNo).
		First(&model).Error; err != nil {
		return nil, translateError(err, "")
	}
	return model.ToDomain(), nil
}

// FindByOrder returns an order's lines by line number
func (r *GormOrderLineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]sales.OrderLine, error) {
	var rows []models.OrderLineModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("line_no ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrderLines(rows), nil
}

// FindAll pages through all lines by (order_id, line_no)
func (r *GormOrderLineRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.OrderLine, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.OrderLineModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderLineModel
	if err := query.
		Order("order_id ASC").
		Order("line_no ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toOrderLines(rows), total, nil
}

// CountByOrder counts an order's lines
func (r *GormOrderLineRepository) CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderLineModel{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

// Create inserts a line; a taken (order_id, line_no) is a conflict
func (r *GormOrderLineRepository) Create(ctx context.Context, line *sales.OrderLine) error {
	err := r.db.WithContext(ctx).Create(models.OrderLineModelFromDomain(line)).Error
	return translateError(err, "Order line already exists for this order and line number")
}

// Update rewrites a line's mutable columns
func (r *GormOrderLineRepository) Update(ctx context.Context, line *sales.OrderLine) error {
	model := models.OrderLineModelFromDomain(line)
	result := r.db.WithContext(ctx).
		Model(&models.OrderLineModel{}).
		Where("order_id = ? AND line_no = ?", line.OrderID, line.LineNo).
		Updates(map[string]any{
			"product_id":      model.ProductID,
			"quantity":        model.Quantity,
			"unit_price":      model.UnitPrice,
			"discount_amount": model.DiscountAmount,
		})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a line
func (r *GormOrderLineRepository) Delete(ctx context.Context, orderID uuid.UUID, lineNo int) error {
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND line_no = ?", orderID, lineNo).
		Delete(&models.OrderLineModel{})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toOrderLines(rows []models.OrderLineModel) []sales.OrderLine {
	lines := make([]sales.OrderLine, len(rows))
	for i := range rows {
		lines[i] = *rows[i].ToDomain()
	}
	return lines
}

var _ sales.OrderLineRepository = (*GormOrderLineRepository)(nil)
