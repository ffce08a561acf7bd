package persistence

import (
	"context"
	"time"

	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "")
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an order and locks its row
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "")
	}
	return model.ToDomain(), nil
}

// FindAll lists orders with optional customer, account and status filters
func (r *GormOrderRepository) FindAll(ctx context.Context, filter sales.OrderFilter) ([]sales.Order, int64, error) {
	filter.Filter = filter.Filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := query.
		Order("order_datetime " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toOrders(rows), total, nil
}

// FindByAccount returns every order billed to the account
func (r *GormOrderRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]sales.Order, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("order_datetime ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// purchaseRow is one row of the purchase history join
type purchaseRow struct {
	CustomerID     uuid.UUID
	CustomerName   string
	Email          *string
	OrderID        uuid.UUID
	OrderDatetime  time.Time
	Channel        string
	TotalAmount    *decimal.Decimal
	OrderStatus    string
	LocationID     *uuid.UUID
	LocationName   *string
	LineNo         *int
	ProductID      *uuid.UUID
	ProductName    *string
	SKU            *string
	Quantity       *int
	UnitPrice      *decimal.Decimal
	DiscountAmount *decimal.Decimal
}

// FindPurchaseHistory joins the customer's orders with their lines, products
// and locations. Orders without lines are kept by the outer joins.
func (r *GormOrderRepository) FindPurchaseHistory(ctx context.Context, customerID uuid.UUID) ([]sales.PurchaseRecord, error) {
	var rows []purchaseRow
	if err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.customer_id, c.name AS customer_name, c.email,
			o.id AS order_id, o.order_datetime, o.channel, o.total_amount, o.status AS order_status,
			o.location_id, loc.name AS location_name,
			ol.line_no, ol.product_id, p.name AS product_name, p.sku,
			ol.quantity, ol.unit_price, ol.discount_amount`).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Joins("LEFT JOIN order_lines ol ON ol.order_id = o.id").
		Joins("LEFT JOIN products p ON p.id = ol.product_id").
		Joins("LEFT JOIN locations loc ON loc.id = o.location_id").
		Where("o.customer_id = ?", customerID).
		Order("o.order_datetime DESC").
		Order("o.id ASC").
		Order("ol.line_no ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]sales.PurchaseRecord, len(rows))
	for i, row := range rows {
		records[i] = sales.PurchaseRecord{
			CustomerID:     row.CustomerID,
			CustomerName:   row.CustomerName,
			Email:          row.Email,
			OrderID:        row.OrderID,
			OrderDatetime:  row.OrderDatetime,
			Channel:        sales.Channel(row.Channel),
			TotalAmount:    optionalMoney(row.TotalAmount),
			OrderStatus:    sales.OrderStatus(row.OrderStatus),
			LocationID:     row.LocationID,
			LocationName:   row.LocationName,
			LineNo:         row.LineNo,
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			SKU:            row.SKU,
			Quantity:       row.Quantity,
			UnitPrice:      optionalMoney(row.UnitPrice),
			DiscountAmount: optionalMoney(row.DiscountAmount),
		}
	}
	return records, nil
}

func optionalMoney(d *decimal.Decimal) *valueobject.Money {
	if d == nil {
		return nil
	}
	m := valueobject.NewMoney(*d)
	return &m
}

// Create inserts a new order
func (r *GormOrderRepository) Create(ctx context.Context, order *sales.Order) error {
	return translateError(r.db.WithContext(ctx).Create(models.OrderModelFromDomain(order)).Error, "Order already exists")
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *sales.Order) error {
	model := models.OrderModelFromDomain(order)
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]any{
			"order_datetime": model.OrderDatetime,
			"channel":        model.Channel,
			"customer_id":    model.CustomerID,
			"account_id":     model.AccountID,
			"location_id":    model.LocationID,
			"total_amount":   model.TotalAmount,
			"status":         model.Status,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return concurrencyConflict("Order")
	}
	return nil
}

// Delete removes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "Cannot delete order with existing order lines or payments")
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "")
	}
	return nil
}

func toOrders(rows []models.OrderModel) []sales.Order {
	orders := make([]sales.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders
}

var _ sales.OrderRepository = (*GormOrderRepository)(nil)
