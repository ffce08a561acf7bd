package models

import (
	"time"

	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the orders table
type OrderModel struct {
	AggregateModel
	OrderDatetime time.Time        `gorm:"not null"`
	Channel       string           `gorm:"type:varchar(20);not null"`
	CustomerID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	AccountID     *uuid.UUID       `gorm:"type:uuid;index"`
	LocationID    *uuid.UUID       `gorm:"type:uuid"`
	TotalAmount   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status        string           `gorm:"type:varchar(20);not null;default:'PENDING'"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *sales.Order {
	return &sales.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderDatetime:     m.OrderDatetime,
		Channel:           sales.Channel(m.Channel),
		CustomerID:        m.CustomerID,
		AccountID:         m.AccountID,
		LocationID:        m.LocationID,
		TotalAmount:       optionalDecimalToMoney(m.TotalAmount),
		Status:            sales.OrderStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *sales.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderDatetime = o.OrderDatetime
	m.Channel = string(o.Channel)
	m.CustomerID = o.CustomerID
	m.AccountID = o.AccountID
	m.LocationID = o.LocationID
	m.TotalAmount = optionalMoneyToDecimal(o.TotalAmount)
	m.Status = string(o.Status)
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *sales.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for the order_lines table.
// Lines are keyed by (order_id, line_no).
type OrderLineModel struct {
	OrderID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LineNo         int              `gorm:"primaryKey;autoIncrement:false"`
	ProductID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Quantity       int              `gorm:"not null"`
	UnitPrice      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	DiscountAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine
func (m *OrderLineModel) ToDomain() *sales.OrderLine {
	return &sales.OrderLine{
		OrderID:        m.OrderID,
		LineNo:         m.LineNo,
		ProductID:      m.ProductID,
		Quantity:       m.Quantity,
		UnitPrice:      valueobject.NewMoney(m.UnitPrice),
		DiscountAmount: optionalDecimalToMoney(m.DiscountAmount),
	}
}

// OrderLineModelFromDomain creates a new persistence model from a domain OrderLine
func OrderLineModelFromDomain(l *sales.OrderLine) *OrderLineModel {
	return &OrderLineModel{
		OrderID:        l.OrderID,
		LineNo:         l.LineNo,
		ProductID:      l.ProductID,
		Quantity:       l.Quantity,
		UnitPrice:      moneyToDecimal(l.UnitPrice),
		DiscountAmount: optionalMoneyToDecimal(l.DiscountAmount),
	}
}

// PaymentModel is the persistence model for the payments table
type PaymentModel struct {
	BaseModel
	OrderID       *uuid.UUID      `gorm:"type:uuid;index"`
	AccountID     *uuid.UUID      `gorm:"type:uuid;index"`
	CardID        *uuid.UUID      `gorm:"type:uuid"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	PaymentDate   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *sales.Payment {
	return &sales.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		OrderID:       m.OrderID,
		AccountID:     m.AccountID,
		CardID:        m.CardID,
		Amount:        valueobject.NewMoney(m.Amount),
		PaymentMethod: sales.PaymentMethod(m.PaymentMethod),
		PaymentDate:   m.PaymentDate,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *sales.Payment) *PaymentModel {
	m := &PaymentModel{
		OrderID:       p.OrderID,
		AccountID:     p.AccountID,
		CardID:        p.CardID,
		Amount:        moneyToDecimal(p.Amount),
		PaymentMethod: string(p.PaymentMethod),
		PaymentDate:   p.PaymentDate,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ProductModel is the persistence model for the products table
type ProductModel struct {
	BaseModel
	Name      string          `gorm:"type:varchar(200);not null"`
	SKU       string          `gorm:"type:varchar(50);uniqueIndex"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *sales.Product {
	return &sales.Product{
		ID:        m.ID,
		Name:      m.Name,
		SKU:       m.SKU,
		UnitPrice: valueobject.NewMoney(m.UnitPrice),
	}
}

// InventoryModel is the persistence model for the inventory table,
// keyed by (location_id, product_id)
type InventoryModel struct {
	LocationID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuantityOnHand  int       `gorm:"not null;default:0"`
	ReorderLevel    int       `gorm:"not null;default:0"`
	ReorderQuantity int       `gorm:"not null;default:0"`
	Version         int       `gorm:"not null;default:1"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryModel) TableName() string {
	return "inventory"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryModel) ToDomain() *sales.InventoryItem {
	return &sales.InventoryItem{
		LocationID:      m.LocationID,
		ProductID:       m.ProductID,
		QuantityOnHand:  m.QuantityOnHand,
		ReorderLevel:    m.ReorderLevel,
		ReorderQuantity: m.ReorderQuantity,
		Version:         m.Version,
	}
}

// NewProductModel builds a product row; used by seeding and tests
func NewProductModel(name, sku string, price valueobject.Money) *ProductModel {
	m := &ProductModel{Name: name, SKU: sku, UnitPrice: price.Amount()}
	m.FromDomainBaseEntity(shared.NewBaseEntity())
	return m
}
