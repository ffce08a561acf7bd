package sales

import (
	"time"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// =============================================================================
// Order DTOs
// =============================================================================

// CreateOrderRequest represents a request to create an order
// @Description Request body for creating an order
type CreateOrderRequest struct {
	OrderDatetime *time.Time         `json:"order_datetime" example:"2024-05-01T10:00:00Z"`
	Channel       string             `json:"channel" binding:"required,channel" example:"ONLINE"`
	CustomerID    uuid.UUID          `json:"customer_id" binding:"required" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AccountID     *uuid.UUID         `json:"account_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	LocationID    *uuid.UUID         `json:"location_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	TotalAmount   *valueobject.Money `json:"total_amount" binding:"omitempty,money_non_negative" swaggertype:"number" example:"120.00"`
	Status        *string            `json:"status" binding:"omitempty,order_status" example:"PENDING"`
}

// UpdateOrderRequest represents a partial update of an order. Clearing the
// account or location needs the explicit flags since null and absent decode
// the same way.
// @Description Request body for partially updating an order
type UpdateOrderRequest struct {
	OrderDatetime *time.Time         `json:"order_datetime" example:"2024-05-01T10:00:00Z"`
	Channel       *string            `json:"channel" binding:"omitempty,channel" example:"ONLINE"`
	CustomerID    *uuid.UUID         `json:"customer_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AccountID     *uuid.UUID         `json:"account_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClearAccount  bool               `json:"clear_account" example:"false"`
	LocationID    *uuid.UUID         `json:"location_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClearLocation bool               `json:"clear_location" example:"false"`
	TotalAmount   *valueobject.Money `json:"total_amount" binding:"omitempty,money_non_negative" swaggertype:"number" example:"120.00"`
	Status        *string            `json:"status" binding:"omitempty,order_status" example:"PENDING"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateOrderRequest) IsEmpty() bool {
	return r.OrderDatetime == nil && r.Channel == nil && r.CustomerID == nil &&
		r.AccountID == nil && !r.ClearAccount && r.LocationID == nil && !r.ClearLocation &&
		r.TotalAmount == nil && r.Status == nil
}

// OrderListFilter represents filter options for listing orders
type OrderListFilter struct {
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	AccountID  string `form:"account_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,order_status"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderResponse represents an order in API responses
// @Description Order with its lines
type OrderResponse struct {
	ID            uuid.UUID           `json:"id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	OrderDatetime time.Time           `json:"order_datetime" example:"2024-05-01T10:00:00Z"`
	Channel       string              `json:"channel" example:"ONLINE"`
	CustomerID    uuid.UUID           `json:"customer_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AccountID     *uuid.UUID          `json:"account_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	LocationID    *uuid.UUID          `json:"location_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	TotalAmount   *valueobject.Money  `json:"total_amount" swaggertype:"number" example:"120.00"`
	Status        string              `json:"status" example:"PENDING"`
	Version       int                 `json:"version" example:"1"`
	Lines         []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *sales.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		OrderDatetime: o.OrderDatetime,
		Channel:       string(o.Channel),
		CustomerID:    o.CustomerID,
		AccountID:     o.AccountID,
		LocationID:    o.LocationID,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		Version:       o.Version,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// =============================================================================
// Order line DTOs
// =============================================================================

// CreateOrderLineRequest represents a request to add a line to an order
// @Description Request body for adding a line to an order
type CreateOrderLineRequest struct {
	OrderID        uuid.UUID          `json:"order_id" binding:"required" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	LineNo         *int               `json:"line_no" binding:"omitempty,min=1" example:"1"`
	ProductID      uuid.UUID          `json:"product_id" binding:"required" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity       int                `json:"quantity" binding:"required,gt=0" example:"2"`
	UnitPrice      *valueobject.Money `json:"unit_price" binding:"omitempty,money_non_negative" swaggertype:"number" example:"19.99"`
	DiscountAmount *valueobject.Money `json:"discount_amount" binding:"omitempty,money_non_negative" swaggertype:"number" example:"5.00"`
}

// UpdateOrderLineRequest represents a partial update of an order line
// @Description Request body for partially updating an order line
type UpdateOrderLineRequest struct {
	ProductID      *uuid.UUID         `json:"product_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity       *int               `json:"quantity" binding:"omitempty,gt=0" example:"2"`
	UnitPrice      *valueobject.Money `json:"unit_price" binding:"omitempty,money_non_negative" swaggertype:"number" example:"19.99"`
	DiscountAmount *valueobject.Money `json:"discount_amount" binding:"omitempty,money_non_negative" swaggertype:"number" example:"5.00"`
	ClearDiscount  bool               `json:"clear_discount" example:"false"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateOrderLineRequest) IsEmpty() bool {
	return r.ProductID == nil && r.Quantity == nil && r.UnitPrice == nil &&
		r.DiscountAmount == nil && !r.ClearDiscount
}

// OrderLineListFilter represents filter options for listing order lines.
// Without an order the listing covers every line and is paginated.
type OrderLineListFilter struct {
	OrderID  string `form:"order_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Order returns the order to list lines for, nil for every line
func (f OrderLineListFilter) Order() *uuid.UUID {
	return optionalID(f.OrderID)
}

// OrderLineResponse represents an order line in API responses
// @Description Order line with its computed total
type OrderLineResponse struct {
	OrderID        uuid.UUID          `json:"order_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	LineNo         int                `json:"line_no" example:"1"`
	ProductID      uuid.UUID          `json:"product_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity       int                `json:"quantity" example:"2"`
	UnitPrice      valueobject.Money  `json:"unit_price" swaggertype:"number" example:"19.99"`
	DiscountAmount *valueobject.Money `json:"discount_amount" swaggertype:"number" example:"5.00"`
	LineTotal      valueobject.Money  `json:"line_total" swaggertype:"number" example:"120.00"`
}

// ToOrderLineResponse converts a domain OrderLine to OrderLineResponse
func ToOrderLineResponse(l *sales.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		OrderID:        l.OrderID,
		LineNo:         l.LineNo,
		ProductID:      l.ProductID,
		Quantity:       l.Quantity,
		UnitPrice:      l.UnitPrice,
		DiscountAmount: l.DiscountAmount,
		LineTotal:      l.Total(),
	}
}

// ToOrderLineResponses converts a slice of lines
func ToOrderLineResponses(lines []sales.OrderLine) []OrderLineResponse {
	responses := make([]OrderLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToOrderLineResponse(&lines[i])
	}
	return responses
}

// =============================================================================
// Purchase history DTOs
// =============================================================================

// PurchaseRecordResponse is one order line in a customer's purchase history
// @Description One order line of a customer purchase history; line fields are null for orders without lines
type PurchaseRecordResponse struct {
	CustomerID     uuid.UUID          `json:"customer_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CustomerName   string             `json:"customer_name" example:"Jane Doe"`
	Email          *string            `json:"email" example:"jane@example.com"`
	OrderID        uuid.UUID          `json:"order_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	OrderDatetime  time.Time          `json:"order_datetime" example:"2024-05-01T10:00:00Z"`
	Channel        string             `json:"channel" example:"ONLINE"`
	TotalAmount    *valueobject.Money `json:"total_amount" swaggertype:"number" example:"120.00"`
	OrderStatus    string             `json:"order_status" example:"PENDING"`
	LocationID     *uuid.UUID         `json:"location_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	LocationName   *string            `json:"location_name" example:"Downtown"`
	LineNo         *int               `json:"line_no" example:"1"`
	ProductID      *uuid.UUID         `json:"product_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProductName    *string            `json:"product_name" example:"Desk Lamp"`
	SKU            *string            `json:"sku" example:"LAMP-001"`
	Quantity       *int               `json:"quantity" example:"2"`
	UnitPrice      *valueobject.Money `json:"unit_price" swaggertype:"number" example:"19.99"`
	DiscountAmount *valueobject.Money `json:"discount_amount" swaggertype:"number" example:"5.00"`
}

// ToPurchaseRecordResponses converts purchase history records
func ToPurchaseRecordResponses(records []sales.PurchaseRecord) []PurchaseRecordResponse {
	responses := make([]PurchaseRecordResponse, len(records))
	for i, r := range records {
		responses[i] = PurchaseRecordResponse{
			CustomerID:     r.CustomerID,
			CustomerName:   r.CustomerName,
			Email:          r.Email,
			OrderID:        r.OrderID,
			OrderDatetime:  r.OrderDatetime,
			Channel:        string(r.Channel),
			TotalAmount:    r.TotalAmount,
			OrderStatus:    string(r.OrderStatus),
			LocationID:     r.LocationID,
			LocationName:   r.LocationName,
			LineNo:         r.LineNo,
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			SKU:            r.SKU,
			Quantity:       r.Quantity,
			UnitPrice:      r.UnitPrice,
			DiscountAmount: r.DiscountAmount,
		}
	}
	return responses
}

// =============================================================================
// Payment DTOs
// =============================================================================

// CreatePaymentRequest represents a request to record a payment
// @Description Request body for recording a payment
type CreatePaymentRequest struct {
	OrderID       *uuid.UUID         `json:"order_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AccountID     *uuid.UUID         `json:"account_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CardID        *uuid.UUID         `json:"card_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Amount        *valueobject.Money `json:"amount" binding:"required,money_positive" swaggertype:"number" example:"50.00"`
	PaymentMethod string             `json:"payment_method" binding:"required,payment_method" example:"CARD"`
	PaymentDate   *time.Time         `json:"payment_date" binding:"required" example:"2024-05-02T09:30:00Z"`
}

// PaymentListFilter represents filter options for listing payments
type PaymentListFilter struct {
	OrderID   string `form:"order_id" binding:"omitempty,uuid"`
	AccountID string `form:"account_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse represents a payment in API responses
// @Description Recorded payment
type PaymentResponse struct {
	ID            uuid.UUID         `json:"id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	OrderID       *uuid.UUID        `json:"order_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AccountID     *uuid.UUID        `json:"account_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CardID        *uuid.UUID        `json:"card_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Amount        valueobject.Money `json:"amount" swaggertype:"number" example:"50.00"`
	PaymentMethod string            `json:"payment_method" example:"CARD"`
	PaymentDate   time.Time         `json:"payment_date" example:"2024-05-02T09:30:00Z"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *sales.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		AccountID:     p.AccountID,
		CardID:        p.CardID,
		Amount:        p.Amount,
		PaymentMethod: string(p.PaymentMethod),
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
}

// =============================================================================
// Point-of-sale DTOs
// =============================================================================

// SaleRequest represents an in-store sale charged to an account
// @Description Request body for an in-store sale of one product
type SaleRequest struct {
	AccountID  uuid.UUID `json:"account_id" binding:"required" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CustomerID uuid.UUID `json:"customer_id" binding:"required" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	LocationID uuid.UUID `json:"location_id" binding:"required" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProductID  uuid.UUID `json:"product_id" binding:"required" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity   int       `json:"quantity" binding:"required,gt=0" example:"2"`
}

// InventoryResponse represents a stock record in API responses
// @Description Stock record after a sale
type InventoryResponse struct {
	LocationID      uuid.UUID `json:"location_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProductID       uuid.UUID `json:"product_id" swaggertype:"string" format:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	QuantityOnHand  int       `json:"quantity_on_hand" example:"18"`
	ReorderLevel    int       `json:"reorder_level" example:"5"`
	ReorderQuantity int       `json:"reorder_quantity" example:"20"`
	NeedsReorder    bool      `json:"needs_reorder" example:"false"`
}

// ToInventoryResponse converts a domain InventoryItem to InventoryResponse
func ToInventoryResponse(i *sales.InventoryItem) InventoryResponse {
	return InventoryResponse{
		LocationID:      i.LocationID,
		ProductID:       i.ProductID,
		QuantityOnHand:  i.QuantityOnHand,
		ReorderLevel:    i.ReorderLevel,
		ReorderQuantity: i.ReorderQuantity,
		NeedsReorder:    i.NeedsReorder(),
	}
}

// SaleResponse is returned after a completed sale
// @Description Result of a completed sale
type SaleResponse struct {
	Message   string                    `json:"message" example:"Transaction successful"`
	TotalCost valueobject.Money         `json:"total_cost" swaggertype:"number" example:"120.00"`
	Order     OrderResponse             `json:"order"`
	Account   ledgerapp.AccountResponse `json:"account"`
	Inventory InventoryResponse         `json:"inventory"`
}

// optionalID parses an id query parameter. Query ids are bound as strings
// since form binding cannot decode into uuid.UUID.
func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
