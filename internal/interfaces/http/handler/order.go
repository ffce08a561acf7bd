package handler

import (
	salesapp "github.com/erp/ledger/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *salesapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *salesapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Create an order
// @Description  Create an order. An explicit total is charged to the account in the same transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateOrderRequest true "Order creation request"
// @Success      201 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{details=dto.CreditLimitDetails}
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req salesapp.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get order by ID
// @Description  Retrieve an order together with its lines
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @Summary      List orders
// @Description  Retrieve a paginated list of orders with optional filters
// @Tags         orders
// @Produce      json
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        account_id query string false "Account ID" format(uuid)
// @Param        status query string false "Order status" Enums(PENDING, COMPLETED, CANCELLED, SHIPPED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]salesapp.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter salesapp.OrderListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update an order
// @Description  Partially update an order. Changing the total or the account moves the contribution between balances.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body salesapp.UpdateOrderRequest true "Order update request"
// @Success      200 {object} dto.Response{data=salesapp.OrderResponse}
// @Failure      400 {object} dto.Response{details=dto.CreditLimitDetails}
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUID(c, "id")
	if !ok {
		return
	}
	var req salesapp.UpdateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete an order
// @Description  Delete an order without lines or payments and credit its total back to the account
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c)
}

// PurchaseHistory godoc
// @Summary      Customer purchase history
// @Description  List a customer's orders joined with their lines, products and locations, newest order first
// @Tags         purchase-history
// @Produce      json
// @Param        customerId path string true "Customer ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]salesapp.PurchaseRecordResponse}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /purchase-history/{customerId} [get]
func (h *OrderHandler) PurchaseHistory(c *gin.Context) {
	customerID, ok := h.ParseUUID(c, "customerId")
	if !ok {
		return
	}

	history, err := h.orderService.PurchaseHistory(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}
