package handler

import (
	salesapp "github.com/erp/ledger/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderLineHandler handles order line endpoints. Lines are addressed by
// their composite key (orderId, lineNo).
type OrderLineHandler struct {
	BaseHandler
	lineService *salesapp.OrderLineService
}

// NewOrderLineHandler creates a new OrderLineHandler
func NewOrderLineHandler(lineService *salesapp.OrderLineService) *OrderLineHandler {
	return &OrderLineHandler{lineService: lineService}
}

// Create godoc
// @Summary      Add an order line
// @Description  Add a line to an order. The unit price defaults to the catalog price and the line number to the next free one. The order total and account balance follow in the same transaction.
// @Tags         order-lines
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateOrderLineRequest true "Order line creation request"
// @Success      201 {object} dto.Response{data=salesapp.OrderLineResponse}
// @Failure      400 {object} dto.Response{details=dto.CreditLimitDetails}
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /order-lines [post]
func (h *OrderLineHandler) Create(c *gin.Context) {
	var req salesapp.CreateOrderLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	line, err := h.lineService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, line)
}

// Get godoc
// @Summary      Get an order line
// @Description  Retrieve one line by order ID and line number
// @Tags         order-lines
// @Produce      json
// @Param        orderId path string true "Order ID" format(uuid)
// @Param        lineNo path int true "Line number"
// @Success      200 {object} dto.Response{data=salesapp.OrderLineResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /order-lines/{orderId}/{lineNo} [get]
func (h *OrderLineHandler) Get(c *gin.Context) {
	orderID, lineNo, ok := h.parseKey(c)
	if !ok {
		return
	}

	line, err := h.lineService.Get(c.Request.Context(), orderID, lineNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// List godoc
// @Summary      List order lines
// @Description  List the lines of one order, or page through every line when no order is given
// @Tags         order-lines
// @Produce      json
// @Param        order_id query string false "Order ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]salesapp.OrderLineResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /order-lines [get]
func (h *OrderLineHandler) List(c *gin.Context) {
	var filter salesapp.OrderLineListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	if orderID := filter.Order(); orderID != nil {
		h.listByOrder(c, *orderID)
		return
	}

	lines, total, err := h.lineService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, lines, total, filter.Page, filter.PageSize)
}

// ListByOrder godoc
// @Summary      List an order's lines
// @Description  List every line of an order by line number
// @Tags         order-lines
// @Produce      json
// @Param        orderId path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]salesapp.OrderLineResponse}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /order-lines/order/{orderId} [get]
func (h *OrderLineHandler) ListByOrder(c *gin.Context) {
	orderID, ok := h.ParseUUID(c, "orderId")
	if !ok {
		return
	}
	h.listByOrder(c, orderID)
}

func (h *OrderLineHandler) listByOrder(c *gin.Context, orderID uuid.UUID) {
	lines, err := h.lineService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// Update godoc
// @Summary      Update an order line
// @Description  Change a line's product, quantity, price or discount. A rejected charge leaves the line as it was.
// @Tags         order-lines
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order ID" format(uuid)
// @Param        lineNo path int true "Line number"
// @Param        request body salesapp.UpdateOrderLineRequest true "Order line update request"
// @Success      200 {object} dto.Response{data=salesapp.OrderLineResponse}
// @Failure      400 {object} dto.Response{details=dto.CreditLimitDetails}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /order-lines/{orderId}/{lineNo} [put]
func (h *OrderLineHandler) Update(c *gin.Context) {
	orderID, lineNo, ok := h.parseKey(c)
	if !ok {
		return
	}
	var req salesapp.UpdateOrderLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	line, err := h.lineService.Update(c.Request.Context(), orderID, lineNo, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// Delete godoc
// @Summary      Delete an order line
// @Description  Remove a line and credit its value back to the order's account
// @Tags         order-lines
// @Produce      json
// @Param        orderId path string true "Order ID" format(uuid)
// @Param        lineNo path int true "Line number"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /order-lines/{orderId}/{lineNo} [delete]
func (h *OrderLineHandler) Delete(c *gin.Context) {
	orderID, lineNo, ok := h.parseKey(c)
	if !ok {
		return
	}

	if err := h.lineService.Delete(c.Request.Context(), orderID, lineNo); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c)
}

func (h *OrderLineHandler) parseKey(c *gin.Context) (uuid.UUID, int, bool) {
	orderID, ok := h.ParseUUID(c, "orderId")
	if !ok {
		return uuid.Nil, 0, false
	}
	lineNo, ok := h.ParseLineNo(c)
	if !ok {
		return uuid.Nil, 0, false
	}
	return orderID, lineNo, true
}
