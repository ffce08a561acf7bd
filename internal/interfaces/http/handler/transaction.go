package handler

import (
	salesapp "github.com/erp/ledger/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles point-of-sale transactions
type TransactionHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(saleService *salesapp.SaleService) *TransactionHandler {
	return &TransactionHandler{saleService: saleService}
}

// Create godoc
// @Summary      Record an in-store sale
// @Description  Sell one product at a location and charge it to an account. Stock, order, line and balance move in one transaction.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replays the first response for repeated keys"
// @Param        request body salesapp.SaleRequest true "Sale request"
// @Success      201 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response{details=dto.CreditLimitDetails}
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req salesapp.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.Sell(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}
