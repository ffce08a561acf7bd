package router

import (
	"github.com/erp/ledger/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the HTTP handlers of the ledger API
type Handlers struct {
	Accounts     *handler.AccountHandler
	Orders       *handler.OrderHandler
	OrderLines   *handler.OrderLineHandler
	Payments     *handler.PaymentHandler
	Transactions *handler.TransactionHandler
	Health       *handler.HealthHandler
}

// RegisterLedgerRoutes registers every resource on r. idempotency guards the
// endpoints that create money movements from a single client request.
func RegisterLedgerRoutes(r *Router, h Handlers, idempotency gin.HandlerFunc) {
	if idempotency == nil {
		idempotency = func(c *gin.Context) { c.Next() }
	}

	r.Register(NewDomainGroup("health", "/health").
		GET("", h.Health.Check))

	r.Register(NewDomainGroup("accounts", "/accounts").
		GET("", h.Accounts.List).
		POST("", h.Accounts.Create).
		GET("/:id", h.Accounts.GetByID).
		PUT("/:id", h.Accounts.Update).
		DELETE("/:id", h.Accounts.Delete).
		GET("/:id/entries", h.Accounts.ListEntries).
		GET("/:id/reconciliation", h.Accounts.Reconcile).
		POST("/:id/statements", h.Accounts.ExportStatement))

	r.Register(NewDomainGroup("orders", "/orders").
		GET("", h.Orders.List).
		POST("", h.Orders.Create).
		GET("/:id", h.Orders.GetByID).
		PUT("/:id", h.Orders.Update).
		DELETE("/:id", h.Orders.Delete))

	r.Register(NewDomainGroup("purchase-history", "/purchase-history").
		GET("/:customerId", h.Orders.PurchaseHistory))

	r.Register(NewDomainGroup("order-lines", "/order-lines").
		GET("", h.OrderLines.List).
		POST("", h.OrderLines.Create).
		GET("/order/:orderId", h.OrderLines.ListByOrder).
		GET("/:orderId/:lineNo", h.OrderLines.Get).
		PUT("/:orderId/:lineNo", h.OrderLines.Update).
		DELETE("/:orderId/:lineNo", h.OrderLines.Delete))

	r.Register(NewDomainGroup("payments", "/payments").
		GET("", h.Payments.List).
		POST("", idempotency, h.Payments.Create).
		GET("/:id", h.Payments.GetByID).
		DELETE("/:id", h.Payments.Delete))

	r.Register(NewDomainGroup("transactions", "/transactions").
		POST("", idempotency, h.Transactions.Create))
}
