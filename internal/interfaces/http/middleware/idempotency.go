package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader names the client supplied request key
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds the header so it cannot bloat the store
const maxIdempotencyKeyLength = 255

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency claims the Idempotency-Key of a request before the handler
// runs. A second request with a claimed key gets 409. The claim is released
// when the handler does not answer 2xx so the client may retry.
// Requests without the header pass through. Store failures fail open.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || cfg.Store == nil {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeValidation,
				"Idempotency-Key must be at most 255 characters",
				GetRequestID(c),
			))
			return
		}

		storeKey := c.Request.Method + ":" + c.FullPath() + ":" + key
		ctx := c.Request.Context()

		claimed, err := cfg.Store.MarkProcessed(ctx, storeKey, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable, processing request without claim",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			SetErrorCode(c, dto.ErrCodeDuplicateRequest)
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key has already been processed",
				GetRequestID(c),
			))
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			return
		}
		// The request context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := cfg.Store.Release(releaseCtx, storeKey); err != nil {
			log.Warn("Failed to release idempotency key",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err))
		}
	}
}
