// Package handler exposes the ledger services over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/erp/ledger/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default page size when the client sends none
const defaultPageSize = 20

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Deleted acknowledges a delete with {"success": true}
func (h *BaseHandler) Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Response{Success: true})
}

// Error sends an error response, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	middleware.SetErrorCode(c, code)
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BindJSON binds the body into req, answering 400 on failure
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.SetErrorCode(c, dto.ErrCodeValidation)
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// BindQuery binds query parameters into filter, answering 400 on failure
func (h *BaseHandler) BindQuery(c *gin.Context, filter any) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		middleware.SetErrorCode(c, dto.ErrCodeValidation)
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// ParseUUID reads a UUID path parameter, answering 400 when malformed
func (h *BaseHandler) ParseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}

// ParseLineNo reads the :lineNo path parameter
func (h *BaseHandler) ParseLineNo(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("lineNo"))
	if err != nil || n < 1 {
		h.Error(c, dto.ErrCodeValidation, "Invalid lineNo: must be a positive integer")
		return 0, false
	}
	return n, true
}

// HandleError maps service errors onto the error taxonomy
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)

	// Its causes may be domain errors, so it is matched first
	var compErr *shared.CompensationFailureError
	if errors.As(err, &compErr) {
		logger.L(c.Request.Context()).Error("Compensation failed, manual reconciliation required",
			zap.Error(err))
		h.Error(c, dto.ErrCodeCompensationFailed, "Operation failed and could not be fully rolled back")
		return
	}

	var creditErr *ledger.CreditLimitExceededError
	if errors.As(err, &creditErr) {
		middleware.SetErrorCode(c, dto.ErrCodeCreditLimitExceeded)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrCodeCreditLimitExceeded,
			creditErr.Error(),
			requestID,
			dto.CreditLimitDetails{
				CreditLimit:     creditErr.Limit,
				CurrentBalance:  creditErr.PriorBalance,
				RejectedBalance: creditErr.RejectedBalance,
			},
		))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if domainErr.Field != "" {
			middleware.SetErrorCode(c, code)
			c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithDetails(code, domainErr.Message, requestID,
				[]dto.ValidationDetail{{Field: domainErr.Field, Message: domainErr.Message}}))
			return
		}
		h.Error(c, code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}
