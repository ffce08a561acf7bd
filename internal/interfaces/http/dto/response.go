package dto

import "github.com/erp/ledger/internal/domain/shared/valueobject"

// Response represents a standard API response. On failure Error carries the
// human-readable message and Code the machine-readable one.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Details   any    `json:"details,omitempty"`
	Meta      *Meta  `json:"meta,omitempty"`
}

// Meta represents pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// ValidationDetail names one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CreditLimitDetails accompanies ERR_CREDIT_LIMIT_EXCEEDED
type CreditLimitDetails struct {
	CreditLimit     valueobject.Money `json:"credit_limit"`
	CurrentBalance  valueobject.Money `json:"current_balance"`
	RejectedBalance valueobject.Money `json:"rejected_balance"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewSuccessResponseWithMeta creates a success response with pagination meta
func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{Success: false, Error: message, Code: code}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{Success: false, Error: message, Code: code, RequestID: requestID}
}

// NewErrorResponseWithDetails creates an error response carrying structured details
func NewErrorResponseWithDetails(code, message, requestID string, details any) Response {
	return Response{Success: false, Error: message, Code: code, RequestID: requestID, Details: details}
}

// NewValidationErrorResponse creates a validation error response listing the fields
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := Response{Success: false, Error: message, Code: ErrCodeValidation, RequestID: requestID}
	if len(details) > 0 {
		resp.Details = details
	}
	return resp
}
