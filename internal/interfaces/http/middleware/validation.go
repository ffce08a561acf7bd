package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/sales"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's validator: JSON field names in errors,
// Money validated by its decimal string, and the ledger enum tags.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the custom tags on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(valueobject.Money); ok {
			return m.Amount().String()
		}
		return nil
	}, valueobject.Money{})

	tags := map[string]validator.Func{
		"channel": func(fl validator.FieldLevel) bool {
			return sales.Channel(fl.Field().String()).IsValid()
		},
		"order_status": func(fl validator.FieldLevel) bool {
			return sales.OrderStatus(fl.Field().String()).IsValid()
		},
		"payment_method": func(fl validator.FieldLevel) bool {
			return sales.PaymentMethod(fl.Field().String()).IsValid()
		},
		"account_status": func(fl validator.FieldLevel) bool {
			return ledger.AccountStatus(fl.Field().String()).IsValid()
		},
		"money_positive": func(fl validator.FieldLevel) bool {
			m, ok := parseCents(fl.Field().String())
			return ok && m.IsPositive()
		},
		"money_non_negative": func(fl validator.FieldLevel) bool {
			m, ok := parseCents(fl.Field().String())
			return ok && !m.IsNegative()
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// parseCents parses a decimal string, rejecting amounts with more decimal
// places than the money columns store
func parseCents(s string) (valueobject.Money, bool) {
	m, err := valueobject.NewMoneyFromString(s)
	if err != nil || !m.IsWholeCents() {
		return valueobject.Money{}, false
	}
	return m, true
}

// FormatValidationErrors builds the 400 body for a binding error
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
		message := "Request validation failed"
		if len(details) == 1 {
			message = details[0].Field + ": " + details[0].Message
		}
		return dto.NewValidationErrorResponse(message, requestID, details)
	}

	// Malformed JSON, wrong types, bad UUIDs
	return dto.NewValidationErrorResponse("Invalid request body: "+err.Error(), requestID, nil)
}

// HandleValidationError answers 400 with the formatted binding error
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "channel":
		return "Must be one of: ONLINE INSTORE"
	case "order_status":
		return "Must be one of: PENDING COMPLETED CANCELLED SHIPPED"
	case "payment_method":
		return "Must be one of: CARD ACCOUNT CASH"
	case "account_status":
		return "Must be one of: ACTIVE SUSPENDED CLOSED"
	case "money_positive":
		return "Must be a positive amount with at most 2 decimal places"
	case "money_non_negative":
		return "Must be a non-negative amount with at most 2 decimal places"
	default:
		return "Invalid value"
	}
}
