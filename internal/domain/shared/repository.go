package shared

import (
	"context"

	"github.com/google/uuid"
)

// Filter represents list query options
type Filter struct {
	Page     int
	PageSize int
	OrderDir string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderDir: "desc",
	}
}

// Normalize clamps paging values into a usable range
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	if f.OrderDir != "asc" {
		f.OrderDir = "desc"
	}
	return f
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// ReferenceKind names the entity a foreign key points at
type ReferenceKind string

const (
	RefCustomer ReferenceKind = "customer"
	RefAccount  ReferenceKind = "account"
	RefLocation ReferenceKind = "location"
	RefProduct  ReferenceKind = "product"
	RefOrder    ReferenceKind = "order"
	RefCard     ReferenceKind = "card"
)

// ReferenceChecker answers whether a referenced entity exists.
// It is the black-box existence collaborator behind the referential validator.
type ReferenceChecker interface {
	Exists(ctx context.Context, kind ReferenceKind, id uuid.UUID) (bool, error)
}
