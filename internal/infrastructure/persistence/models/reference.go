package models

import (
	"github.com/google/uuid"
)

// CustomerModel is the customers table. Customers are maintained by another
// service; this service only checks that referenced rows exist.
type CustomerModel struct {
	BaseModel
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// LocationModel is the store locations table
type LocationModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// CardModel is the payment cards table
type CardModel struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Last4      string    `gorm:"type:varchar(4)"`
}

// TableName returns the table name for GORM
func (CardModel) TableName() string {
	return "cards"
}

// AllModels lists every table owned by the ledger schema, in dependency order
func AllModels() []any {
	return []any{
		&CustomerModel{},
		&LocationModel{},
		&CardModel{},
		&ProductModel{},
		&AccountModel{},
		&LedgerEntryModel{},
		&OrderModel{},
		&OrderLineModel{},
		&PaymentModel{},
		&InventoryModel{},
	}
}
