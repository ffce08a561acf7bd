package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/domain/shared/valueobject"
	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newSQLiteDatabase opens a migrated in-memory database closed at test end
func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type seed struct {
	CustomerID uuid.UUID
	LocationID uuid.UUID
	ProductID  uuid.UUID
	CardID     uuid.UUID
}

// seedReferences inserts one customer, location, card and product priced at 10.00
func seedReferences(t *testing.T, db *gorm.DB) seed {
	t.Helper()

	customer := &models.CustomerModel{Name: "Ada Lovelace", Email: "ada@example.com"}
	customer.FromDomainBaseEntity(shared.NewBaseEntity())
	location := &models.LocationModel{Name: "Main Street"}
	location.FromDomainBaseEntity(shared.NewBaseEntity())
	card := &models.CardModel{CustomerID: customer.ID, Last4: "4242"}
	card.FromDomainBaseEntity(shared.NewBaseEntity())
	product := models.NewProductModel("Espresso Beans", "SKU-"+uuid.NewString()[:8], valueobject.MustMoney("10.00"))

	for _, row := range []any{customer, location, card, product} {
		require.NoError(t, db.Create(row).Error)
	}
	return seed{CustomerID: customer.ID, LocationID: location.ID, ProductID: product.ID, CardID: card.ID}
}

func seedInventory(t *testing.T, db *gorm.DB, locationID, productID uuid.UUID, onHand int) {
	t.Helper()
	require.NoError(t, db.Create(&models.InventoryModel{
		LocationID:      locationID,
		ProductID:       productID,
		QuantityOnHand:  onHand,
		ReorderLevel:    5,
		ReorderQuantity: 20,
		Version:         1,
		UpdatedAt:       time.Now(),
	}).Error)
}

func money(s string) *valueobject.Money {
	m := valueobject.MustMoney(s)
	return &m
}

func ptr[T any](v T) *T {
	return &v
}

func testContext() context.Context {
	return context.Background()
}
