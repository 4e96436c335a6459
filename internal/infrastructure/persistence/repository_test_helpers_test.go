package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testOrderID    = "550e8400-e29b-41d4-a716-446655440000"
	testProductID  = "6ba7b810-9dad-41d1-80b4-00c04fd430c8"
	testCustomerID = "a1b2c3d4-e5f6-4789-abcd-ef0123456789"
	testSellerID   = "9b2e6c1a-5d3f-4e8a-b7c9-1f2a3b4c5d6e"
	otherSellerID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

// setupTestDB opens an in-memory SQLite database with the schema migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to ":memory:" is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.Schema()...))
	return db
}

// newMockGormDB opens GORM on the postgres dialector backed by sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := openMockPostgres(mockDB)
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func openMockPostgres(conn *sql.DB) (*gorm.DB, error) {
	dialector := postgres.New(postgres.Config{
		Conn:       conn,
		DriverName: "postgres",
	})
	return gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
}

func newTestOrder(t *testing.T, id, sellerID string) *order.Order {
	t.Helper()

	quantity, err := order.NewQuantity(2)
	require.NoError(t, err)
	price, err := order.NewPriceFromFloat(49.99)
	require.NoError(t, err)

	o := order.CreateOrder(
		shared.OrderIDFromPrimitive(id),
		shared.ProductIDFromPrimitive(testProductID),
		quantity,
		price,
		shared.CustomerIDFromPrimitive(testCustomerID),
		shared.SellerIDFromPrimitive(sellerID),
	)
	o.ClearRecordedEvents()
	return o
}

func newTestInvoice(t *testing.T, orderID, sellerID string) *invoice.Invoice {
	t.Helper()

	path, err := invoice.NewFilePath("/uploads/invoice-" + orderID + ".pdf")
	require.NoError(t, err)

	inv := invoice.UploadInvoice(
		invoice.GenerateID(),
		shared.OrderIDFromPrimitive(orderID),
		shared.SellerIDFromPrimitive(sellerID),
		path,
	)
	inv.ClearRecordedEvents()
	return inv
}
