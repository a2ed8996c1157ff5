//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)
	seedDefaultProducts(t, repo)

	found, _, err := repo.List(ProductListFilter{Search: "GRANOLA"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "granola-baiana", found[0].ID)
}

func TestPostgresOrderMoneyAndAddressRoundTrip(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewOrderRepository(db)
	from := time.Now().Add(-time.Minute)

	order := &models.Order{
		OrderNo:       "MDC12345678",
		Status:        constants.OrderStatusPendingPayment,
		PaymentMethod: constants.PaymentMethodCredit,
		Subtotal:      models.MustMoney("119.80"),
		DeliveryFee:   models.MustMoney("16.90"),
		Total:         models.MustMoney("136.70"),
		Address:       models.DeliveryAddress{FullName: "Maria", Neighborhood: "Moema"},
	}
	require.NoError(t, repo.Create(order, []models.OrderItem{{
		ProductID:   "cauchaca-original",
		ProductName: "Cauchaça Original",
		UnitPrice:   models.MustMoney("59.90"),
		Quantity:    2,
		TotalPrice:  models.MustMoney("119.80"),
	}}))

	list, total, err := repo.ListAdmin(OrderListFilter{CreatedFrom: &from})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "136.70", list[0].Total.String())
	assert.Equal(t, "Moema", list[0].Address.Neighborhood)
}
