package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
	"github.com/calebhawthorne/regenmarket-backend/pkg/types"
)

func openOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          name,
		Slug:          "p-" + uuid.NewString(),
		PriceCents:    850,
		StockQuantity: stock,
		Unit:          "bag",
		IsActive:      true,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func seedOrder(t *testing.T, conn *gorm.DB, userID uuid.UUID, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:          userID,
		ShippingAddress: types.Address{Line1: "1 Test St", City: "Ames", State: "IA", PostalCode: "50010", Country: "US"},
		BillingAddress:  types.Address{Line1: "1 Test St", City: "Ames", State: "IA", PostalCode: "50010", Country: "US"},
		PaymentMethod:   enums.PaymentMethodCard,
		ShippingMethod:  enums.ShippingMethodStandard,
		SubtotalCents:   850,
		ShippingCents:   100,
		TaxCents:        43,
		TotalCents:      993,
		Status:          status,
		CreatedAt:       createdAt,
	}
	require.NoError(t, conn.Omit("Items").Create(order).Error)
	return order
}

func TestRepositoryDecrementStockGuardsAgainstOverdraw(t *testing.T) {
	conn := openOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Organic Compost", 5)

	ok, err := repo.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok, "decrement past remaining stock must be refused")

	var reloaded models.Product
	require.NoError(t, conn.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 2, reloaded.StockQuantity)
}

func TestRepositoryCreateAndFindOrderDetail(t *testing.T) {
	conn := openOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Organic Compost", 10)
	order := seedOrder(t, conn, uuid.New(), enums.OrderStatusPending, time.Now().UTC())

	items := []models.OrderItem{{
		OrderID:        order.ID,
		ProductID:      product.ID,
		Name:           product.Name,
		Quantity:       2,
		UnitPriceCents: 850,
		TotalCents:     1700,
	}}
	require.NoError(t, repo.CreateOrderItems(ctx, items))

	detail, err := repo.FindOrderDetail(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 1700, detail.Items[0].TotalCents)
	assert.Equal(t, "Ames", detail.ShippingAddress.City)
}

func TestRepositoryListOrdersFilters(t *testing.T) {
	conn := openOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	now := time.Now().UTC()
	seedOrder(t, conn, alice, enums.OrderStatusPending, now.Add(-3*time.Hour))
	seedOrder(t, conn, alice, enums.OrderStatusShipped, now.Add(-2*time.Hour))
	seedOrder(t, conn, bob, enums.OrderStatusPending, now.Add(-1*time.Hour))

	status := enums.OrderStatusPending
	rows, err := repo.ListOrders(ctx, pagination.Params{Limit: 10}, AdminOrderFilters{Status: &status})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.ListOrders(ctx, pagination.Params{Limit: 10}, AdminOrderFilters{UserID: &alice})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	from := now.Add(-90 * time.Minute)
	rows, err = repo.ListOrders(ctx, pagination.Params{Limit: 10}, AdminOrderFilters{DateFrom: &from})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRepositoryListOrdersByUserPaginates(t *testing.T) {
	conn := openOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		seedOrder(t, conn, user, enums.OrderStatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	rows, err := repo.ListOrdersByUser(ctx, user, pagination.Params{Limit: 2})
	require.NoError(t, err)
	// limit+1 buffer row for next-page detection
	require.Len(t, rows, 3)

	cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: rows[1].CreatedAt, ID: rows[1].ID})
	rest, err := repo.ListOrdersByUser(ctx, user, pagination.Params{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestRepositoryUpdateOrderStatus(t *testing.T) {
	conn := openOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	order := seedOrder(t, conn, uuid.New(), enums.OrderStatusPending, time.Now().UTC())

	require.NoError(t, repo.UpdateOrderStatus(ctx, order.ID, enums.OrderStatusProcessing))

	reloaded, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, reloaded.Status)

	assert.Error(t, repo.UpdateOrderStatus(ctx, uuid.New(), enums.OrderStatusProcessing))
}
