package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, error)
	ListOrders(ctx context.Context, params pagination.Params, filters AdminOrderFilters) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
}
