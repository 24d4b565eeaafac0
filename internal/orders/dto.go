package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	"github.com/calebhawthorne/regenmarket-backend/pkg/types"
)

// CartLineInput is one client-maintained cart line. The product id may be
// absent or stale; the display name drives matching when it is.
type CartLineInput struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput is the validated checkout payload.
type CreateOrderInput struct {
	UserID          uuid.UUID
	ShippingAddress types.Address
	BillingAddress  *types.Address
	PaymentMethod   enums.PaymentMethod
	ShippingMethod  enums.ShippingMethod
	Notes           *string
	Items           []CartLineInput
}

// UnmatchedItem reports a cart line that could not be resolved to a product.
type UnmatchedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderItemDTO is the transport shape for a persisted order line.
type OrderItemDTO struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
	TotalCents     int       `json:"total_cents"`
}

// OrderDTO is the transport shape for a persisted order.
type OrderDTO struct {
	ID              uuid.UUID            `json:"id"`
	UserID          uuid.UUID            `json:"user_id"`
	ShippingAddress types.Address        `json:"shipping_address"`
	BillingAddress  types.Address        `json:"billing_address"`
	PaymentMethod   enums.PaymentMethod  `json:"payment_method"`
	ShippingMethod  enums.ShippingMethod `json:"shipping_method"`
	SubtotalCents   int                  `json:"subtotal_cents"`
	ShippingCents   int                  `json:"shipping_cents"`
	TaxCents        int                  `json:"tax_cents"`
	TotalCents      int                  `json:"total_cents"`
	Status          enums.OrderStatus    `json:"status"`
	Notes           *string              `json:"notes,omitempty"`
	Items           []OrderItemDTO       `json:"items"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CreateOrderResult wraps the created order plus any lines that were dropped.
type CreateOrderResult struct {
	Order          *OrderDTO       `json:"order"`
	UnmatchedItems []UnmatchedItem `json:"unmatched_items,omitempty"`
}

// AdminOrderFilters describe the admin list endpoint's filter knobs.
type AdminOrderFilters struct {
	Status   *enums.OrderStatus
	UserID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderList wraps a page of orders plus the next cursor.
type OrderList struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

func orderFromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		})
	}
	return &OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		PaymentMethod:   o.PaymentMethod,
		ShippingMethod:  o.ShippingMethod,
		SubtotalCents:   o.SubtotalCents,
		ShippingCents:   o.ShippingCents,
		TaxCents:        o.TaxCents,
		TotalCents:      o.TotalCents,
		Status:          o.Status,
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
