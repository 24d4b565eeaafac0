package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
	"github.com/calebhawthorne/regenmarket-backend/pkg/types"
)

// Order is a committed checkout. Totals are server-computed at intake;
// the item set is fixed once written.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	ShippingAddress types.Address        `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	BillingAddress  types.Address        `gorm:"column:billing_address;type:jsonb;serializer:json"`
	PaymentMethod   enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null"`
	ShippingMethod  enums.ShippingMethod `gorm:"column:shipping_method;type:text;not null"`
	SubtotalCents   int                  `gorm:"column:subtotal_cents;not null"`
	ShippingCents   int                  `gorm:"column:shipping_cents;not null"`
	TaxCents        int                  `gorm:"column:tax_cents;not null"`
	TotalCents      int                  `gorm:"column:total_cents;not null"`
	Status          enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes           *string              `gorm:"column:notes"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
