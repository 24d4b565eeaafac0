package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product is a catalog listing. Name carries no uniqueness guarantee;
// only ID is identity.
type Product struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	CategoryID     *uuid.UUID     `gorm:"column:category_id;type:uuid"`
	Name           string         `gorm:"column:name;not null"`
	Slug           string         `gorm:"column:slug;not null;uniqueIndex"`
	Description    *string        `gorm:"column:description"`
	PriceCents     int            `gorm:"column:price_cents;not null"`
	SalePriceCents *int           `gorm:"column:sale_price_cents"`
	StockQuantity  int            `gorm:"column:stock_quantity;not null;default:0"`
	Unit           string         `gorm:"column:unit;not null;default:'unit'"`
	Certifications pq.StringArray `gorm:"column:certifications;type:text[]"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	IsFeatured     bool           `gorm:"column:is_featured;not null;default:false"`
	Category       *Category      `gorm:"foreignKey:CategoryID"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EffectivePriceCents applies the sale price when one is set. A set sale
// price always wins, even when it is not lower than the list price.
func (p Product) EffectivePriceCents() int {
	if p.SalePriceCents != nil {
		return *p.SalePriceCents
	}
	return p.PriceCents
}
