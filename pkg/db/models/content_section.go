package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentSection is an editable homepage/content block. Sections are
// unpublished rather than deleted so storefront slots never dangle.
type ContentSection struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Key       string    `gorm:"column:key;not null;uniqueIndex"`
	Title     string    `gorm:"column:title;not null"`
	Body      string    `gorm:"column:body;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
	Published bool      `gorm:"column:published;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *ContentSection) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
