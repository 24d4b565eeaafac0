package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
)

// ProductDTO is the transport shape for catalog products.
type ProductDTO struct {
	ID                  uuid.UUID    `json:"id"`
	CategoryID          *uuid.UUID   `json:"category_id,omitempty"`
	Name                string       `json:"name"`
	Slug                string       `json:"slug"`
	Description         *string      `json:"description,omitempty"`
	PriceCents          int          `json:"price_cents"`
	SalePriceCents      *int         `json:"sale_price_cents,omitempty"`
	EffectivePriceCents int          `json:"effective_price_cents"`
	StockQuantity       int          `json:"stock_quantity"`
	Unit                string       `json:"unit"`
	Certifications      []string     `json:"certifications"`
	IsActive            bool         `json:"is_active"`
	IsFeatured          bool         `json:"is_featured"`
	Category            *CategoryDTO `json:"category,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// CategoryDTO is the transport shape for categories.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResult carries a page of products plus the next cursor.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter products.
type ListProductsInput struct {
	CategorySlug  string
	Query         string
	FeaturedOnly  bool
	IncludeHidden bool
	Pagination    pagination.Params
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CategoryID     *uuid.UUID
	Name           string
	Slug           string
	Description    *string
	PriceCents     int
	SalePriceCents *int
	StockQuantity  int
	Unit           string
	Certifications []string
	IsActive       bool
	IsFeatured     bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	CategoryID     *uuid.UUID
	Name           *string
	Slug           *string
	Description    *string
	PriceCents     *int
	SalePriceCents *int
	ClearSalePrice bool
	StockQuantity  *int
	Unit           *string
	Certifications *[]string
	IsActive       *bool
	IsFeatured     *bool
}

// CreateCategoryInput holds the payload to create a category.
type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description *string
	Position    int
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	Position    *int
}

func productFromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:                  p.ID,
		CategoryID:          p.CategoryID,
		Name:                p.Name,
		Slug:                p.Slug,
		Description:         p.Description,
		PriceCents:          p.PriceCents,
		SalePriceCents:      p.SalePriceCents,
		EffectivePriceCents: p.EffectivePriceCents(),
		StockQuantity:       p.StockQuantity,
		Unit:                p.Unit,
		Certifications:      append([]string(nil), p.Certifications...),
		IsActive:            p.IsActive,
		IsFeatured:          p.IsFeatured,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	if dto.Certifications == nil {
		dto.Certifications = []string{}
	}
	if p.Category != nil {
		dto.Category = categoryFromModel(p.Category)
	}
	return dto
}

func categoryFromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Position:    c.Position,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
