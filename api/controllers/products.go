package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/api/responses"
	"github.com/calebhawthorne/regenmarket-backend/api/validators"
	"github.com/calebhawthorne/regenmarket-backend/internal/catalog"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
	"github.com/calebhawthorne/regenmarket-backend/pkg/logger"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
)

// ListProducts serves the public storefront catalog.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		featured, err := validators.ParseQueryBool(r, "featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.ListProductsInput{
			CategorySlug: strings.TrimSpace(r.URL.Query().Get("category")),
			Query:        validators.CollapseSpaces(r.URL.Query().Get("q")),
			FeaturedOnly: featured,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetProductBySlug serves the public product detail page.
func GetProductBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required"))
			return
		}

		product, err := svc.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	Name           string     `json:"name" validate:"required"`
	Slug           string     `json:"slug" validate:"required"`
	Description    *string    `json:"description,omitempty"`
	PriceCents     int        `json:"price_cents" validate:"gte=0"`
	SalePriceCents *int       `json:"sale_price_cents,omitempty"`
	StockQuantity  int        `json:"stock_quantity" validate:"gte=0"`
	Unit           string     `json:"unit"`
	Certifications []string   `json:"certifications,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
	IsFeatured     bool       `json:"is_featured"`
}

func (p createProductRequest) toInput() catalog.CreateProductInput {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return catalog.CreateProductInput{
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		PriceCents:     p.PriceCents,
		SalePriceCents: p.SalePriceCents,
		StockQuantity:  p.StockQuantity,
		Unit:           p.Unit,
		Certifications: p.Certifications,
		IsActive:       active,
		IsFeatured:     p.IsFeatured,
	}
}

// AdminCreateProduct handles catalog product creation.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	Name           *string    `json:"name,omitempty"`
	Slug           *string    `json:"slug,omitempty"`
	Description    *string    `json:"description,omitempty"`
	PriceCents     *int       `json:"price_cents,omitempty"`
	SalePriceCents *int       `json:"sale_price_cents,omitempty"`
	ClearSalePrice bool       `json:"clear_sale_price"`
	StockQuantity  *int       `json:"stock_quantity,omitempty"`
	Unit           *string    `json:"unit,omitempty"`
	Certifications *[]string  `json:"certifications,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
	IsFeatured     *bool      `json:"is_featured,omitempty"`
}

// AdminUpdateProduct patches an existing product.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, catalog.UpdateProductInput{
			CategoryID:     payload.CategoryID,
			Name:           payload.Name,
			Slug:           payload.Slug,
			Description:    payload.Description,
			PriceCents:     payload.PriceCents,
			SalePriceCents: payload.SalePriceCents,
			ClearSalePrice: payload.ClearSalePrice,
			StockQuantity:  payload.StockQuantity,
			Unit:           payload.Unit,
			Certifications: payload.Certifications,
			IsActive:       payload.IsActive,
			IsFeatured:     payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminRetireProduct deactivates a product while keeping its order history.
func AdminRetireProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RetireProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "retired"})
	}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
