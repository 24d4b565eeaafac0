package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/internal/repo"
	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	"github.com/calebhawthorne/regenmarket-backend/pkg/pagination"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// CreateProduct inserts a new product.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct persists the mutated product model.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindProductByID loads the product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductBySlug loads an active product with its category preloaded.
func (r *Repository) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).
		Preload("Category").
		First(&product, "slug = ?", strings.ToLower(strings.TrimSpace(slug))).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActiveProducts returns every active product ordered by name.
// Order intake matches cart lines against this set.
func (r *Repository) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := r.DB(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListProducts returns a cursor page of products matching the filters.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	tx := r.DB(ctx).Model(&models.Product{}).Preload("Category")

	if !input.IncludeHidden {
		tx = tx.Where("is_active = ?", true)
	}
	if input.FeaturedOnly {
		tx = tx.Where("is_featured = ?", true)
	}
	if slug := strings.TrimSpace(input.CategorySlug); slug != "" {
		tx = tx.Where("category_id IN (?)",
			r.DB(ctx).Model(&models.Category{}).Select("id").Where("slug = ?", slug))
	}
	if q := strings.TrimSpace(input.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ?", like)
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		tx = tx.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var out []models.Product
	if err := tx.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(input.Pagination.Limit)).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory inserts a new category.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory persists the mutated category model.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category; products keep a NULL category.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tx := r.DB(ctx)
	if err := tx.Model(&models.Product{}).
		Where("category_id = ?", id).
		UpdateColumn("category_id", nil).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Category{}, "id = ?", id).Error
}

// FindCategoryByID loads a category by its UUID.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns every category ordered by position then name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := r.DB(ctx).
		Order("position ASC, name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
