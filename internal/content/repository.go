package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/internal/repo"
	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
)

// Repository persists content sections.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new section.
func (r *Repository) Create(ctx context.Context, section *models.ContentSection) (*models.ContentSection, error) {
	if err := r.DB(ctx).Create(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

// Update persists the mutated section model.
func (r *Repository) Update(ctx context.Context, section *models.ContentSection) (*models.ContentSection, error) {
	if err := r.DB(ctx).Save(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

// FindByID loads a section by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ContentSection, error) {
	var section models.ContentSection
	if err := r.DB(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// FindByKey loads a section by its unique key.
func (r *Repository) FindByKey(ctx context.Context, key string) (*models.ContentSection, error) {
	var section models.ContentSection
	if err := r.DB(ctx).First(&section, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// ListPublished returns published sections in display order.
func (r *Repository) ListPublished(ctx context.Context) ([]models.ContentSection, error) {
	var sections []models.ContentSection
	err := r.DB(ctx).
		Where("published = ?", true).
		Order("position ASC").
		Order("key ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// ListAll returns every section, published or not, in display order.
func (r *Repository) ListAll(ctx context.Context) ([]models.ContentSection, error) {
	var sections []models.ContentSection
	err := r.DB(ctx).
		Order("position ASC").
		Order("key ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}
