package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db"
	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
	pkgerrors "github.com/calebhawthorne/regenmarket-backend/pkg/errors"
)

// Service exposes storefront content reads plus admin section management.
type Service interface {
	ListPublished(ctx context.Context) ([]SectionDTO, error)
	GetPublishedByKey(ctx context.Context, key string) (*SectionDTO, error)
	ListAll(ctx context.Context) ([]SectionDTO, error)
	Create(ctx context.Context, input CreateSectionInput) (*SectionDTO, error)
	Update(ctx context.Context, sectionID uuid.UUID, input UpdateSectionInput) (*SectionDTO, error)
	Unpublish(ctx context.Context, sectionID uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService constructs a content service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPublished(ctx context.Context) ([]SectionDTO, error) {
	rows, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sections")
	}
	return toDTOs(rows), nil
}

func (s *service) GetPublishedByKey(ctx context.Context, key string) (*SectionDTO, error) {
	section, err := s.repo.FindByKey(ctx, normalizeKey(key))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "section not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load section")
	}
	if !section.Published {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "section not found")
	}
	return sectionFromModel(section), nil
}

func (s *service) ListAll(ctx context.Context) ([]SectionDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sections")
	}
	return toDTOs(rows), nil
}

func (s *service) Create(ctx context.Context, input CreateSectionInput) (*SectionDTO, error) {
	key := normalizeKey(input.Key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "section key is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "section title is required")
	}

	section := &models.ContentSection{
		Key:       key,
		Title:     strings.TrimSpace(input.Title),
		Body:      input.Body,
		Position:  input.Position,
		Published: input.Published,
	}
	created, err := s.repo.Create(ctx, section)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "section key already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create section")
	}
	return sectionFromModel(created), nil
}

func (s *service) Update(ctx context.Context, sectionID uuid.UUID, input UpdateSectionInput) (*SectionDTO, error) {
	section, err := s.repo.FindByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "section not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load section")
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "section title is required")
		}
		section.Title = strings.TrimSpace(*input.Title)
	}
	if input.Body != nil {
		section.Body = *input.Body
	}
	if input.Position != nil {
		section.Position = *input.Position
	}
	if input.Published != nil {
		section.Published = *input.Published
	}

	updated, err := s.repo.Update(ctx, section)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update section")
	}
	return sectionFromModel(updated), nil
}

// Unpublish hides a section from the storefront. Sections are never hard
// deleted so slot ordering survives editorial churn.
func (s *service) Unpublish(ctx context.Context, sectionID uuid.UUID) error {
	section, err := s.repo.FindByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "section not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load section")
	}
	if !section.Published {
		return nil
	}
	section.Published = false
	if _, err := s.repo.Update(ctx, section); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unpublish section")
	}
	return nil
}

func toDTOs(rows []models.ContentSection) []SectionDTO {
	out := make([]SectionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *sectionFromModel(&rows[i]))
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
