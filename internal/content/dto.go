package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
)

// SectionDTO is the API shape for a content section.
type SectionDTO struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Position  int       `json:"position"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSectionInput carries the fields for a new content section.
type CreateSectionInput struct {
	Key       string `json:"key" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body"`
	Position  int    `json:"position"`
	Published bool   `json:"published"`
}

// UpdateSectionInput patches an existing section. Nil fields are left as-is.
type UpdateSectionInput struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Position  *int    `json:"position"`
	Published *bool   `json:"published"`
}

func sectionFromModel(m *models.ContentSection) *SectionDTO {
	return &SectionDTO{
		ID:        m.ID,
		Key:       m.Key,
		Title:     m.Title,
		Body:      m.Body,
		Position:  m.Position,
		Published: m.Published,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
