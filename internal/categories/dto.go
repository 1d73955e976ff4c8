package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetside/storefront-backend/pkg/db/models"
)

// CategoryDTO is the wire representation of a category.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategoryDTO maps a persisted row onto its DTO.
func NewCategoryDTO(category *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Slug:      category.Slug,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// NewCategoryDTOs maps a slice of rows.
func NewCategoryDTOs(rows []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, NewCategoryDTO(&rows[i]))
	}
	return dtos
}
