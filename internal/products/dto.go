package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetside/storefront-backend/pkg/db/models"
	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/types"
)

// ProductDTO is the wire representation of a catalog product.
type ProductDTO struct {
	ID          uuid.UUID      `json:"id"`
	SKU         *string        `json:"sku"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PriceCents  int            `json:"price_cents"`
	Currency    enums.Currency `json:"currency"`
	Stock       int            `json:"stock"`
	IsActive    bool           `json:"is_active"`
	CategoryID  *uuid.UUID     `json:"category_id"`
	Images      []string       `json:"images"`
	Attributes  types.JSONMap  `json:"attributes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewProductDTO maps a persisted row onto its DTO. Nil JSON columns surface
// as empty containers so clients never see null where an array is expected.
func NewProductDTO(product *models.Product) ProductDTO {
	images := product.Images
	if images == nil {
		images = []string{}
	}
	attributes := product.Attributes
	if attributes == nil {
		attributes = types.JSONMap{}
	}
	return ProductDTO{
		ID:          product.ID,
		SKU:         product.SKU,
		Title:       product.Title,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Currency:    product.Currency,
		Stock:       product.Stock,
		IsActive:    product.IsActive,
		CategoryID:  product.CategoryID,
		Images:      images,
		Attributes:  attributes,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// NewProductDTOs maps a slice of rows.
func NewProductDTOs(rows []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, NewProductDTO(&rows[i]))
	}
	return dtos
}
