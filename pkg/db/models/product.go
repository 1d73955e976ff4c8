package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/types"
)

// Product is a catalog listing. Images are stored as an ordered JSON array of
// URL strings; array order is display order.
type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU         *string        `gorm:"column:sku"`
	Title       string         `gorm:"column:title;not null"`
	Description string         `gorm:"column:description;not null;default:''"`
	PriceCents  int            `gorm:"column:price_cents;not null"`
	Currency    enums.Currency `gorm:"column:currency;type:text;not null;default:'USD'"`
	Stock       int            `gorm:"column:stock;not null;default:0"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	CategoryID  *uuid.UUID     `gorm:"column:category_id;type:uuid"`
	Images      []string       `gorm:"column:images;type:jsonb;serializer:json"`
	Attributes  types.JSONMap  `gorm:"column:attributes;type:jsonb;serializer:json"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
