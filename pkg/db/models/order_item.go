package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/types"
)

// OrderItem is the immutable snapshot of a purchased line. ProductID is
// nullable so the line survives a later product deletion.
type OrderItem struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID      `gorm:"column:order_id;type:uuid;not null"`
	ProductID      *uuid.UUID     `gorm:"column:product_id;type:uuid"`
	Title          string         `gorm:"column:title;not null"`
	SKU            *string        `gorm:"column:sku"`
	Quantity       int            `gorm:"column:quantity;not null;default:1"`
	UnitPriceCents int            `gorm:"column:unit_price_cents;not null;default:0"`
	Currency       enums.Currency `gorm:"column:currency;type:text;not null;default:'USD'"`
	Attributes     types.JSONMap  `gorm:"column:attributes;type:jsonb;serializer:json"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string { return "order_items" }
