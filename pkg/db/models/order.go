package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/types"
)

// Order owns its items: they are created in the same transaction and cascade
// on delete. TotalCents is computed server-side at creation time.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	Status     enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalCents int               `gorm:"column:total_cents;not null"`
	Currency   enums.Currency    `gorm:"column:currency;type:text;not null;default:'USD'"`
	Meta       types.JSONMap     `gorm:"column:meta;type:jsonb;serializer:json"`
	Items      []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }
