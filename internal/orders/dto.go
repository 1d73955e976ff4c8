package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetside/storefront-backend/pkg/db/models"
	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/types"
)

// OrderItemDTO is the wire representation of a purchased line.
type OrderItemDTO struct {
	ID             uuid.UUID      `json:"id"`
	ProductID      *uuid.UUID     `json:"product_id"`
	Title          string         `json:"title"`
	SKU            *string        `json:"sku"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int            `json:"unit_price_cents"`
	Currency       enums.Currency `json:"currency"`
	Attributes     types.JSONMap  `json:"attributes"`
}

// OrderSummaryDTO is the list-view shape: header fields plus the customer
// email resolved through the join, no line items.
type OrderSummaryDTO struct {
	ID            uuid.UUID         `json:"id"`
	CustomerEmail string            `json:"customer_email"`
	Status        enums.OrderStatus `json:"status"`
	TotalCents    int               `json:"total_cents"`
	Currency      enums.Currency    `json:"currency"`
	CreatedAt     time.Time         `json:"created_at"`
}

// OrderDetailDTO is the single-order shape with items included.
type OrderDetailDTO struct {
	ID            uuid.UUID         `json:"id"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	CustomerEmail string            `json:"customer_email"`
	Status        enums.OrderStatus `json:"status"`
	TotalCents    int               `json:"total_cents"`
	Currency      enums.Currency    `json:"currency"`
	Meta          types.JSONMap     `json:"meta"`
	Items         []OrderItemDTO    `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateOrderResponse is the checkout acknowledgement. Only the identifier is
// returned; confirmation emails carry the rest.
type CreateOrderResponse struct {
	ID uuid.UUID `json:"id"`
}

func newOrderItemDTO(item *models.OrderItem) OrderItemDTO {
	attributes := item.Attributes
	if attributes == nil {
		attributes = types.JSONMap{}
	}
	return OrderItemDTO{
		ID:             item.ID,
		ProductID:      item.ProductID,
		Title:          item.Title,
		SKU:            item.SKU,
		Quantity:       item.Quantity,
		UnitPriceCents: item.UnitPriceCents,
		Currency:       item.Currency,
		Attributes:     attributes,
	}
}

// NewOrderDetailDTO maps an order row with preloaded items.
func NewOrderDetailDTO(order *models.Order, customerEmail string) OrderDetailDTO {
	meta := order.Meta
	if meta == nil {
		meta = types.JSONMap{}
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, newOrderItemDTO(&order.Items[i]))
	}
	return OrderDetailDTO{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		CustomerEmail: customerEmail,
		Status:        order.Status,
		TotalCents:    order.TotalCents,
		Currency:      order.Currency,
		Meta:          meta,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
