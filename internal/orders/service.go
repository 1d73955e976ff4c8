package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streetside/storefront-backend/pkg/db"
	"github.com/streetside/storefront-backend/pkg/db/models"
	"github.com/streetside/storefront-backend/pkg/enums"
	pkgerrors "github.com/streetside/storefront-backend/pkg/errors"
	"github.com/streetside/storefront-backend/pkg/types"
)

// Service defines the order operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResponse, error)
	List(ctx context.Context, limit int) ([]OrderSummaryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDetailDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateOrderItemInput is one submitted cart line. Quantity and unit price
// are optional on the wire; nil falls back to 1 and 0 respectively.
type CreateOrderItemInput struct {
	ProductID      *uuid.UUID
	Title          string
	SKU            *string
	Quantity       *int
	UnitPriceCents *int
	Attributes     types.JSONMap
}

// CreateOrderInput is the validated checkout submission.
type CreateOrderInput struct {
	CustomerEmail string
	Currency      enums.Currency
	Meta          types.JSONMap
	Items         []CreateOrderItemInput
}

// UpdateOrderInput carries partial back-office edits; nil means keep the
// previous value.
type UpdateOrderInput struct {
	Status *enums.OrderStatus
	Meta   types.JSONMap
}

type service struct {
	client *db.Client
	repo   *Repository
}

// NewService constructs an order service. The db client is required because
// checkout writes span three tables in one transaction.
func NewService(client *db.Client, repo *Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &service{client: client, repo: repo}, nil
}

// Create runs the checkout transaction: resolve the customer by email, write
// the order header with a server-computed total, then write the lines. Any
// failure rolls back all three writes.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.CustomerEmail))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_email is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	currency := input.Currency
	if currency == "" {
		currency = enums.CurrencyUSD
	}
	if !currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported currency")
	}

	orderID := uuid.New()
	items := make([]models.OrderItem, 0, len(input.Items))
	total := 0
	for i, line := range input.Items {
		title := strings.TrimSpace(line.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d].title is required", i))
		}

		quantity := 1
		if line.Quantity != nil {
			if *line.Quantity < 1 {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d].quantity must be positive", i))
			}
			quantity = *line.Quantity
		}
		unitPrice := 0
		if line.UnitPriceCents != nil {
			if *line.UnitPriceCents < 0 {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d].unit_price_cents cannot be negative", i))
			}
			unitPrice = *line.UnitPriceCents
		}
		total += unitPrice * quantity

		attributes := line.Attributes
		if attributes == nil {
			attributes = types.JSONMap{}
		}
		items = append(items, models.OrderItem{
			ID:             uuid.New(),
			OrderID:        orderID,
			ProductID:      line.ProductID,
			Title:          title,
			SKU:            line.SKU,
			Quantity:       quantity,
			UnitPriceCents: unitPrice,
			Currency:       currency,
			Attributes:     attributes,
		})
	}

	meta := input.Meta
	if meta == nil {
		meta = types.JSONMap{}
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		customer, err := s.repo.FindOrCreateCustomerTx(tx, email)
		if err != nil {
			return fmt.Errorf("resolving customer: %w", err)
		}

		order := &models.Order{
			ID:         orderID,
			CustomerID: customer.ID,
			Status:     enums.OrderStatusPending,
			TotalCents: total,
			Currency:   currency,
			Meta:       meta,
		}
		if err := s.repo.CreateOrderTx(tx, order); err != nil {
			return fmt.Errorf("creating order: %w", err)
		}

		if err := s.repo.CreateItemsTx(tx, items); err != nil {
			return fmt.Errorf("creating order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}

	return &CreateOrderResponse{ID: orderID}, nil
}

func (s *service) List(ctx context.Context, limit int) ([]OrderSummaryDTO, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	summaries := make([]OrderSummaryDTO, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, OrderSummaryDTO{
			ID:            row.ID,
			CustomerEmail: row.CustomerEmail,
			Status:        row.Status,
			TotalCents:    row.TotalCents,
			Currency:      row.Currency,
			CreatedAt:     row.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDetailDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}

	customer, err := s.repo.FindCustomerByID(ctx, order.CustomerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order customer")
	}

	dto := NewOrderDetailDTO(order, customer.Email)
	return &dto, nil
}

// Update applies coalescing edits: a nil status keeps the stored status and a
// nil meta keeps the stored meta.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}

	if input.Status != nil {
		if !input.Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
		}
		order.Status = *input.Status
	}
	if input.Meta != nil {
		order.Meta = input.Meta
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
	}
	return nil
}
