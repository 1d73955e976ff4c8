package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/streetside/storefront-backend/api/responses"
	"github.com/streetside/storefront-backend/api/validators"
	ordersvc "github.com/streetside/storefront-backend/internal/orders"
	"github.com/streetside/storefront-backend/pkg/enums"
	pkgerrors "github.com/streetside/storefront-backend/pkg/errors"
	"github.com/streetside/storefront-backend/pkg/logger"
	"github.com/streetside/storefront-backend/pkg/types"
)

type createOrderItemRequest struct {
	ProductID      *string       `json:"product_id,omitempty"`
	Title          string        `json:"title" validate:"required,max=300"`
	SKU            *string       `json:"sku,omitempty"`
	Quantity       *int          `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	UnitPriceCents *int          `json:"unit_price_cents,omitempty" validate:"omitempty,gte=0"`
	Attributes     types.JSONMap `json:"attributes,omitempty"`
}

type createOrderRequest struct {
	CustomerEmail string                   `json:"customer_email" validate:"required,email"`
	Currency      string                   `json:"currency,omitempty"`
	Meta          types.JSONMap            `json:"meta,omitempty"`
	Items         []createOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateOrderRequest struct {
	Status *string       `json:"status,omitempty"`
	Meta   types.JSONMap `json:"meta,omitempty"`
}

func (req *createOrderRequest) toInput() (ordersvc.CreateOrderInput, error) {
	input := ordersvc.CreateOrderInput{
		CustomerEmail: req.CustomerEmail,
		Meta:          req.Meta,
	}
	if req.Currency != "" {
		currency, err := enums.ParseCurrency(req.Currency)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
		}
		input.Currency = currency
	}
	for _, line := range req.Items {
		item := ordersvc.CreateOrderItemInput{
			Title:          line.Title,
			SKU:            line.SKU,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			Attributes:     line.Attributes,
		}
		if line.ProductID != nil && *line.ProductID != "" {
			id, err := uuid.Parse(*line.ProductID)
			if err != nil {
				return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_id")
			}
			item.ProductID = &id
		}
		input.Items = append(input.Items, item)
	}
	return input, nil
}

// CreateOrder handles the public checkout submission. The response carries
// only the new order's identifier.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithOrderID(r.Context(), result.ID.String()), "order.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ListOrders returns recent orders for the back office.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		limit, err := validators.QueryInt(r, "limit", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetOrder returns one order with its items.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateOrder patches status and meta. Omitted fields keep their stored
// values.
func UpdateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.UpdateOrderInput{Meta: body.Meta}
		if body.Status != nil {
			status, err := enums.ParseOrderStatus(*body.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		if err := svc.Update(r.Context(), id, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}

// DeleteOrder removes an order and its lines; re-deleting is a no-op.
func DeleteOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}
