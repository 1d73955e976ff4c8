package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streetside/storefront-backend/pkg/db/models"
	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/pagination"
)

// OrderListRow is the joined projection backing the back-office order list.
type OrderListRow struct {
	ID            uuid.UUID         `gorm:"column:id"`
	CustomerEmail string            `gorm:"column:customer_email"`
	Status        enums.OrderStatus `gorm:"column:status"`
	TotalCents    int               `gorm:"column:total_cents"`
	Currency      enums.Currency    `gorm:"column:currency"`
	CreatedAt     time.Time         `gorm:"column:created_at"`
}

// Repository performs order persistence. Write paths that must be atomic
// accept an explicit transaction handle from the service.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns recent orders joined with the customer email, newest first.
// The back office shows a full page of recent orders when no limit is given.
func (r *Repository) List(ctx context.Context, limit int) ([]OrderListRow, error) {
	var rows []OrderListRow
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.id, customers.email AS customer_email, orders.status, orders.total_cents, orders.currency, orders.created_at").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Order("orders.created_at DESC").
		Limit(pagination.NormalizeLimitDefault(limit, pagination.MaxLimit)).
		Scan(&rows).
		Error
	return rows, err
}

// FindByID loads an order with its items preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindCustomerByID resolves the customer referenced by an order header.
func (r *Repository) FindCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindOrCreateCustomerTx resolves the customer for the email inside tx,
// inserting a new row when the email is unseen.
func (r *Repository) FindOrCreateCustomerTx(tx *gorm.DB, email string) (*models.Customer, error) {
	var customer models.Customer
	err := tx.First(&customer, "email = ?", email).Error
	if err == nil {
		return &customer, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	customer = models.Customer{ID: uuid.New(), Email: email}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateOrderTx inserts the order header inside tx.
func (r *Repository) CreateOrderTx(tx *gorm.DB, order *models.Order) error {
	return tx.Omit("Items").Create(order).Error
}

// CreateItemsTx inserts the order lines inside tx.
func (r *Repository) CreateItemsTx(tx *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// Save persists every column of an already-loaded order header. Items are
// immutable and never rewritten.
func (r *Repository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}

// Delete removes an order by ID; items cascade at the database level.
// Deleting a missing row is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}
