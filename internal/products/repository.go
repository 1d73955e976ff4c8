package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streetside/storefront-backend/pkg/db/models"
	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/pagination"
)

// ListFilter narrows and orders a catalog listing.
type ListFilter struct {
	// CategorySlug filters by the joined category's slug when non-empty.
	CategorySlug string
	// ActiveOnly hides is_active=false rows. Public listings always set it.
	ActiveOnly bool
	Sort       enums.ProductSort
	Limit      int
	// Offset skips rows so callers can page past the listing cap.
	Offset int
}

// Repository performs product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns products matching the filter.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}

	switch filter.Sort {
	case enums.ProductSortAlpha:
		query = query.Order("products.title ASC")
	case enums.ProductSortPriceAsc:
		query = query.Order("products.price_cents ASC")
	case enums.ProductSortPriceDesc:
		query = query.Order("products.price_cents DESC")
	default:
		query = query.Order("products.created_at DESC")
	}

	query = query.Limit(pagination.NormalizeLimit(filter.Limit))
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []models.Product
	err := query.Find(&rows).Error
	return rows, err
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists every column of an already-loaded product row. Callers apply
// partial updates by mutating only the requested fields first, so absent
// fields keep their stored values. Full-row saves keep the JSON serializer in
// the write path for images and attributes, which a column map would bypass.
func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes a product by ID. Deleting a missing row is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}
