package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/streetside/storefront-backend/pkg/db/models"
)

// Repository loads admin users for credential verification. The application
// never writes these rows; provisioning happens through seed tooling.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail performs a case-sensitive exact-match lookup.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
