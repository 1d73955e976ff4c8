package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is created implicitly the first time an order references a new
// email (upsert-by-email during checkout).
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Customer) TableName() string { return "customers" }
