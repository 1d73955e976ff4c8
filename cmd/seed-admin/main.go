package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/streetside/storefront-backend/pkg/config"
	"github.com/streetside/storefront-backend/pkg/db"
	"github.com/streetside/storefront-backend/pkg/db/models"
	"github.com/streetside/storefront-backend/pkg/enums"
	"github.com/streetside/storefront-backend/pkg/logger"
	"github.com/streetside/storefront-backend/pkg/security"
)

// seed-admin upserts a back-office user by email. Re-running with the same
// email rotates the password and role.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed-admin"})

	_ = godotenv.Load()

	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	role := flag.String("role", string(enums.AdminRoleAdmin), "admin role: admin|editor")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both -email and -password are required")
		os.Exit(1)
	}

	parsedRole, err := enums.ParseAdminRole(*role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -role: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(*password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	normalized := strings.TrimSpace(strings.ToLower(*email))
	conn := dbClient.DB()

	var user models.AdminUser
	err = conn.WithContext(ctx).First(&user, "email = ?", normalized).Error
	switch {
	case err == nil:
		user.PasswordHash = hash
		user.Role = parsedRole
		if err := conn.WithContext(ctx).Save(&user).Error; err != nil {
			logg.Error(ctx, "failed to update admin user", err)
			os.Exit(1)
		}
		fmt.Println("updated admin user:", normalized)

	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.AdminUser{
			ID:           uuid.New(),
			Email:        normalized,
			PasswordHash: hash,
			Role:         parsedRole,
		}
		if err := conn.WithContext(ctx).Create(&user).Error; err != nil {
			logg.Error(ctx, "failed to create admin user", err)
			os.Exit(1)
		}
		fmt.Println("created admin user:", normalized)

	default:
		logg.Error(ctx, "failed to look up admin user", err)
		os.Exit(1)
	}
}
