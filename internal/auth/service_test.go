package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgAuth "github.com/streetside/storefront-backend/pkg/auth"
	"github.com/streetside/storefront-backend/pkg/config"
	"github.com/streetside/storefront-backend/pkg/db/models"
	"github.com/streetside/storefront-backend/pkg/enums"
	pkgerrors "github.com/streetside/storefront-backend/pkg/errors"
	"github.com/streetside/storefront-backend/pkg/security"
)

type stubUserRepo struct {
	users map[string]*models.AdminUser
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if user, ok := s.users[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testService(t *testing.T, users map[string]*models.AdminUser) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo: &stubUserRepo{users: users},
		JWTConfig: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "storefront",
			ExpirationMinutes: 60,
		},
		Now: func() time.Time { return time.Now() },
	})
	require.NoError(t, err)
	return svc
}

func seededUser(t *testing.T, email, password string) *models.AdminUser {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return &models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         enums.AdminRoleAdmin,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := seededUser(t, "admin@streetside.test", "correct-horse")
	svc := testService(t, map[string]*models.AdminUser{user.Email: user})

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@streetside.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, "admin@streetside.test", result.User.Email)
	assert.Equal(t, "admin", result.User.Role)

	claims, err := pkgAuth.ParseAccessToken(config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront",
		ExpirationMinutes: 60,
	}, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, enums.AdminRoleAdmin, claims.Role)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := testService(t, map[string]*models.AdminUser{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@streetside.test",
		Password: "whatever",
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, "Invalid credentials", typed.Message())
}

func TestLoginWrongPassword(t *testing.T) {
	user := seededUser(t, "admin@streetside.test", "correct-horse")
	svc := testService(t, map[string]*models.AdminUser{user.Email: user})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "admin@streetside.test",
		Password: "battery-staple",
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	// Wrong password and unknown email must be indistinguishable.
	assert.Equal(t, "Invalid credentials", typed.Message())
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(ServiceParams{
		UserRepo:  &stubUserRepo{},
		JWTConfig: config.JWTConfig{Issuer: "storefront"},
	})
	require.Error(t, err)
}
