package ports

import (
	"context"
	"time"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// TokenRevoker records logged-out tokens until they would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
