package ports

import (
	"context"
	"time"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// AuthResult is returned on successful login or registration.
type AuthResult struct {
	Token string
	User  *domain.User
}

// TokenClaims are the verified claims of an access token.
type TokenClaims struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	Logout(ctx context.Context, claims TokenClaims) error
	ParseToken(ctx context.Context, token string) (*TokenClaims, error)
}
