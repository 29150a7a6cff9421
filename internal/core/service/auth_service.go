package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo      ports.AuthRepository
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, revoker: revoker, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("%w: email, password and full name are required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issue(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// do not reveal which half of the credentials was wrong
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(user)
}

// Me returns the account behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims ports.TokenClaims) error {
	if claims.TokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// ParseToken validates signature, expiry and revocation of an access token.
func (s *AuthService) ParseToken(ctx context.Context, token string) (*ports.TokenClaims, error) {
	claims := accessClaims{}
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	out := &ports.TokenClaims{UserID: claims.Subject, Email: claims.Email, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	now := time.Now()
	claims := accessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: signed, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
