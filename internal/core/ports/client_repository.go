package ports

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// ClientRepository defines persistence operations for client records.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// List returns every client in insertion order.
	List(ctx context.Context) ([]domain.Client, error)
	// Update applies the non-nil fields of patch and returns the stored record.
	Update(ctx context.Context, id string, patch ClientPatch) (*domain.Client, error)
	// SetComment replaces only the comment field.
	SetComment(ctx context.Context, id, comment string) error
	// SetActionFlags sets only the given bitmap entries.
	SetActionFlags(ctx context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
