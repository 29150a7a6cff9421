package ports

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// ClientStatusTypeRepository persists the client status catalog.
type ClientStatusTypeRepository interface {
	List(ctx context.Context) ([]domain.ClientStatusType, error)
	FindByID(ctx context.Context, id string) (*domain.ClientStatusType, error)
	Create(ctx context.Context, t *domain.ClientStatusType) error
	Update(ctx context.Context, t *domain.ClientStatusType) error
	Delete(ctx context.Context, id string) error
}

// ActionStatusTypeRepository persists the action status catalog.
type ActionStatusTypeRepository interface {
	List(ctx context.Context) ([]domain.ActionStatusType, error)
	FindByID(ctx context.Context, id string) (*domain.ActionStatusType, error)
	Create(ctx context.Context, t *domain.ActionStatusType) error
	Update(ctx context.Context, t *domain.ActionStatusType) error
	Delete(ctx context.Context, id string) error
}
