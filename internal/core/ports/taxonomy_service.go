package ports

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// ClientStatusTypeInput is the create/update payload for a client status type.
type ClientStatusTypeInput struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// ActionStatusTypeInput is the create/update payload for an action status type.
type ActionStatusTypeInput struct {
	Name  string `json:"name" validate:"required"`
	Key   string `json:"key" validate:"required,statuskey"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// TaxonomyService manages the client and action status catalogs.
type TaxonomyService interface {
	ListClientStatusTypes(ctx context.Context) ([]domain.ClientStatusType, error)
	GetClientStatusType(ctx context.Context, id string) (*domain.ClientStatusType, error)
	CreateClientStatusType(ctx context.Context, in ClientStatusTypeInput) (*domain.ClientStatusType, error)
	UpdateClientStatusType(ctx context.Context, id string, in ClientStatusTypeInput) (*domain.ClientStatusType, error)
	DeleteClientStatusType(ctx context.Context, id string) error

	ListActionStatusTypes(ctx context.Context) ([]domain.ActionStatusType, error)
	GetActionStatusType(ctx context.Context, id string) (*domain.ActionStatusType, error)
	CreateActionStatusType(ctx context.Context, in ActionStatusTypeInput) (*domain.ActionStatusType, error)
	UpdateActionStatusType(ctx context.Context, id string, in ActionStatusTypeInput) (*domain.ActionStatusType, error)
	DeleteActionStatusType(ctx context.Context, id string) error

	// SeedDefaults fills an empty action status catalog with the defaults.
	SeedDefaults(ctx context.Context) (int, error)
}
