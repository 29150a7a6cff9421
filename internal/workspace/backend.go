package workspace

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
	"github.com/crmdesk/crm-system/internal/remote"
)

// Backend is the authenticated API surface the workspace drives.
type Backend interface {
	ListClients(ctx context.Context, statusFilter string) ([]domain.Client, error)
	CreateClient(ctx context.Context, in ports.ClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, patch ports.ClientPatch) (*domain.Client, error)
	UpdateComment(ctx context.Context, id, comment string) error
	UpdateActionStatus(ctx context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	Statistics(ctx context.Context) (analytics.Statistics, error)
	Summary(ctx context.Context) (analytics.Summary, error)

	ListClientStatusTypes(ctx context.Context) ([]domain.ClientStatusType, error)
	CreateClientStatusType(ctx context.Context, in ports.ClientStatusTypeInput) (*domain.ClientStatusType, error)
	UpdateClientStatusType(ctx context.Context, id string, in ports.ClientStatusTypeInput) (*domain.ClientStatusType, error)
	DeleteClientStatusType(ctx context.Context, id string) error

	ListActionStatusTypes(ctx context.Context) ([]domain.ActionStatusType, error)
	CreateActionStatusType(ctx context.Context, in ports.ActionStatusTypeInput) (*domain.ActionStatusType, error)
	UpdateActionStatusType(ctx context.Context, id string, in ports.ActionStatusTypeInput) (*domain.ActionStatusType, error)
	DeleteActionStatusType(ctx context.Context, id string) error

	ListReports(ctx context.Context) ([]domain.DailyReport, error)
	CreateReport(ctx context.Context, in ports.ReportInput) (*domain.DailyReport, error)
	UpdateReport(ctx context.Context, id string, patch ports.ReportPatch) (*domain.DailyReport, error)
	DeleteReport(ctx context.Context, id string) error
}

// Dialer returns a Backend acting on behalf of token.
type Dialer func(token string) Backend

// RemoteDialer binds tokens to copies of c.
func RemoteDialer(c *remote.Client) Dialer {
	return func(token string) Backend { return c.WithToken(token) }
}

// Gate hands out the token of an authenticated session. Expire is told
// about every failed request so a token the server rejects is dropped.
type Gate interface {
	Require() (string, error)
	Expire(cause error)
}
