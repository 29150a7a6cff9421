package ports

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

// ReportRepository persists daily reports.
type ReportRepository interface {
	// List returns reports ordered by date, newest first.
	List(ctx context.Context) ([]domain.DailyReport, error)
	FindByID(ctx context.Context, id string) (*domain.DailyReport, error)
	FindByDate(ctx context.Context, date string) (*domain.DailyReport, error)
	Create(ctx context.Context, r *domain.DailyReport) error
	Update(ctx context.Context, id string, patch ReportPatch) (*domain.DailyReport, error)
	Delete(ctx context.Context, id string) error
}
