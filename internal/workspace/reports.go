package workspace

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// Daily reports are not cached; each call goes to the server.

func (w *Workspace) Reports(ctx context.Context) ([]domain.DailyReport, error) {
	b, err := w.backend()
	if err != nil {
		return nil, err
	}
	reports, err := b.ListReports(ctx)
	return reports, w.settle(err)
}

func (w *Workspace) CreateReport(ctx context.Context, in ports.ReportInput) (*domain.DailyReport, error) {
	b, err := w.backend()
	if err != nil {
		return nil, err
	}
	report, err := b.CreateReport(ctx, in)
	return report, w.settle(err)
}

func (w *Workspace) UpdateReport(ctx context.Context, id string, patch ports.ReportPatch) (*domain.DailyReport, error) {
	b, err := w.backend()
	if err != nil {
		return nil, err
	}
	report, err := b.UpdateReport(ctx, id, patch)
	return report, w.settle(err)
}

func (w *Workspace) DeleteReport(ctx context.Context, id string) error {
	b, err := w.backend()
	if err != nil {
		return err
	}
	return w.settle(b.DeleteReport(ctx, id))
}
