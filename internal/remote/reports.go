package remote

import (
	"context"
	"net/http"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

const reportsPath = "/daily-reports"

func (c *Client) ListReports(ctx context.Context) ([]domain.DailyReport, error) {
	var out []domain.DailyReport
	if err := c.do(ctx, http.MethodGet, reportsPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReport(ctx context.Context, in ports.ReportInput) (*domain.DailyReport, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out domain.DailyReport
	if err := c.do(ctx, http.MethodPost, reportsPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReport(ctx context.Context, id string, patch ports.ReportPatch) (*domain.DailyReport, error) {
	if patch.IsEmpty() {
		return nil, &Error{Kind: KindValidation, Message: "no fields to update"}
	}
	if err := c.check(patch); err != nil {
		return nil, err
	}
	var out domain.DailyReport
	if err := c.do(ctx, http.MethodPut, reportsPath+"/"+escape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReport(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, reportsPath+"/"+escape(id), nil, nil, nil)
}
