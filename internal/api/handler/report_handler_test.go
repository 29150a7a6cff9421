package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

type stubReportService struct {
	err error
}

func (s *stubReportService) List(context.Context) ([]domain.DailyReport, error) { return nil, s.err }

func (s *stubReportService) Get(_ context.Context, id string) (*domain.DailyReport, error) {
	return &domain.DailyReport{ID: id}, s.err
}

func (s *stubReportService) Create(_ context.Context, in ports.ReportInput) (*domain.DailyReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.DailyReport{ID: "r1", Date: in.Date}, nil
}

func (s *stubReportService) Update(_ context.Context, id string, patch ports.ReportPatch) (*domain.DailyReport, error) {
	return &domain.DailyReport{ID: id}, s.err
}

func (s *stubReportService) Delete(context.Context, string) error { return s.err }

func TestReportHandler_Create(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	rec, err := call(t, h.Create, request{method: http.MethodPost, target: "/api/daily-reports",
		body: `{"date":"2026-10-01","call_attempts":10}`, claims: authed})
	if err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %v", rec.Code, err)
	}

	_, err = call(t, h.Create, request{method: http.MethodPost, target: "/api/daily-reports",
		body: `{"date":"yesterday"}`, claims: authed})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReportHandler_DuplicateDate(t *testing.T) {
	h := NewReportHandler(&stubReportService{err: domain.ErrReportExists})

	_, err := call(t, h.Create, request{method: http.MethodPost, target: "/api/daily-reports",
		body: `{"date":"2026-10-01"}`, claims: authed})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
