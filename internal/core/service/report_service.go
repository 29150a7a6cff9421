package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

const dateLayout = "2006-01-02"

// ReportService manages daily activity reports, one per calendar date.
type ReportService struct {
	repo   ports.ReportRepository
	logger zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

func (s *ReportService) List(ctx context.Context) ([]domain.DailyReport, error) {
	return s.repo.List(ctx)
}

func (s *ReportService) Get(ctx context.Context, id string) (*domain.DailyReport, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ReportService) Create(ctx context.Context, in ports.ReportInput) (*domain.DailyReport, error) {
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if err := s.ensureDateFree(ctx, in.Date, ""); err != nil {
		return nil, err
	}

	r := &domain.DailyReport{
		ID:                 uuid.NewString(),
		Date:               in.Date,
		OrdersInAssembly:   in.OrdersInAssembly,
		SetsCount:          in.SetsCount,
		OrdersAmount:       in.OrdersAmount,
		MoneyReceivedToday: in.MoneyReceivedToday,
		CallAttempts:       in.CallAttempts,
		SuccessfulCalls:    in.SuccessfulCalls,
		SelfMessagedClient: in.SelfMessagedClient,
		Responses:          in.Responses,
		ChatsToday:         in.ChatsToday,
		ClientsNoOrder:     in.ClientsNoOrder,
		Comment:            in.Comment,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info().Str("report_id", r.ID).Str("date", r.Date).Msg("daily report created")
	return r, nil
}

func (s *ReportService) Update(ctx context.Context, id string, patch ports.ReportPatch) (*domain.DailyReport, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrNothingToApply
	}
	if patch.Date != nil {
		if _, err := time.Parse(dateLayout, *patch.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
		}
		if err := s.ensureDateFree(ctx, *patch.Date, id); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *ReportService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ReportService) ensureDateFree(ctx context.Context, date, selfID string) error {
	existing, err := s.repo.FindByDate(ctx, date)
	if errors.Is(err, domain.ErrReportNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return domain.ErrReportExists
	}
	return nil
}
