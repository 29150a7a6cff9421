package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

type ClientService struct {
	repo    ports.ClientRepository
	actions ports.ActionStatusTypeRepository
	logger  zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, actions ports.ActionStatusTypeRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, actions: actions, logger: logger}
}

// List returns the clients matching statusFilter (see analytics.ResolveCriterion).
func (s *ClientService) List(ctx context.Context, statusFilter string) ([]domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	if strings.TrimSpace(statusFilter) == "" {
		return clients, nil
	}

	types, err := s.actions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list action status types: %w", err)
	}
	return analytics.FilterByStatus(clients, analytics.ResolveCriterion(statusFilter, types, clients)), nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new client. The bitmap gets an entry for every registered
// action key so the stored record always carries the full flag set.
func (s *ClientService) Create(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" || strings.TrimSpace(in.ClientStatus) == "" {
		return nil, fmt.Errorf("%w: first_name, last_name and client_status are required", domain.ErrValidation)
	}
	if err := checkKeys(in.ActionStatus); err != nil {
		return nil, err
	}

	types, err := s.actions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list action status types: %w", err)
	}

	client := &domain.Client{
		ID:                   uuid.NewString(),
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		Phone:                in.Phone,
		ClientStatus:         in.ClientStatus,
		CRMLink:              in.CRMLink,
		ExpectedOrderSets:    in.ExpectedOrderSets,
		ExpectedOrderAmount:  in.ExpectedOrderAmount,
		SetsOrderedThisMonth: in.SetsOrderedThisMonth,
		AmountThisMonth:      in.AmountThisMonth,
		Debt:                 in.Debt,
		LastContactDate:      in.LastContactDate,
		TaskDescription:      in.TaskDescription,
		Comment:              in.Comment,
		ActionStatus:         in.ActionStatus.Normalize(types),
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, err
	}

	s.logger.Info().Str("client_id", client.ID).Str("client_status", client.ClientStatus).Msg("client created")
	return client, nil
}

// Update applies a partial update. An empty patch is rejected.
func (s *ClientService) Update(ctx context.Context, id string, patch ports.ClientPatch) (*domain.Client, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrNothingToApply
	}
	if err := checkKeys(patch.ActionStatus); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("client_id", id).Msg("client updated")
	return updated, nil
}

// UpdateComment changes only the comment of a client.
func (s *ClientService) UpdateComment(ctx context.Context, id, comment string) error {
	if err := s.repo.SetComment(ctx, id, comment); err != nil {
		return err
	}
	s.logger.Debug().Str("client_id", id).Msg("client comment updated")
	return nil
}

// UpdateActionStatus sets only the given flags; other entries are untouched.
func (s *ClientService) UpdateActionStatus(ctx context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error) {
	if len(flags) == 0 {
		return nil, domain.ErrNothingToApply
	}
	if err := checkKeys(flags); err != nil {
		return nil, err
	}

	updated, err := s.repo.SetActionFlags(ctx, id, flags)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("client_id", id).Strs("keys", flags.Keys()).Msg("client action status updated")
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("client_id", id).Msg("client deleted")
	return nil
}

// Statistics counts the whole collection against the live action catalog.
func (s *ClientService) Statistics(ctx context.Context) (analytics.Statistics, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return analytics.Statistics{}, fmt.Errorf("list clients: %w", err)
	}
	types, err := s.actions.List(ctx)
	if err != nil {
		return analytics.Statistics{}, fmt.Errorf("list action status types: %w", err)
	}
	return analytics.ComputeStatistics(clients, types), nil
}

// Summary sums the whole collection regardless of any filter.
func (s *ClientService) Summary(ctx context.Context) (analytics.Summary, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return analytics.Summary{}, fmt.Errorf("list clients: %w", err)
	}
	return analytics.ComputeSummary(clients), nil
}

func checkKeys(b domain.ActionStatusBitmap) error {
	for k := range b {
		if !domain.ValidKey(k) {
			return fmt.Errorf("%w: %q", domain.ErrInvalidKey, k)
		}
	}
	return nil
}
