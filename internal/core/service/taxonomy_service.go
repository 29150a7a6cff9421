package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// TaxonomyService manages the client status and action status catalogs.
// Names (client statuses) and keys (action statuses) are unique per catalog.
type TaxonomyService struct {
	statuses ports.ClientStatusTypeRepository
	actions  ports.ActionStatusTypeRepository
	logger   zerolog.Logger
}

func NewTaxonomyService(statuses ports.ClientStatusTypeRepository, actions ports.ActionStatusTypeRepository, logger zerolog.Logger) *TaxonomyService {
	return &TaxonomyService{statuses: statuses, actions: actions, logger: logger}
}

// --- Client status types ---

func (s *TaxonomyService) ListClientStatusTypes(ctx context.Context) ([]domain.ClientStatusType, error) {
	return s.statuses.List(ctx)
}

func (s *TaxonomyService) GetClientStatusType(ctx context.Context, id string) (*domain.ClientStatusType, error) {
	return s.statuses.FindByID(ctx, id)
}

func (s *TaxonomyService) CreateClientStatusType(ctx context.Context, in ports.ClientStatusTypeInput) (*domain.ClientStatusType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := s.ensureStatusNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	t := &domain.ClientStatusType{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     colorOrDefault(in.Color),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.statuses.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info().Str("status_type_id", t.ID).Str("name", t.Name).Msg("client status type created")
	return t, nil
}

// UpdateClientStatusType renames or recolors a type. Clients keep their
// client_status string; a rename leaves them pointing at the old name.
func (s *TaxonomyService) UpdateClientStatusType(ctx context.Context, id string, in ports.ClientStatusTypeInput) (*domain.ClientStatusType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	existing, err := s.statuses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureStatusNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Color = colorOrDefault(in.Color)
	if err := s.statuses.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteClientStatusType removes a type without touching clients using it.
func (s *TaxonomyService) DeleteClientStatusType(ctx context.Context, id string) error {
	if err := s.statuses.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("status_type_id", id).Msg("client status type deleted")
	return nil
}

func (s *TaxonomyService) ensureStatusNameFree(ctx context.Context, name, selfID string) error {
	all, err := s.statuses.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range all {
		if t.Name == name && t.ID != selfID {
			return domain.ErrStatusTypeExists
		}
	}
	return nil
}

// --- Action status types ---

func (s *TaxonomyService) ListActionStatusTypes(ctx context.Context) ([]domain.ActionStatusType, error) {
	return s.actions.List(ctx)
}

func (s *TaxonomyService) GetActionStatusType(ctx context.Context, id string) (*domain.ActionStatusType, error) {
	return s.actions.FindByID(ctx, id)
}

func (s *TaxonomyService) CreateActionStatusType(ctx context.Context, in ports.ActionStatusTypeInput) (*domain.ActionStatusType, error) {
	if err := validateActionInput(in); err != nil {
		return nil, err
	}
	if err := s.ensureKeyFree(ctx, in.Key, ""); err != nil {
		return nil, err
	}

	t := &domain.ActionStatusType{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Key:       in.Key,
		Color:     colorOrDefault(in.Color),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.actions.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info().Str("status_type_id", t.ID).Str("key", t.Key).Msg("action status type created")
	return t, nil
}

// UpdateActionStatusType may change the key; client bitmap entries under the
// old key become legacy entries.
func (s *TaxonomyService) UpdateActionStatusType(ctx context.Context, id string, in ports.ActionStatusTypeInput) (*domain.ActionStatusType, error) {
	if err := validateActionInput(in); err != nil {
		return nil, err
	}
	existing, err := s.actions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureKeyFree(ctx, in.Key, id); err != nil {
		return nil, err
	}
	if existing.Key != in.Key {
		s.logger.Warn().Str("old_key", existing.Key).Str("new_key", in.Key).Msg("action status key renamed, existing flags become legacy")
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Key = in.Key
	existing.Color = colorOrDefault(in.Color)
	if err := s.actions.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *TaxonomyService) DeleteActionStatusType(ctx context.Context, id string) error {
	if err := s.actions.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("status_type_id", id).Msg("action status type deleted")
	return nil
}

// SeedDefaults inserts the default action catalog when it is empty and
// returns the number of types created.
func (s *TaxonomyService) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := s.actions.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	n := 0
	for _, t := range domain.DefaultActionStatusTypes() {
		if _, err := s.CreateActionStatusType(ctx, ports.ActionStatusTypeInput{Name: t.Name, Key: t.Key, Color: t.Color}); err != nil {
			return n, fmt.Errorf("seed %s: %w", t.Key, err)
		}
		n++
	}
	return n, nil
}

func (s *TaxonomyService) ensureKeyFree(ctx context.Context, key, selfID string) error {
	all, err := s.actions.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range all {
		if t.Key == key && t.ID != selfID {
			return domain.ErrStatusTypeExists
		}
	}
	return nil
}

func validateActionInput(in ports.ActionStatusTypeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if domain.ReservedKey(in.Key) {
		return fmt.Errorf("%w: %q is reserved", domain.ErrInvalidKey, in.Key)
	}
	if !domain.ValidKey(in.Key) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKey, in.Key)
	}
	return nil
}

func colorOrDefault(c string) string {
	if c == "" {
		return domain.DefaultTypeColor
	}
	return c
}
