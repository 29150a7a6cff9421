package service

import (
	"context"
	"sort"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	byID      map[string]domain.Client
	order     []string
	createErr error
	listErr   error
}

func newStubClientRepo(seed ...domain.Client) *stubClientRepo {
	r := &stubClientRepo{byID: make(map[string]domain.Client)}
	for _, c := range seed {
		r.byID[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	return r
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	clone.ActionStatus = c.ActionStatus.Clone()
	r.byID[c.ID] = clone
	r.order = append(r.order, c.ID)
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]domain.Client, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Client, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, patch ports.ClientPatch) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	updated := patch.Apply(c)
	r.byID[id] = updated
	return &updated, nil
}

func (r *stubClientRepo) SetComment(_ context.Context, id, comment string) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.Comment = comment
	r.byID[id] = c
	return nil
}

func (r *stubClientRepo) SetActionFlags(_ context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	c.ActionStatus = c.ActionStatus.Merge(flags)
	r.byID[id] = c
	return &c, nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.byID, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type stubActionRepo struct {
	byID map[string]domain.ActionStatusType
}

func newStubActionRepo(seed ...domain.ActionStatusType) *stubActionRepo {
	r := &stubActionRepo{byID: make(map[string]domain.ActionStatusType)}
	for _, t := range seed {
		r.byID[t.ID] = t
	}
	return r
}

func (r *stubActionRepo) List(_ context.Context) ([]domain.ActionStatusType, error) {
	out := make([]domain.ActionStatusType, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *stubActionRepo) FindByID(_ context.Context, id string) (*domain.ActionStatusType, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrStatusTypeNotFound
	}
	return &t, nil
}

func (r *stubActionRepo) Create(_ context.Context, t *domain.ActionStatusType) error {
	r.byID[t.ID] = *t
	return nil
}

func (r *stubActionRepo) Update(_ context.Context, t *domain.ActionStatusType) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrStatusTypeNotFound
	}
	r.byID[t.ID] = *t
	return nil
}

func (r *stubActionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrStatusTypeNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubStatusRepo struct {
	byID map[string]domain.ClientStatusType
}

func newStubStatusRepo(seed ...domain.ClientStatusType) *stubStatusRepo {
	r := &stubStatusRepo{byID: make(map[string]domain.ClientStatusType)}
	for _, t := range seed {
		r.byID[t.ID] = t
	}
	return r
}

func (r *stubStatusRepo) List(_ context.Context) ([]domain.ClientStatusType, error) {
	out := make([]domain.ClientStatusType, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubStatusRepo) FindByID(_ context.Context, id string) (*domain.ClientStatusType, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrStatusTypeNotFound
	}
	return &t, nil
}

func (r *stubStatusRepo) Create(_ context.Context, t *domain.ClientStatusType) error {
	r.byID[t.ID] = *t
	return nil
}

func (r *stubStatusRepo) Update(_ context.Context, t *domain.ClientStatusType) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrStatusTypeNotFound
	}
	r.byID[t.ID] = *t
	return nil
}

func (r *stubStatusRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrStatusTypeNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubReportRepo struct {
	byID map[string]domain.DailyReport
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{byID: make(map[string]domain.DailyReport)}
}

func (r *stubReportRepo) List(_ context.Context) ([]domain.DailyReport, error) {
	out := make([]domain.DailyReport, 0, len(r.byID))
	for _, rep := range r.byID {
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id string) (*domain.DailyReport, error) {
	rep, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return &rep, nil
}

func (r *stubReportRepo) FindByDate(_ context.Context, date string) (*domain.DailyReport, error) {
	for _, rep := range r.byID {
		if rep.Date == date {
			return &rep, nil
		}
	}
	return nil, domain.ErrReportNotFound
}

func (r *stubReportRepo) Create(_ context.Context, rep *domain.DailyReport) error {
	r.byID[rep.ID] = *rep
	return nil
}

func (r *stubReportRepo) Update(_ context.Context, id string, patch ports.ReportPatch) (*domain.DailyReport, error) {
	rep, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	if patch.Date != nil {
		rep.Date = *patch.Date
	}
	if patch.CallAttempts != nil {
		rep.CallAttempts = *patch.CallAttempts
	}
	if patch.Comment != nil {
		rep.Comment = *patch.Comment
	}
	r.byID[id] = rep
	return &rep, nil
}

func (r *stubReportRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrReportNotFound
	}
	delete(r.byID, id)
	return nil
}
