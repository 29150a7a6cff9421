package workspace

import (
	"context"
	"fmt"
	"sync"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
	"github.com/crmdesk/crm-system/internal/session"
)

// fakeBackend is an in-memory server. failNext makes the next mutating call
// return the given error.
type fakeBackend struct {
	mu          sync.Mutex
	seq         int
	clients     []domain.Client
	statusTypes []domain.ClientStatusType
	actionTypes []domain.ActionStatusType
	reports     []domain.DailyReport
	failNext    error
	calls       map[string]int
	tokens      []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}}
}

func (f *fakeBackend) dialer() Dialer {
	return func(token string) Backend {
		f.mu.Lock()
		f.tokens = append(f.tokens, token)
		f.mu.Unlock()
		return f
	}
}

func (f *fakeBackend) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeBackend) enter(op string) error {
	f.mu.Lock()
	f.calls[op]++
	err := f.failNext
	f.failNext = nil
	f.mu.Unlock()
	return err
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) find(id string) int {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeBackend) ListClients(_ context.Context, _ string) ([]domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListClients"]++
	out := make([]domain.Client, len(f.clients))
	for i, c := range f.clients {
		c.ActionStatus = c.ActionStatus.Clone()
		out[i] = c
	}
	return out, nil
}

func (f *fakeBackend) CreateClient(_ context.Context, in ports.ClientInput) (*domain.Client, error) {
	if err := f.enter("CreateClient"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := domain.Client{
		ID: f.nextID("c"), FirstName: in.FirstName, LastName: in.LastName,
		ClientStatus: in.ClientStatus, Debt: in.Debt,
		ExpectedOrderAmount: in.ExpectedOrderAmount, AmountThisMonth: in.AmountThisMonth,
		ActionStatus: in.ActionStatus.Normalize(f.actionTypes),
	}
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *fakeBackend) UpdateClient(_ context.Context, id string, patch ports.ClientPatch) (*domain.Client, error) {
	if err := f.enter("UpdateClient"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return nil, domain.ErrClientNotFound
	}
	f.clients[i] = patch.Apply(f.clients[i])
	c := f.clients[i]
	return &c, nil
}

func (f *fakeBackend) UpdateComment(_ context.Context, id, comment string) error {
	if err := f.enter("UpdateComment"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return domain.ErrClientNotFound
	}
	f.clients[i].Comment = comment
	return nil
}

func (f *fakeBackend) UpdateActionStatus(_ context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error) {
	if err := f.enter("UpdateActionStatus"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return nil, domain.ErrClientNotFound
	}
	f.clients[i].ActionStatus = f.clients[i].ActionStatus.Merge(flags)
	c := f.clients[i]
	c.ActionStatus = c.ActionStatus.Clone()
	return &c, nil
}

func (f *fakeBackend) DeleteClient(_ context.Context, id string) error {
	if err := f.enter("DeleteClient"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return domain.ErrClientNotFound
	}
	f.clients = append(f.clients[:i], f.clients[i+1:]...)
	return nil
}

func (f *fakeBackend) Statistics(context.Context) (analytics.Statistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Statistics"]++
	return analytics.ComputeStatistics(f.clients, f.actionTypes), nil
}

func (f *fakeBackend) Summary(context.Context) (analytics.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Summary"]++
	return analytics.ComputeSummary(f.clients), nil
}

func (f *fakeBackend) ListClientStatusTypes(context.Context) ([]domain.ClientStatusType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListClientStatusTypes"]++
	return append([]domain.ClientStatusType(nil), f.statusTypes...), nil
}

func (f *fakeBackend) CreateClientStatusType(_ context.Context, in ports.ClientStatusTypeInput) (*domain.ClientStatusType, error) {
	if err := f.enter("CreateClientStatusType"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := domain.ClientStatusType{ID: f.nextID("s"), Name: in.Name, Color: in.Color}
	f.statusTypes = append(f.statusTypes, t)
	return &t, nil
}

func (f *fakeBackend) UpdateClientStatusType(_ context.Context, id string, in ports.ClientStatusTypeInput) (*domain.ClientStatusType, error) {
	if err := f.enter("UpdateClientStatusType"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.statusTypes {
		if f.statusTypes[i].ID == id {
			f.statusTypes[i].Name, f.statusTypes[i].Color = in.Name, in.Color
			t := f.statusTypes[i]
			return &t, nil
		}
	}
	return nil, domain.ErrStatusTypeNotFound
}

func (f *fakeBackend) DeleteClientStatusType(_ context.Context, id string) error {
	if err := f.enter("DeleteClientStatusType"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.statusTypes {
		if f.statusTypes[i].ID == id {
			f.statusTypes = append(f.statusTypes[:i], f.statusTypes[i+1:]...)
			return nil
		}
	}
	return domain.ErrStatusTypeNotFound
}

func (f *fakeBackend) ListActionStatusTypes(context.Context) ([]domain.ActionStatusType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListActionStatusTypes"]++
	return append([]domain.ActionStatusType(nil), f.actionTypes...), nil
}

func (f *fakeBackend) CreateActionStatusType(_ context.Context, in ports.ActionStatusTypeInput) (*domain.ActionStatusType, error) {
	if err := f.enter("CreateActionStatusType"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := domain.ActionStatusType{ID: f.nextID("a"), Name: in.Name, Key: in.Key, Color: in.Color}
	f.actionTypes = append(f.actionTypes, t)
	return &t, nil
}

func (f *fakeBackend) UpdateActionStatusType(_ context.Context, id string, in ports.ActionStatusTypeInput) (*domain.ActionStatusType, error) {
	if err := f.enter("UpdateActionStatusType"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.actionTypes {
		if f.actionTypes[i].ID == id {
			f.actionTypes[i].Name, f.actionTypes[i].Key, f.actionTypes[i].Color = in.Name, in.Key, in.Color
			t := f.actionTypes[i]
			return &t, nil
		}
	}
	return nil, domain.ErrStatusTypeNotFound
}

func (f *fakeBackend) DeleteActionStatusType(_ context.Context, id string) error {
	if err := f.enter("DeleteActionStatusType"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.actionTypes {
		if f.actionTypes[i].ID == id {
			f.actionTypes = append(f.actionTypes[:i], f.actionTypes[i+1:]...)
			return nil
		}
	}
	return domain.ErrStatusTypeNotFound
}

func (f *fakeBackend) ListReports(context.Context) ([]domain.DailyReport, error) {
	if err := f.enter("ListReports"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.DailyReport(nil), f.reports...), nil
}

func (f *fakeBackend) CreateReport(_ context.Context, in ports.ReportInput) (*domain.DailyReport, error) {
	if err := f.enter("CreateReport"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reports {
		if r.Date == in.Date {
			return nil, domain.ErrReportExists
		}
	}
	r := domain.DailyReport{ID: f.nextID("r"), Date: in.Date, CallAttempts: in.CallAttempts}
	f.reports = append(f.reports, r)
	return &r, nil
}

func (f *fakeBackend) UpdateReport(_ context.Context, id string, patch ports.ReportPatch) (*domain.DailyReport, error) {
	if err := f.enter("UpdateReport"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reports {
		if f.reports[i].ID == id {
			if patch.Comment != nil {
				f.reports[i].Comment = *patch.Comment
			}
			r := f.reports[i]
			return &r, nil
		}
	}
	return nil, domain.ErrReportNotFound
}

func (f *fakeBackend) DeleteReport(_ context.Context, id string) error {
	if err := f.enter("DeleteReport"); err != nil {
		return err
	}
	return nil
}

// gate is a fixed Gate for tests that do not exercise the session.
type gate struct{ token string }

func (g gate) Require() (string, error) {
	if g.token == "" {
		return "", session.ErrNotLoggedIn
	}
	return g.token, nil
}

func (gate) Expire(error) {}
