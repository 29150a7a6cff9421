// Package workspace is the operator's working copy of the CRM: the client
// collection, both status catalogs and the aggregates derived from them.
// Every operation is gated by the session; aggregates are cached and dropped
// whenever the clients or the catalogs change.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
)

// ErrNotLoaded is returned by read views before the first successful Load.
var ErrNotLoaded = errors.New("workspace not loaded")

type Workspace struct {
	gate Gate
	dial Dialer
	log  zerolog.Logger

	mu          sync.RWMutex
	loaded      bool
	clients     []domain.Client
	statusTypes []domain.ClientStatusType
	actionTypes []domain.ActionStatusType
	filter      string

	stats   *analytics.Statistics
	summary *analytics.Summary
}

func New(gate Gate, dial Dialer, log zerolog.Logger) *Workspace {
	return &Workspace{gate: gate, dial: dial, log: log}
}

// backend resolves the session before anything is sent.
func (w *Workspace) backend() (Backend, error) {
	token, err := w.gate.Require()
	if err != nil {
		return nil, err
	}
	return w.dial(token), nil
}

// settle reports err to the gate and returns it unchanged.
func (w *Workspace) settle(err error) error {
	if err != nil {
		w.gate.Expire(err)
	}
	return err
}

// Load fetches clients and both catalogs concurrently and replaces the
// local copy only when all three reads succeed.
func (w *Workspace) Load(ctx context.Context) error {
	b, err := w.backend()
	if err != nil {
		return err
	}

	var (
		clients     []domain.Client
		statusTypes []domain.ClientStatusType
		actionTypes []domain.ActionStatusType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = b.ListClients(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		statusTypes, err = b.ListClientStatusTypes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		actionTypes, err = b.ListActionStatusTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load workspace: %w", w.settle(err))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients = clients
	w.statusTypes = statusTypes
	w.actionTypes = actionTypes
	w.loaded = true
	w.invalidateLocked()
	w.log.Debug().
		Int("clients", len(clients)).
		Int("client_status_types", len(statusTypes)).
		Int("action_status_types", len(actionTypes)).
		Msg("workspace loaded")
	return nil
}

// ensureLoaded loads once on first use.
func (w *Workspace) ensureLoaded(ctx context.Context) error {
	w.mu.RLock()
	loaded := w.loaded
	w.mu.RUnlock()
	if loaded {
		return nil
	}
	return w.Load(ctx)
}

// refreshOnNotFound reloads when err says the server no longer has an
// entity the local copy still shows. err is returned unchanged.
func (w *Workspace) refreshOnNotFound(ctx context.Context, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if rerr := w.Load(ctx); rerr != nil {
		w.log.Warn().Err(rerr).Msg("refresh after not found failed")
	}
	return err
}

func (w *Workspace) invalidateLocked() {
	w.stats = nil
	w.summary = nil
}

// Clients returns the whole collection.
func (w *Workspace) Clients(ctx context.Context) ([]domain.Client, error) {
	if _, err := w.gate.Require(); err != nil {
		return nil, err
	}
	if err := w.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.clients), nil
}

// Client returns one client from the local copy.
func (w *Workspace) Client(ctx context.Context, id string) (*domain.Client, error) {
	clients, err := w.Clients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, domain.ErrClientNotFound
}

// SetFilter replaces the active criterion; "" and "all" clear it.
func (w *Workspace) SetFilter(raw string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter = raw
}

func (w *Workspace) Filter() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.filter
}

// Visible returns the clients matching the active filter.
func (w *Workspace) Visible(ctx context.Context) ([]domain.Client, error) {
	return w.FilterBy(ctx, w.Filter())
}

// FilterBy returns the clients matching raw without changing the active
// filter. raw is resolved against the live action catalog.
func (w *Workspace) FilterBy(ctx context.Context, raw string) ([]domain.Client, error) {
	clients, err := w.Clients(ctx)
	if err != nil {
		return nil, err
	}
	w.mu.RLock()
	cr := analytics.ResolveCriterion(raw, w.actionTypes, clients)
	w.mu.RUnlock()
	return analytics.FilterByStatus(clients, cr), nil
}

// Statistics returns the cached counters, computing them if needed.
func (w *Workspace) Statistics(ctx context.Context) (analytics.Statistics, error) {
	if _, err := w.gate.Require(); err != nil {
		return analytics.Statistics{}, err
	}
	if err := w.ensureLoaded(ctx); err != nil {
		return analytics.Statistics{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stats == nil {
		s := analytics.ComputeStatistics(w.clients, w.actionTypes)
		w.stats = &s
	}
	return *w.stats, nil
}

// Summary returns the cached totals over all clients, regardless of filter.
func (w *Workspace) Summary(ctx context.Context) (analytics.Summary, error) {
	if _, err := w.gate.Require(); err != nil {
		return analytics.Summary{}, err
	}
	if err := w.ensureLoaded(ctx); err != nil {
		return analytics.Summary{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.summary == nil {
		s := analytics.ComputeSummary(w.clients)
		w.summary = &s
	}
	return *w.summary, nil
}

func (w *Workspace) Progress(ctx context.Context) (analytics.Progress, error) {
	s, err := w.Summary(ctx)
	if err != nil {
		return analytics.Progress{}, err
	}
	return analytics.ComputeProgress(s), nil
}

// ServerStatistics asks the backend to aggregate instead of the local copy.
func (w *Workspace) ServerStatistics(ctx context.Context) (analytics.Statistics, error) {
	b, err := w.backend()
	if err != nil {
		return analytics.Statistics{}, err
	}
	stats, err := b.Statistics(ctx)
	return stats, w.settle(err)
}

func (w *Workspace) ServerSummary(ctx context.Context) (analytics.Summary, error) {
	b, err := w.backend()
	if err != nil {
		return analytics.Summary{}, err
	}
	summary, err := b.Summary(ctx)
	return summary, w.settle(err)
}

// Flags resolves a client's bitmap against the live catalog.
func (w *Workspace) Flags(c *domain.Client) []domain.Flag {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return c.ActionStatus.Flags(w.actionTypes)
}

func (w *Workspace) ActionColor(key string) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.ResolveActionColor(key, w.actionTypes)
}

func (w *Workspace) ClientStatusColor(name string) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.ResolveClientStatusColor(name, w.statusTypes)
}
