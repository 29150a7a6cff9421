package workspace

import (
	"context"
	"slices"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

func (w *Workspace) ClientStatusTypes(ctx context.Context) ([]domain.ClientStatusType, error) {
	if _, err := w.gate.Require(); err != nil {
		return nil, err
	}
	if err := w.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.statusTypes), nil
}

func (w *Workspace) ActionStatusTypes(ctx context.Context) ([]domain.ActionStatusType, error) {
	if _, err := w.gate.Require(); err != nil {
		return nil, err
	}
	if err := w.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.actionTypes), nil
}

// mutateCatalog runs a registry change. On success apply updates the local
// catalogs under the write lock and the cached aggregates are dropped.
func (w *Workspace) mutateCatalog(ctx context.Context, send func(Backend) error, apply func()) error {
	b, err := w.backend()
	if err != nil {
		return err
	}
	if err := w.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := send(b); err != nil {
		return w.refreshOnNotFound(ctx, w.settle(err))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	apply()
	w.invalidateLocked()
	return nil
}

func upsertByID[T any](items []T, item T, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func removeByID[T any](items []T, target string, id func(T) string) []T {
	return slices.DeleteFunc(items, func(it T) bool { return id(it) == target })
}

func clientStatusTypeID(t domain.ClientStatusType) string { return t.ID }
func actionStatusTypeID(t domain.ActionStatusType) string { return t.ID }

// UpsertClientStatusType updates the type named name, or creates it.
func (w *Workspace) UpsertClientStatusType(ctx context.Context, name, color string) (*domain.ClientStatusType, error) {
	in := ports.ClientStatusTypeInput{Name: name, Color: color}
	var out *domain.ClientStatusType
	err := w.mutateCatalog(ctx, func(b Backend) (err error) {
		if existing, ok := w.clientStatusTypeByName(name); ok {
			out, err = b.UpdateClientStatusType(ctx, existing.ID, in)
		} else {
			out, err = b.CreateClientStatusType(ctx, in)
		}
		return err
	}, func() {
		w.statusTypes = upsertByID(w.statusTypes, *out, clientStatusTypeID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RenameClientStatusType changes the name and color of the type with id.
// Clients still referencing the old name keep it and render with the
// default color.
func (w *Workspace) RenameClientStatusType(ctx context.Context, id, name, color string) (*domain.ClientStatusType, error) {
	var out *domain.ClientStatusType
	err := w.mutateCatalog(ctx, func(b Backend) (err error) {
		out, err = b.UpdateClientStatusType(ctx, id, ports.ClientStatusTypeInput{Name: name, Color: color})
		return err
	}, func() {
		w.statusTypes = upsertByID(w.statusTypes, *out, clientStatusTypeID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Workspace) DeleteClientStatusType(ctx context.Context, id string) error {
	return w.mutateCatalog(ctx, func(b Backend) error {
		return b.DeleteClientStatusType(ctx, id)
	}, func() {
		w.statusTypes = removeByID(w.statusTypes, id, clientStatusTypeID)
	})
}

// UpsertActionStatusType updates the type carrying key, or creates it.
func (w *Workspace) UpsertActionStatusType(ctx context.Context, name, key, color string) (*domain.ActionStatusType, error) {
	in := ports.ActionStatusTypeInput{Name: name, Key: key, Color: color}
	var out *domain.ActionStatusType
	err := w.mutateCatalog(ctx, func(b Backend) (err error) {
		if existing, ok := w.actionStatusTypeByKey(key); ok {
			out, err = b.UpdateActionStatusType(ctx, existing.ID, in)
		} else {
			out, err = b.CreateActionStatusType(ctx, in)
		}
		return err
	}, func() {
		w.actionTypes = upsertByID(w.actionTypes, *out, actionStatusTypeID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteActionStatusType removes a type. Bitmap entries for its key stay on
// the clients and show up as legacy flags.
func (w *Workspace) DeleteActionStatusType(ctx context.Context, id string) error {
	return w.mutateCatalog(ctx, func(b Backend) error {
		return b.DeleteActionStatusType(ctx, id)
	}, func() {
		w.actionTypes = removeByID(w.actionTypes, id, actionStatusTypeID)
	})
}

func (w *Workspace) clientStatusTypeByName(name string) (domain.ClientStatusType, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, t := range w.statusTypes {
		if t.Name == name {
			return t, true
		}
	}
	return domain.ClientStatusType{}, false
}

func (w *Workspace) actionStatusTypeByKey(key string) (domain.ActionStatusType, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, t := range w.actionTypes {
		if t.Key == key {
			return t, true
		}
	}
	return domain.ActionStatusType{}, false
}
