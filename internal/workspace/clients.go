package workspace

import (
	"context"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// mutateClient sends one client mutation and, on success, lets apply update
// the local copy. A failure leaves local state as it was.
func (w *Workspace) mutateClient(ctx context.Context, send func(Backend) error, apply func(clients []domain.Client) []domain.Client) error {
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
	w.clients = apply(w.clients)
	w.invalidateLocked()
	return nil
}

func replaceClient(updated domain.Client) func([]domain.Client) []domain.Client {
	return func(clients []domain.Client) []domain.Client {
		for i := range clients {
			if clients[i].ID == updated.ID {
				clients[i] = updated
				return clients
			}
		}
		return append(clients, updated)
	}
}

func (w *Workspace) CreateClient(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	var created *domain.Client
	err := w.mutateClient(ctx,
		func(b Backend) (err error) {
			created, err = b.CreateClient(ctx, in)
			return err
		},
		func(clients []domain.Client) []domain.Client {
			return append(clients, *created)
		})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (w *Workspace) UpdateClient(ctx context.Context, id string, patch ports.ClientPatch) (*domain.Client, error) {
	var updated *domain.Client
	err := w.mutateClient(ctx,
		func(b Backend) (err error) {
			updated, err = b.UpdateClient(ctx, id, patch)
			return err
		},
		func(clients []domain.Client) []domain.Client {
			return replaceClient(*updated)(clients)
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateComment changes only the comment of one client.
func (w *Workspace) UpdateComment(ctx context.Context, id, comment string) error {
	return w.mutateClient(ctx,
		func(b Backend) error { return b.UpdateComment(ctx, id, comment) },
		func(clients []domain.Client) []domain.Client {
			for i := range clients {
				if clients[i].ID == id {
					clients[i].Comment = comment
				}
			}
			return clients
		})
}

// SetActionFlags sets only the given flags of one client.
func (w *Workspace) SetActionFlags(ctx context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error) {
	var updated *domain.Client
	err := w.mutateClient(ctx,
		func(b Backend) (err error) {
			updated, err = b.UpdateActionStatus(ctx, id, flags)
			return err
		},
		func(clients []domain.Client) []domain.Client {
			return replaceClient(*updated)(clients)
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ToggleActionFlag flips one flag based on the local copy.
func (w *Workspace) ToggleActionFlag(ctx context.Context, id, key string) (*domain.Client, error) {
	c, err := w.Client(ctx, id)
	if err != nil {
		return nil, err
	}
	return w.SetActionFlags(ctx, id, domain.ActionStatusBitmap{key: !c.ActionStatus.Has(key)})
}

func (w *Workspace) DeleteClient(ctx context.Context, id string) error {
	return w.mutateClient(ctx,
		func(b Backend) error { return b.DeleteClient(ctx, id) },
		func(clients []domain.Client) []domain.Client {
			out := clients[:0]
			for _, c := range clients {
				if c.ID != id {
					out = append(out, c)
				}
			}
			return out
		})
}
