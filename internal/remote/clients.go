package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// ListClients fetches clients, optionally filtered server side.
func (c *Client) ListClients(ctx context.Context, statusFilter string) ([]domain.Client, error) {
	var q url.Values
	if statusFilter != "" {
		q = url.Values{"status_filter": {statusFilter}}
	}
	var out []domain.Client
	if err := c.do(ctx, http.MethodGet, "/clients", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	var out domain.Client
	if err := c.do(ctx, http.MethodGet, "/clients/"+escape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out domain.Client
	if err := c.do(ctx, http.MethodPost, "/clients", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateClient sends only the non-nil fields of patch.
func (c *Client) UpdateClient(ctx context.Context, id string, patch ports.ClientPatch) (*domain.Client, error) {
	if patch.IsEmpty() {
		return nil, &Error{Kind: KindValidation, Message: "no fields to update"}
	}
	if err := c.check(patch); err != nil {
		return nil, err
	}
	var out domain.Client
	if err := c.do(ctx, http.MethodPut, "/clients/"+escape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateComment(ctx context.Context, id, comment string) error {
	body := struct {
		Comment string `json:"comment"`
	}{comment}
	return c.do(ctx, http.MethodPatch, "/clients/"+escape(id)+"/comment", nil, body, nil)
}

// UpdateActionStatus sets only the given flags.
func (c *Client) UpdateActionStatus(ctx context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error) {
	if len(flags) == 0 {
		return nil, &Error{Kind: KindValidation, Message: "no flags to update"}
	}
	for k := range flags {
		if !domain.ValidKey(k) {
			return nil, &Error{Kind: KindValidation, Message: "invalid action status key " + k}
		}
	}
	var out domain.Client
	if err := c.do(ctx, http.MethodPatch, "/clients/"+escape(id)+"/action-status", nil, flags, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/clients/"+escape(id), nil, nil, nil)
}

func (c *Client) Statistics(ctx context.Context) (analytics.Statistics, error) {
	var out analytics.Statistics
	err := c.do(ctx, http.MethodGet, "/clients/statistics", nil, nil, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context) (analytics.Summary, error) {
	var out analytics.Summary
	err := c.do(ctx, http.MethodGet, "/clients/summary", nil, nil, &out)
	return out, err
}
