package remote

import (
	"context"
	"net/http"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

const (
	clientStatusTypesPath = "/client-status-types"
	actionStatusTypesPath = "/action-status-types"
)

func (c *Client) ListClientStatusTypes(ctx context.Context) ([]domain.ClientStatusType, error) {
	var out []domain.ClientStatusType
	if err := c.do(ctx, http.MethodGet, clientStatusTypesPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateClientStatusType(ctx context.Context, in ports.ClientStatusTypeInput) (*domain.ClientStatusType, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out domain.ClientStatusType
	if err := c.do(ctx, http.MethodPost, clientStatusTypesPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClientStatusType(ctx context.Context, id string, in ports.ClientStatusTypeInput) (*domain.ClientStatusType, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out domain.ClientStatusType
	if err := c.do(ctx, http.MethodPut, clientStatusTypesPath+"/"+escape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClientStatusType(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, clientStatusTypesPath+"/"+escape(id), nil, nil, nil)
}

func (c *Client) ListActionStatusTypes(ctx context.Context) ([]domain.ActionStatusType, error) {
	var out []domain.ActionStatusType
	if err := c.do(ctx, http.MethodGet, actionStatusTypesPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateActionStatusType(ctx context.Context, in ports.ActionStatusTypeInput) (*domain.ActionStatusType, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out domain.ActionStatusType
	if err := c.do(ctx, http.MethodPost, actionStatusTypesPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateActionStatusType(ctx context.Context, id string, in ports.ActionStatusTypeInput) (*domain.ActionStatusType, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out domain.ActionStatusType
	if err := c.do(ctx, http.MethodPut, actionStatusTypesPath+"/"+escape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteActionStatusType(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, actionStatusTypesPath+"/"+escape(id), nil, nil, nil)
}
