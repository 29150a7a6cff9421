package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/crm-system/internal/api/metrics"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// TaxonomyHandler serves both status type catalogs.
type TaxonomyHandler struct {
	service ports.TaxonomyService
}

func NewTaxonomyHandler(service ports.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: service}
}

const (
	catalogClientStatus = "client_status"
	catalogActionStatus = "action_status"
)

// ListClientStatusTypes handles GET /client-status-types.
//
// @Summary      List client status types
// @Tags         client-status-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ClientStatusType
// @Router       /client-status-types [get]
func (h *TaxonomyHandler) ListClientStatusTypes(c echo.Context) error {
	types, err := h.service.ListClientStatusTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

// GetClientStatusType handles GET /client-status-types/:id.
//
// @Summary      Get a client status type
// @Tags         client-status-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Type ID"
// @Success      200  {object}  domain.ClientStatusType
// @Failure      404  {object}  map[string]string
// @Router       /client-status-types/{id} [get]
func (h *TaxonomyHandler) GetClientStatusType(c echo.Context) error {
	t, err := h.service.GetClientStatusType(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// CreateClientStatusType handles POST /client-status-types.
//
// @Summary      Create a client status type
// @Tags         client-status-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.ClientStatusTypeInput  true  "Type"
// @Success      201   {object}  domain.ClientStatusType
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /client-status-types [post]
func (h *TaxonomyHandler) CreateClientStatusType(c echo.Context) error {
	var req ports.ClientStatusTypeInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.CreateClientStatusType(c.Request().Context(), req)
	if err != nil {
		return err
	}
	metrics.TaxonomyChangesTotal.WithLabelValues(catalogClientStatus, "create").Inc()
	return c.JSON(http.StatusCreated, t)
}

// UpdateClientStatusType handles PUT /client-status-types/:id.
//
// @Summary      Update a client status type
// @Tags         client-status-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Type ID"
// @Param        body  body      ports.ClientStatusTypeInput  true  "Type"
// @Success      200   {object}  domain.ClientStatusType
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /client-status-types/{id} [put]
func (h *TaxonomyHandler) UpdateClientStatusType(c echo.Context) error {
	var req ports.ClientStatusTypeInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.UpdateClientStatusType(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	metrics.TaxonomyChangesTotal.WithLabelValues(catalogClientStatus, "update").Inc()
	return c.JSON(http.StatusOK, t)
}

// DeleteClientStatusType handles DELETE /client-status-types/:id.
//
// @Summary      Delete a client status type
// @Tags         client-status-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Type ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /client-status-types/{id} [delete]
func (h *TaxonomyHandler) DeleteClientStatusType(c echo.Context) error {
	if err := h.service.DeleteClientStatusType(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.TaxonomyChangesTotal.WithLabelValues(catalogClientStatus, "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Client status type deleted successfully"})
}

// ListActionStatusTypes handles GET /action-status-types.
//
// @Summary      List action status types
// @Tags         action-status-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ActionStatusType
// @Router       /action-status-types [get]
func (h *TaxonomyHandler) ListActionStatusTypes(c echo.Context) error {
	types, err := h.service.ListActionStatusTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

// GetActionStatusType handles GET /action-status-types/:id.
//
// @Summary      Get an action status type
// @Tags         action-status-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Type ID"
// @Success      200  {object}  domain.ActionStatusType
// @Failure      404  {object}  map[string]string
// @Router       /action-status-types/{id} [get]
func (h *TaxonomyHandler) GetActionStatusType(c echo.Context) error {
	t, err := h.service.GetActionStatusType(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// CreateActionStatusType handles POST /action-status-types.
//
// @Summary      Create an action status type
// @Tags         action-status-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.ActionStatusTypeInput  true  "Type"
// @Success      201   {object}  domain.ActionStatusType
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /action-status-types [post]
func (h *TaxonomyHandler) CreateActionStatusType(c echo.Context) error {
	var req ports.ActionStatusTypeInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.CreateActionStatusType(c.Request().Context(), req)
	if err != nil {
		return err
	}
	metrics.TaxonomyChangesTotal.WithLabelValues(catalogActionStatus, "create").Inc()
	return c.JSON(http.StatusCreated, t)
}

// UpdateActionStatusType handles PUT /action-status-types/:id.
//
// @Summary      Update an action status type
// @Tags         action-status-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Type ID"
// @Param        body  body      ports.ActionStatusTypeInput  true  "Type"
// @Success      200   {object}  domain.ActionStatusType
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /action-status-types/{id} [put]
func (h *TaxonomyHandler) UpdateActionStatusType(c echo.Context) error {
	var req ports.ActionStatusTypeInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.UpdateActionStatusType(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	metrics.TaxonomyChangesTotal.WithLabelValues(catalogActionStatus, "update").Inc()
	return c.JSON(http.StatusOK, t)
}

// DeleteActionStatusType handles DELETE /action-status-types/:id.
//
// @Summary      Delete an action status type
// @Tags         action-status-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Type ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /action-status-types/{id} [delete]
func (h *TaxonomyHandler) DeleteActionStatusType(c echo.Context) error {
	if err := h.service.DeleteActionStatusType(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.TaxonomyChangesTotal.WithLabelValues(catalogActionStatus, "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Action status type deleted successfully"})
}
