package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/crm-system/internal/api/metrics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// ClientHandler serves the client collection and its aggregates.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// List handles GET /clients.
//
// @Summary      List clients
// @Description  status_filter accepts "all", "has_debt", an action status key or a client status name.
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        status_filter  query     string  false  "Single filter criterion"
// @Success      200            {array}   domain.Client
// @Failure      401            {object}  map[string]string
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context(), c.QueryParam("status_filter"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Create handles POST /clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.ClientInput  true  "Client"
// @Success      201   {object}  domain.Client
// @Failure      422   {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req ports.ClientInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	client, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	metrics.ClientMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, client)
}

// Get handles GET /clients/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Update handles PUT /clients/:id. Only the provided fields are changed.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Client ID"
// @Param        body  body      ports.ClientPatch  true  "Fields to change"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req ports.ClientPatch
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	client, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	metrics.ClientMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, client)
}

// UpdateComment handles PATCH /clients/:id/comment.
//
// @Summary      Update a client's comment
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Client ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id}/comment [patch]
func (h *ClientHandler) UpdateComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.service.UpdateComment(c.Request().Context(), c.Param("id"), req.Comment); err != nil {
		return err
	}
	metrics.ClientMutationsTotal.WithLabelValues("comment").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Comment updated successfully"})
}

// UpdateActionStatus handles PATCH /clients/:id/action-status.
//
// @Summary      Set action status flags
// @Description  Only the keys present in the body are changed.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Client ID"
// @Param        body  body      map[string]bool  true  "Flags"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id}/action-status [patch]
func (h *ClientHandler) UpdateActionStatus(c echo.Context) error {
	var flags domain.ActionStatusBitmap
	if err := c.Bind(&flags); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	client, err := h.service.UpdateActionStatus(c.Request().Context(), c.Param("id"), flags)
	if err != nil {
		return err
	}
	metrics.ClientMutationsTotal.WithLabelValues("action_status").Inc()
	return c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /clients/:id.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ClientMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Client deleted successfully"})
}

// Statistics handles GET /clients/statistics.
//
// @Summary      Client counters per status
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Router       /clients/statistics [get]
func (h *ClientHandler) Statistics(c echo.Context) error {
	stats, err := h.service.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Summary handles GET /clients/summary.
//
// @Summary      Global order and debt totals
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analytics.Summary
// @Router       /clients/summary [get]
func (h *ClientHandler) Summary(c echo.Context) error {
	sum, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}
