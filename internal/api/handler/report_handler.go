package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/crm-system/internal/core/ports"
)

// ReportHandler serves daily activity reports.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// List handles GET /daily-reports.
//
// @Summary      List daily reports, newest first
// @Tags         daily-reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.DailyReport
// @Router       /daily-reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	reports, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Get handles GET /daily-reports/:id.
//
// @Summary      Get a daily report
// @Tags         daily-reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  domain.DailyReport
// @Failure      404  {object}  map[string]string
// @Router       /daily-reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	r, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Create handles POST /daily-reports.
//
// @Summary      Create a daily report
// @Tags         daily-reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.ReportInput  true  "Report"
// @Success      201   {object}  domain.DailyReport
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /daily-reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	var req ports.ReportInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// Update handles PUT /daily-reports/:id.
//
// @Summary      Update a daily report
// @Tags         daily-reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Report ID"
// @Param        body  body      ports.ReportPatch  true  "Fields to change"
// @Success      200   {object}  domain.DailyReport
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /daily-reports/{id} [put]
func (h *ReportHandler) Update(c echo.Context) error {
	var req ports.ReportPatch
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /daily-reports/:id.
//
// @Summary      Delete a daily report
// @Tags         daily-reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /daily-reports/{id} [delete]
func (h *ReportHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Report deleted successfully"})
}
