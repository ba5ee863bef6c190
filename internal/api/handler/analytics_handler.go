package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mannager/pos-system/internal/core/ports"
)

type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Dashboard returns the at-a-glance shop state.
//
// @Summary      Dashboard
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Dashboard
// @Router       /api/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	dash, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}

// SalesOverview returns bucketed sales, top products, client statistics
// and summary totals for the requested period (default monthly).
//
// @Summary      Sales overview
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "daily, weekly, monthly or yearly"
// @Success      200     {object}  ports.SalesOverview
// @Router       /api/analytics/sales-overview [get]
func (h *AnalyticsHandler) SalesOverview(c echo.Context) error {
	period := ports.Period(c.QueryParam("period"))
	if period == "" {
		period = ports.PeriodMonthly
	}

	overview, err := h.service.SalesOverview(c.Request().Context(), period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// FinancialReport summarises revenue, transaction counts and the current
// loan book over an optional date window.
//
// @Summary      Financial report
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  false  "Window start (YYYY-MM-DD)"
// @Param        endDate    query     string  false  "Window end (YYYY-MM-DD)"
// @Success      200        {object}  ports.FinancialReport
// @Router       /api/analytics/financial-reports [get]
func (h *AnalyticsHandler) FinancialReport(c echo.Context) error {
	start, err := parseDateParam(c.QueryParam("startDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
	}
	end, err := parseDateParam(c.QueryParam("endDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
	}

	report, err := h.service.FinancialReport(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ExportReport renders a report as JSON rows or a downloadable CSV.
//
// @Summary      Export a report
// @Tags         analytics
// @Produce      json
// @Produce      text/csv
// @Security     BearerAuth
// @Param        type    query  string  true   "sales, inventory, financial or clients"
// @Param        format  query  string  false  "json or csv (default json)"
// @Success      200     {object}  ports.Export
// @Router       /api/analytics/export-report [get]
func (h *AnalyticsHandler) ExportReport(c echo.Context) error {
	reportType := ports.ReportType(c.QueryParam("type"))
	format := ports.ExportFormat(c.QueryParam("format"))

	export, err := h.service.ExportReport(c.Request().Context(), reportType, format)
	if err != nil {
		return err
	}

	if format == ports.FormatCSV {
		filename := fmt.Sprintf("%s-report-%d.csv", export.Type, time.Now().UnixMilli())
		c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
		return c.Blob(http.StatusOK, "text/csv", []byte(export.CSV))
	}
	return c.JSON(http.StatusOK, export.Rows)
}

// parseDateParam parses an optional YYYY-MM-DD query value.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
