package handlers

import (
	"errors"

	"staytrack/internal/core/services"
	"staytrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetReport builds an income report for a date range
// @Summary Payment report
// @Description Income report over a date range, end date inclusive
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/reports [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	report, err := h.reportService.GetReport(c.Context(), startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			return response.BadRequest(c, "Invalid date range, use YYYY-MM-DD")
		}
		return response.InternalServerError(c, "Failed to build report")
	}

	return response.Success(c, "Report generated successfully", report)
}
