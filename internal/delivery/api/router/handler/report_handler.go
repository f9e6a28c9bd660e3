package handler

import (
	"net/http"

	"marketplace/internal/delivery/api/response"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReportHandlerParams holds dependencies for ReportHandler, injected by Fx.
type ReportHandlerParams struct {
	fx.In

	ReportUC usecase.ReportUsecase
}

// ReportHandler serves the dashboards and the admin action log.
type ReportHandler struct {
	reportUC usecase.ReportUsecase
}

// NewReportHandler is the constructor for ReportHandler
func NewReportHandler(params ReportHandlerParams) *ReportHandler {
	return &ReportHandler{reportUC: params.ReportUC}
}

// VendorDashboard handles the caller's vendor summary
func (h *ReportHandler) VendorDashboard(c echo.Context) error {
	dashboard, err := h.reportUC.VendorDashboard(c.Request().Context(), callerIdentity(c), daysQuery(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toVendorDashboardResponse(dashboard))
}

// AdminDashboard handles the marketplace-wide summary
func (h *ReportHandler) AdminDashboard(c echo.Context) error {
	dashboard, err := h.reportUC.AdminDashboard(c.Request().Context(), callerIdentity(c), daysQuery(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toAdminDashboardResponse(dashboard))
}

// ListActions handles paging through the admin action log
func (h *ReportHandler) ListActions(c echo.Context) error {
	page := pageFrom(c)
	records, total, err := h.reportUC.ListAuditRecords(c.Request().Context(), callerIdentity(c), listOptions(page))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, toAuditRecordResponses(records), page.Meta(total))
}
