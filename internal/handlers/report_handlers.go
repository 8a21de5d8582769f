package handlers

import (
	"net/http"
	"strconv"

	"clinic_backoffice/internal/services"
	"clinic_backoffice/internal/valuation"
	"clinic_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the valuation service dependency.
type ReportHandler struct {
	valuationService services.ValuationService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(valuationService services.ValuationService) *ReportHandler {
	return &ReportHandler{valuationService: valuationService}
}

// parseMethod reads the valuation method query param, defaulting to
// weighted average.
func parseMethod(c *gin.Context) valuation.Method {
	return valuation.ParseMethod(c.Query("method"))
}

// parseWindowDays reads an optional trailing-window override; 0 means
// "use the report's default".
func parseWindowDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("window_days", "0"))
	if err != nil || days < 0 {
		return 0
	}
	return days
}

func respondReportError(c *gin.Context, err error, action string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action, err.Error()))
}

// GetValuationReport returns the full per-item valuation for one method.
func (h *ReportHandler) GetValuationReport(c *gin.Context) {
	report, err := h.valuationService.GetValuation(parseMethod(c))
	if err != nil {
		respondReportError(c, err, "generate valuation report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCategoryBreakdown returns the valuation grouped into category buckets.
func (h *ReportHandler) GetCategoryBreakdown(c *gin.Context) {
	report, err := h.valuationService.GetCategoryBreakdown(parseMethod(c))
	if err != nil {
		respondReportError(c, err, "generate category breakdown")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetStockHealthReport returns the slow-moving and dead-stock lists.
func (h *ReportHandler) GetStockHealthReport(c *gin.Context) {
	report, err := h.valuationService.GetStockHealth(parseMethod(c), parseWindowDays(c))
	if err != nil {
		respondReportError(c, err, "generate stock health report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetTurnoverReport returns annualized turnover records, lowest ratio first.
func (h *ReportHandler) GetTurnoverReport(c *gin.Context) {
	report, err := h.valuationService.GetTurnover(parseMethod(c), parseWindowDays(c))
	if err != nil {
		respondReportError(c, err, "generate turnover report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetMethodComparison returns every item valued under all three methods.
func (h *ReportHandler) GetMethodComparison(c *gin.Context) {
	report, err := h.valuationService.GetMethodComparison()
	if err != nil {
		respondReportError(c, err, "generate method comparison")
		return
	}
	c.JSON(http.StatusOK, report)
}
