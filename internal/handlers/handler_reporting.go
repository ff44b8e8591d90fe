package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance/:periodID", h.getTrialBalance)
		reportingGroup.GET("/general-ledger", h.getGeneralLedger)
		reportingGroup.GET("/income-statement/:periodID", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/cash-flow/:periodID", h.getCashFlow)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Per-account debit and credit totals for a period, with the balance check
// @Tags reports
// @Produce json
// @Param periodID path string true "Period ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance/{periodID} [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", c.Param("periodID")))

	report, err := h.reportingService.TrialBalance(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getGeneralLedger godoc
// @Summary Generate general ledger report
// @Description Entries in a date range with per-account running balances
// @Tags reports
// @Produce json
// @Param fromDate query string true "Start date (YYYY-MM-DD)"
// @Param toDate query string true "End date (YYYY-MM-DD)"
// @Param accountIDs query string false "Comma separated account IDs"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 400 {object} map[string]string "Invalid input or date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "query params for GeneralLedger", err)
		return
	}
	// Formats are checked by binding.
	from, _ := time.Parse(dto.DateLayout, params.FromDate)
	to, _ := time.Parse(dto.DateLayout, params.ToDate)

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), from, to, params.AccountRefs())
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate general ledger report")
		return
	}
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(report))
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Actual results of a period against its budgets, with variances
// @Tags reports
// @Produce json
// @Param periodID path string true "Period ID"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement/{periodID} [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", c.Param("periodID")))

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate income statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Generates a balance sheet report as of a specific date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOfStr := c.DefaultQuery("asOf", time.Now().UTC().Format(dto.DateLayout))
	asOf, err := time.Parse(dto.DateLayout, asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate balance sheet report")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getCashFlow godoc
// @Summary Generate cash flow statement
// @Description Cash movements of a period by activity, reconciled to the cash balance
// @Tags reports
// @Produce json
// @Param periodID path string true "Period ID"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/cash-flow/{periodID} [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", c.Param("periodID")))

	report, err := h.reportingService.CashFlow(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate cash flow statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}
