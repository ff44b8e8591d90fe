package handlers

import (
	"net/http"

	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// forecastHandler exposes an optional revenue model. forecaster may be nil.
type forecastHandler struct {
	forecaster portssvc.RevenueForecaster
}

func registerForecastRoutes(rg *gin.RouterGroup, forecaster portssvc.RevenueForecaster) {
	h := &forecastHandler{forecaster: forecaster}
	rg.POST("/forecasts/revenue", h.forecastRevenue)
}

// forecastRevenue godoc
// @Summary Forecast next quarter revenue
// @Description Delegates to the configured revenue model. Returns 501 when none is configured.
// @Tags forecasts
// @Accept  json
// @Produce  json
// @Param   history body dto.RevenueForecastRequest true "Recent quarterly revenue"
// @Success 200 {object} dto.RevenueForecastResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Forecast failed"
// @Failure 501 {object} map[string]string "No forecaster configured"
// @Security BearerAuth
// @Router /forecasts/revenue [post]
func (h *forecastHandler) forecastRevenue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if h.forecaster == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Revenue forecasting is not configured"})
		return
	}

	var req dto.RevenueForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "JSON for ForecastRevenue", err)
		return
	}

	forecast, err := h.forecaster.ForecastRevenue(c.Request.Context(),
		[]decimal.Decimal{req.RevenueTwoQuartersAgo, req.RevenueLastQuarter})
	if err != nil {
		respondWithError(c, logger, err, "Forecast failed")
		return
	}
	c.JSON(http.StatusOK, dto.RevenueForecastResponse{PredictedNextQuarterRevenue: forecast.Predicted})
}
