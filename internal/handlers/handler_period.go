package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to fiscal periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

// registerPeriodRoutes registers routes related to periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/recent", h.listRecentPeriods)
		periods.GET("/:id", h.getPeriod)
		periods.PUT("/:id/start-closing", h.startClosing)
		periods.PUT("/:id/lock", h.lockPeriod)
	}
}

// createPeriod godoc
// @Summary Create a fiscal period
// @Description Opens a new period. The inclusive date range must not intersect any existing period.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate label or overlapping range"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Security BearerAuth
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "JSON for CreatePeriod", err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create period")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List periods
// @Tags periods
// @Produce  json
// @Success 200 {array} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPeriodResponse(periods))
}

// listRecentPeriods godoc
// @Summary List recent periods
// @Description Latest periods by end date, newest first
// @Tags periods
// @Produce  json
// @Param   limit query int false "Number of periods" default(6)
// @Success 200 {array} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /periods/recent [get]
func (h *periodHandler) listRecentPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.RecentPeriodsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, "query params for ListRecentPeriods", err)
		return
	}

	periods, err := h.periodService.ListRecentPeriods(c.Request.Context(), params.Limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPeriodResponse(periods))
}

// getPeriod godoc
// @Summary Get a period by ID
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Security BearerAuth
// @Router /periods/{id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", c.Param("id")))
	period, err := h.periodService.GetPeriodByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// startClosing godoc
// @Summary Start closing a period
// @Description Moves an OPEN period to CLOSING once its debits and credits balance. Postings are refused from then on.
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not OPEN"
// @Failure 422 {object} map[string]string "Period entries do not balance"
// @Failure 500 {object} map[string]string "Failed to start closing"
// @Security BearerAuth
// @Router /periods/{id}/start-closing [put]
func (h *periodHandler) startClosing(c *gin.Context) {
	h.transition(c, "Failed to start closing", h.periodService.StartClosing)
}

// lockPeriod godoc
// @Summary Lock a period
// @Description Moves a CLOSING period to CLOSED and records the days taken to close
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not CLOSING"
// @Failure 500 {object} map[string]string "Failed to lock period"
// @Security BearerAuth
// @Router /periods/{id}/lock [put]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	h.transition(c, "Failed to lock period", h.periodService.LockPeriod)
}

type periodTransition func(ctx context.Context, id string, userID string) (*domain.Period, error)

func (h *periodHandler) transition(c *gin.Context, failure string, apply periodTransition) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("period_id", c.Param("id")))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := apply(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err, failure)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
