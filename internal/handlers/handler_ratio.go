package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ratioHandler handles HTTP requests related to financial ratio benchmarks.
type ratioHandler struct {
	ratioService portssvc.RatioSvcFacade
}

func registerRatioRoutes(rg *gin.RouterGroup, ratioService portssvc.RatioSvcFacade) {
	h := &ratioHandler{ratioService: ratioService}

	ratios := rg.Group("/ratios")
	{
		ratios.POST("", h.createRatio)
		ratios.GET("", h.listRatios)
		ratios.GET("/:id", h.getRatio)
		ratios.PUT("/:id", h.updateRatio)
	}
}

// createRatio godoc
// @Summary Create a ratio benchmark
// @Tags ratios
// @Accept  json
// @Produce  json
// @Param   ratio body dto.CreateRatioRequest true "Ratio benchmark"
// @Success 201 {object} dto.RatioResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Ratio name already exists"
// @Failure 500 {object} map[string]string "Failed to create ratio"
// @Security BearerAuth
// @Router /ratios [post]
func (h *ratioHandler) createRatio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRatioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "JSON for CreateRatio", err)
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ratio, err := h.ratioService.CreateRatio(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create ratio")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRatioResponse(ratio))
}

// listRatios godoc
// @Summary List ratio benchmarks
// @Tags ratios
// @Produce  json
// @Success 200 {array} dto.RatioResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list ratios"
// @Security BearerAuth
// @Router /ratios [get]
func (h *ratioHandler) listRatios(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ratios, err := h.ratioService.ListRatios(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list ratios")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRatioResponse(ratios))
}

// getRatio godoc
// @Summary Get a ratio benchmark
// @Tags ratios
// @Produce  json
// @Param   id path string true "Ratio ID"
// @Success 200 {object} dto.RatioResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ratio not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ratio"
// @Security BearerAuth
// @Router /ratios/{id} [get]
func (h *ratioHandler) getRatio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("ratio_id", c.Param("id")))
	ratio, err := h.ratioService.GetRatioByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve ratio")
		return
	}
	c.JSON(http.StatusOK, dto.ToRatioResponse(ratio))
}

// updateRatio godoc
// @Summary Update a ratio benchmark
// @Tags ratios
// @Accept  json
// @Produce  json
// @Param   id path string true "Ratio ID"
// @Param   ratio body dto.UpdateRatioRequest true "Fields to update"
// @Success 200 {object} dto.RatioResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ratio not found"
// @Failure 409 {object} map[string]string "Ratio name already exists"
// @Failure 500 {object} map[string]string "Failed to update ratio"
// @Security BearerAuth
// @Router /ratios/{id} [put]
func (h *ratioHandler) updateRatio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("ratio_id", c.Param("id")))
	var req dto.UpdateRatioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "JSON for UpdateRatio", err)
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ratio, err := h.ratioService.UpdateRatio(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update ratio")
		return
	}
	c.JSON(http.StatusOK, dto.ToRatioResponse(ratio))
}
