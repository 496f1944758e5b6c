package handler

import (
	"net/http"
	"strconv"

	"fraisreels/internal/middleware"
	"fraisreels/internal/model"
	"fraisreels/internal/service"
	"fraisreels/pkg/response"

	"github.com/gin-gonic/gin"
)

type ScaleHandler struct {
	scaleService service.ScaleService
}

func NewScaleHandler(scaleService service.ScaleService) *ScaleHandler {
	return &ScaleHandler{scaleService: scaleService}
}

func (h *ScaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	scale := router.Group("/scale")
	{
		scale.GET("", h.GetScale)
		scale.PUT("/:power_cv", middleware.RequireRole(model.RoleAdmin), h.UpdateTier)
	}
}

// GetScale returns the mileage scale currently in force, tier by tier
// @Summary      Get the mileage scale
// @Tags         scale
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.ScaleTierResponse}
// @Router       /scale [get]
func (h *ScaleHandler) GetScale(c *gin.Context) {
	scale, err := h.scaleService.GetScale(c.Request.Context())
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, scale))
}

// UpdateTier replaces every bracket of one fiscal-power tier
// @Summary      Replace a scale tier
// @Tags         scale
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        power_cv  path      int                              true  "Fiscal power in CV"
// @Param        payload   body      service.UpdateScaleTierRequest   true  "Replacement brackets"
// @Success      200       {object}  response.Response{data=service.ScaleTierResponse}
// @Failure      422       {object}  response.Response
// @Router       /scale/{power_cv} [put]
func (h *ScaleHandler) UpdateTier(c *gin.Context) {
	powerCV, err := strconv.Atoi(c.Param("power_cv"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid power_cv parameter"))
		return
	}

	var req service.UpdateScaleTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tier, err := h.scaleService.UpdateTier(c.Request.Context(), c.GetString("userID"), powerCV, req)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tier))
}
