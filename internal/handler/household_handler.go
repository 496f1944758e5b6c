package handler

import (
	"net/http"

	"fraisreels/internal/middleware"
	"fraisreels/internal/service"
	"fraisreels/pkg/response"

	"github.com/gin-gonic/gin"
)

type HouseholdHandler struct {
	householdService service.HouseholdService
}

func NewHouseholdHandler(householdService service.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService}
}

func (h *HouseholdHandler) RegisterRoutes(router *gin.RouterGroup) {
	households := router.Group("/households")
	{
		households.GET("", h.GetHouseholds)
		households.POST("", middleware.RequireAuth(), h.CreateHousehold)
		households.PUT("/:id", middleware.RequireAuth(), h.UpdateHousehold)
		households.DELETE("/:id", middleware.RequireAuth(), h.DeleteHousehold)
	}
}

// GetHouseholds returns all tax households
func (h *HouseholdHandler) GetHouseholds(c *gin.Context) {
	households, err := h.householdService.GetHouseholds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, households))
}

// CreateHousehold handles tax household creation
// @Summary      Create a household
// @Tags         households
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateHouseholdRequest  true  "Create Household Payload"
// @Success      201      {object}  response.Response{data=service.HouseholdResponse}
// @Failure      400      {object}  response.Response
// @Router       /households [post]
func (h *HouseholdHandler) CreateHousehold(c *gin.Context) {
	var req service.CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	household, err := h.householdService.CreateHousehold(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, household))
}

func (h *HouseholdHandler) UpdateHousehold(c *gin.Context) {
	var req service.UpdateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	household, err := h.householdService.UpdateHousehold(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, household))
}

func (h *HouseholdHandler) DeleteHousehold(c *gin.Context) {
	household, err := h.householdService.DeleteHousehold(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, household))
}
