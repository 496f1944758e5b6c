package handler

import (
	"net/http"

	"fraisreels/internal/middleware"
	"fraisreels/internal/service"
	"fraisreels/pkg/response"

	"github.com/gin-gonic/gin"
)

type MileageHandler struct {
	mileageService service.MileageService
}

func NewMileageHandler(mileageService service.MileageService) *MileageHandler {
	return &MileageHandler{mileageService: mileageService}
}

func (h *MileageHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/mileage-entries", middleware.RequireAuth())
	{
		entries.POST("", h.CreateEntry)
		entries.PUT("/:id", h.UpdateEntry)
		entries.DELETE("/:id", h.DeleteEntry)
	}
}

// CreateEntry records kilometers driven in one month
// @Summary      Create a mileage entry
// @Tags         mileage
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateMileageEntryRequest  true  "Create Mileage Entry Payload"
// @Success      201      {object}  response.Response{data=service.MileageEntryResponse}
// @Failure      422      {object}  response.Response
// @Router       /mileage-entries [post]
func (h *MileageHandler) CreateEntry(c *gin.Context) {
	var req service.CreateMileageEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.mileageService.CreateEntry(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

func (h *MileageHandler) UpdateEntry(c *gin.Context) {
	var req service.UpdateMileageEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.mileageService.UpdateEntry(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

func (h *MileageHandler) DeleteEntry(c *gin.Context) {
	entry, err := h.mileageService.DeleteEntry(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}
