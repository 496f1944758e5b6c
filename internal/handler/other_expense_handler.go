package handler

import (
	"net/http"

	"fraisreels/internal/middleware"
	"fraisreels/internal/service"
	"fraisreels/pkg/response"

	"github.com/gin-gonic/gin"
)

type OtherExpenseHandler struct {
	otherExpenseService service.OtherExpenseService
}

func NewOtherExpenseHandler(otherExpenseService service.OtherExpenseService) *OtherExpenseHandler {
	return &OtherExpenseHandler{otherExpenseService: otherExpenseService}
}

func (h *OtherExpenseHandler) RegisterRoutes(router *gin.RouterGroup) {
	expenses := router.Group("/other-expenses", middleware.RequireAuth())
	{
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

func (h *OtherExpenseHandler) CreateExpense(c *gin.Context) {
	var req service.CreateOtherExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	expense, err := h.otherExpenseService.CreateExpense(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, expense))
}

func (h *OtherExpenseHandler) UpdateExpense(c *gin.Context) {
	var req service.UpdateOtherExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	expense, err := h.otherExpenseService.UpdateExpense(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}

func (h *OtherExpenseHandler) DeleteExpense(c *gin.Context) {
	expense, err := h.otherExpenseService.DeleteExpense(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}
