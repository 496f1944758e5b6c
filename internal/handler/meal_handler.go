package handler

import (
	"net/http"

	"fraisreels/internal/middleware"
	"fraisreels/internal/service"
	"fraisreels/pkg/response"

	"github.com/gin-gonic/gin"
)

type MealHandler struct {
	mealService service.MealService
}

func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	expenses := router.Group("/meal-expenses", middleware.RequireAuth())
	{
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

func (h *MealHandler) CreateExpense(c *gin.Context) {
	var req service.CreateMealExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	expense, err := h.mealService.CreateExpense(c.Request.Context(), c.GetString("userID"), req)
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

func (h *MealHandler) UpdateExpense(c *gin.Context) {
	var req service.UpdateMealExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	expense, err := h.mealService.UpdateExpense(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}

func (h *MealHandler) DeleteExpense(c *gin.Context) {
	expense, err := h.mealService.DeleteExpense(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, expense))
}
