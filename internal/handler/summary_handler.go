package handler

import (
	"net/http"
	"strconv"

	"fraisreels/internal/service"
	"fraisreels/pkg/response"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summaryService service.SummaryService
}

func NewSummaryHandler(summaryService service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/persons/:id/summary/:year", h.GetPersonSummary)
	router.GET("/persons/:id/details/:year", h.GetPersonDetail)
	router.GET("/dashboard/:year", h.GetDashboard)
}

func parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid year parameter"))
		return 0, false
	}
	return year, true
}

// GetPersonSummary returns one declarant's deduction totals for a year
// @Summary      Annual deduction summary for a person
// @Tags         summary
// @Produce      json
// @Param        id    path      string  true  "Person ID"
// @Param        year  path      int     true  "Tax year"
// @Success      200   {object}  response.Response{data=service.PersonYearSummaryResponse}
// @Failure      404   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /persons/{id}/summary/{year} [get]
func (h *SummaryHandler) GetPersonSummary(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.GetPersonSummary(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// GetPersonDetail returns every entry behind a person's annual totals
// @Summary      Annual deduction detail for a person
// @Tags         summary
// @Produce      json
// @Param        id    path      string  true  "Person ID"
// @Param        year  path      int     true  "Tax year"
// @Success      200   {object}  response.Response{data=service.PersonYearDetailResponse}
// @Failure      404   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /persons/{id}/details/{year} [get]
func (h *SummaryHandler) GetPersonDetail(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}

	detail, err := h.summaryService.GetPersonDetail(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// GetDashboard returns every declarant's totals for a year side by side
// @Summary      Household dashboard for a year
// @Tags         summary
// @Produce      json
// @Param        year  path      int  true  "Tax year"
// @Success      200   {object}  response.Response{data=service.DashboardResponse}
// @Failure      422   {object}  response.Response
// @Router       /dashboard/{year} [get]
func (h *SummaryHandler) GetDashboard(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}

	dashboard, err := h.summaryService.GetDashboard(c.Request.Context(), year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
