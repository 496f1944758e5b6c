package handler

import (
	"net/http"

	"fraisreels/internal/middleware"
	"fraisreels/internal/service"
	"fraisreels/pkg/pagination"
	"fraisreels/pkg/response"

	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	personService service.PersonService
}

func NewPersonHandler(personService service.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

func (h *PersonHandler) RegisterRoutes(router *gin.RouterGroup) {
	persons := router.Group("/persons")
	{
		persons.GET("", h.ListPersons)
		persons.POST("", middleware.RequireAuth(), h.CreatePerson)
		persons.PUT("/:id", middleware.RequireAuth(), h.UpdatePerson)
		persons.DELETE("/:id", middleware.RequireAuth(), h.DeletePerson)
	}
}

// ListPersons returns one page of declarants
// @Summary      List persons
// @Tags         persons
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response
// @Router       /persons [get]
func (h *PersonHandler) ListPersons(c *gin.Context) {
	params := pagination.Parse(c)

	persons, total, err := h.personService.GetPersons(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"items": persons,
		"meta":  pagination.NewMeta(params, total),
	}))
}

func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req service.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	person, err := h.personService.CreatePerson(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, person))
}

func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	var req service.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	person, err := h.personService.UpdatePerson(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, person))
}

func (h *PersonHandler) DeletePerson(c *gin.Context) {
	person, err := h.personService.DeletePerson(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, person))
}
