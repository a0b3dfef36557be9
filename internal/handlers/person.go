package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alimgiray/persondir/internal/models"
	"github.com/alimgiray/persondir/internal/services"
)

type PersonHandler struct {
	personService *services.PersonService
}

func NewPersonHandler(personService *services.PersonService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
	}
}

// Register mounts the person routes on group
func (h *PersonHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.FindAll)
	group.GET("/export", h.Export)
	group.GET("/:id", h.FindByID)
	group.POST("", h.Create)
	group.PUT("", h.Update)
	group.DELETE("/:id", h.Delete)
}

// FindAll lists every person
func (h *PersonHandler) FindAll(c *gin.Context) {
	people, err := h.personService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, people)
}

// FindByID returns a single person
func (h *PersonHandler) FindByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	person, err := h.personService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// Create handles person creation
func (h *PersonHandler) Create(c *gin.Context) {
	person, err := bindPerson(c)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.personService.Create(c.Request.Context(), person)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update replaces a person
func (h *PersonHandler) Update(c *gin.Context) {
	person, err := bindPerson(c)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.personService.Update(c.Request.Context(), person)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a person
func (h *PersonHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.personService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid person id %q: %w", c.Param("id"), models.ErrInvalidInput)
	}
	return id, nil
}

func bindPerson(c *gin.Context) (*models.Person, error) {
	person := &models.Person{}
	if err := c.ShouldBindJSON(person); err != nil {
		return nil, fmt.Errorf("invalid person payload: %w", models.ErrInvalidInput)
	}
	return person, nil
}
