package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alimgiray/persondir/internal/services"
)

type MathHandler struct {
	mathService *services.MathService
}

func NewMathHandler(mathService *services.MathService) *MathHandler {
	return &MathHandler{
		mathService: mathService,
	}
}

// Register mounts the arithmetic routes
func (h *MathHandler) Register(router gin.IRoutes) {
	router.GET("/sum/:numberOne/:numberTwo", h.binary(func(a, b float64) (float64, error) {
		return h.mathService.Sum(a, b), nil
	}))
	router.GET("/sub/:numberOne/:numberTwo", h.binary(func(a, b float64) (float64, error) {
		return h.mathService.Subtract(a, b), nil
	}))
	router.GET("/mult/:numberOne/:numberTwo", h.binary(func(a, b float64) (float64, error) {
		return h.mathService.Multiply(a, b), nil
	}))
	router.GET("/div/:numberOne/:numberTwo", h.binary(h.mathService.Divide))
	router.GET("/avg/:numberOne/:numberTwo", h.binary(func(a, b float64) (float64, error) {
		return h.mathService.Average(a, b), nil
	}))
	router.GET("/squareRoot/:number", h.SquareRoot)
}

// binary parses both path operands before applying op
func (h *MathHandler) binary(op func(a, b float64) (float64, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := services.ConvertToDouble(c.Param("numberOne"))
		if err != nil {
			respondError(c, err)
			return
		}
		b, err := services.ConvertToDouble(c.Param("numberTwo"))
		if err != nil {
			respondError(c, err)
			return
		}

		result, err := op(a, b)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// SquareRoot handles GET /squareRoot/:number
func (h *MathHandler) SquareRoot(c *gin.Context) {
	number, err := services.ConvertToDouble(c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.mathService.SquareRoot(number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
