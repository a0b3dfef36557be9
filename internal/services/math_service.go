package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/alimgiray/persondir/internal/models"
)

var numericPattern = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+$`)

// IsNumeric reports whether s is a decimal number. A comma is accepted as the
// decimal separator.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(strings.ReplaceAll(s, ",", "."))
}

// ConvertToDouble parses s as a decimal number
func ConvertToDouble(s string) (float64, error) {
	if !IsNumeric(s) {
		return 0, fmt.Errorf("please set a numeric value: %w", models.ErrInvalidInput)
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// MathService is stateless
type MathService struct{}

func NewMathService() *MathService {
	return &MathService{}
}

func (s *MathService) Sum(a, b float64) float64 {
	return a + b
}

func (s *MathService) Subtract(a, b float64) float64 {
	return a - b
}

func (s *MathService) Multiply(a, b float64) float64 {
	return a * b
}

// Divide rejects a zero divisor; the result would not be representable in JSON
func (s *MathService) Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("division by zero: %w", models.ErrInvalidInput)
	}
	return a / b, nil
}

func (s *MathService) Average(a, b float64) float64 {
	return (a + b) / 2
}

func (s *MathService) SquareRoot(a float64) (float64, error) {
	if a < 0 {
		return 0, fmt.Errorf("square root of a negative number: %w", models.ErrInvalidInput)
	}
	return math.Sqrt(a), nil
}
