package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimgiray/persondir/internal/models"
)

func TestIsNumeric(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"10", true},
		{"-3", true},
		{"+3", true},
		{"2.5", true},
		{"2,5", true},
		{".5", true},
		{"", false},
		{"abc", false},
		{"1e3", false},
		{"1.", false},
		{"1.2.3", false},
		{" 1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNumeric(tc.input))
		})
	}
}

func TestConvertToDouble(t *testing.T) {
	value, err := ConvertToDouble("2,5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, value)

	_, err = ConvertToDouble("two")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestMathOperations(t *testing.T) {
	service := NewMathService()

	assert.Equal(t, 8.0, service.Sum(5, 3))
	assert.Equal(t, 2.0, service.Subtract(5, 3))
	assert.Equal(t, 15.0, service.Multiply(5, 3))
	assert.Equal(t, 4.0, service.Average(5, 3))

	quotient, err := service.Divide(6, 3)
	require.NoError(t, err)
	assert.Equal(t, 2.0, quotient)

	root, err := service.SquareRoot(81)
	require.NoError(t, err)
	assert.Equal(t, 9.0, root)
}

func TestMathEdgeCases(t *testing.T) {
	service := NewMathService()

	t.Run("Division by zero", func(t *testing.T) {
		_, err := service.Divide(1, 0)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("Square root of negative number", func(t *testing.T) {
		_, err := service.SquareRoot(-4)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("Square root of zero", func(t *testing.T) {
		root, err := service.SquareRoot(0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, root)
	})
}
