package provider

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	op "github.com/XJIeI5/calculator/internal/operation"
)

func realOperations() map[string]op.Operation[float64] {
	return map[string]op.Operation[float64]{
		"+":      op.NewBinary(func(a, b float64) float64 { return a + b }),
		"-":      op.NewBinary(func(a, b float64) float64 { return a - b }),
		"*":      op.NewBinary(func(a, b float64) float64 { return a * b }),
		"/":      op.NewBinary(func(a, b float64) float64 { return a / b }),
		"^":      op.NewBinary(math.Pow),
		"sin":    op.NewUnary(math.Sin),
		"cos":    op.NewUnary(math.Cos),
		"to-deg": op.NewUnary(func(a float64) float64 { return a * 180 / math.Pi }),
		"to-rad": op.NewUnary(func(a float64) float64 { return a / 180 * math.Pi }),
		"ln":     op.NewUnary(math.Log),
		"lg":     op.NewUnary(math.Log10),
		"sqrt":   op.NewUnary(math.Sqrt),
		"PI":     op.NewNullary(func() float64 { return math.Pi }),
		"E":      op.NewNullary(func() float64 { return math.E }),
	}
}

// NewReal returns a registry over float64 with the arithmetic operators,
// the elementary functions and the PI and E constants.
func NewReal() *Registry[float64] {
	return NewRegistry(ParseReal, realOperations())
}

// ParseReal reads a decimal or scientific literal. Out of range literals
// become infinities.
func ParseReal(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q is not a real number", ErrNumberFormat, token)
	}
	return v, nil
}

func FormatReal(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
