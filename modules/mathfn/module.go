// Package mathfn registers arithmetic functions under the "math." prefix.
package mathfn

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/fnreg/internal/adapt"
	"github.com/specialistvlad/fnreg/internal/registry"
)

var (
	// ErrDivisionByZero is returned by math.div for a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrOverflow is returned by math.add when the sum does not fit in an int.
	ErrOverflow = errors.New("integer overflow")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Add returns a + b. Arguments must be whole numbers.
func Add(a, b int) (int, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return sum, nil
}

// Mul returns a * b.
func Mul(a, b float64) float64 { return a * b }

// Div returns a / b.
func Div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Sqrt returns the square root of x.
func Sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, errors.New("square root of a negative number")
	}
	return math.Sqrt(x), nil
}

// Sum adds up every element of xs.
func Sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// Register registers the functions with the table.
func (m *Module) Register(t *registry.Table) {
	t.MustRegister("math.add").SetAdaptedBody(adapt.FuncE2(Add))
	t.MustRegister("math.mul").SetAdaptedBody(adapt.Func2(Mul))
	t.MustRegister("math.div").SetAdaptedBody(adapt.FuncE2(Div))
	t.MustRegister("math.sqrt").SetAdaptedBody(adapt.FuncE1(Sqrt))
	t.MustRegister("math.max").SetAdaptedBody(adapt.Func2(math.Max))
	t.MustRegister("math.sum").SetAdaptedBody(adapt.Func1(Sum))
}
