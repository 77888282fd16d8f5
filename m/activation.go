package m

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Activator is an element-wise nonlinearity. Deactivate returns the
// derivative evaluated from post-activation values, which is all the
// backward pass keeps around.
type Activator interface {
	Activate(i, j int, sum float64) float64
	Deactivate(m mat.Matrix) mat.Matrix
	fmt.Stringer
}

// DefaultSlope is the negative-side slope used by the network.
const DefaultSlope = 0.01

// LeakyReLU passes positive values through and scales the rest by Slope.
type LeakyReLU struct {
	Slope float64
}

func (r LeakyReLU) Activate(i, j int, sum float64) float64 {
	if sum > 0 {
		return sum
	}
	return r.Slope * sum
}

// Derivative is 1 for positive v and Slope otherwise. The sign of a
// leaky activation matches the sign of its input, so the same rule holds
// whether v is taken before or after activation.
func (r LeakyReLU) Derivative(v float64) float64 {
	if v > 0 {
		return 1
	}
	return r.Slope
}

func (r LeakyReLU) Deactivate(matrix mat.Matrix) mat.Matrix {
	return apply(func(_, _ int, v float64) float64 {
		return r.Derivative(v)
	}, matrix)
}

func (r LeakyReLU) String() string {
	return fmt.Sprintf("leaky_relu(%g)", r.Slope)
}
