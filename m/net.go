package m

import (
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Network is a fully connected feed-forward network operating on single
// row vectors. Layer 0 is closest to the input.
type Network struct {
	weights   []*mat.Dense
	biases    []*mat.Dense
	activator Activator
	src       rand.Source
}

// NewNetwork builds a single-layer network mapping inputSize values to
// outputSize values. Weights are drawn from Uniform[-1, 1) using src (the
// global source when nil) and biases start at zero.
func NewNetwork(inputSize, outputSize int, src rand.Source) (*Network, error) {
	if inputSize <= 0 || outputSize <= 0 {
		return nil, fmt.Errorf("%w: input=%d output=%d", ErrInvalidSize, inputSize, outputSize)
	}
	return &Network{
		weights:   []*mat.Dense{randomDense(inputSize, outputSize, src)},
		biases:    []*mat.Dense{mat.NewDense(1, outputSize, nil)},
		activator: LeakyReLU{Slope: DefaultSlope},
		src:       src,
	}, nil
}

func (net *Network) lastIndex() int {
	return len(net.weights) - 1
}

func (net *Network) InputSize() int {
	r, _ := net.weights[0].Dims()
	return r
}

func (net *Network) OutputSize() int {
	_, c := net.weights[net.lastIndex()].Dims()
	return c
}

func (net *Network) NumLayers() int {
	return len(net.weights)
}

// Layer returns copies of the weight matrix and bias row of layer i.
func (net *Network) Layer(i int) (weights, bias mat.Matrix) {
	return mat.DenseCopyOf(net.weights[i]), mat.DenseCopyOf(net.biases[i])
}

// AddHiddenLayer widens the network by one layer of the given size right
// after layer `after`. Layer `after` is re-created to map its original input
// width to neurons with fresh random weights; whatever it had learned is
// discarded. The new layer maps neurons to the original output width and
// inherits the bias row that layer `after` had, while the re-created layer
// starts from a zero bias.
func (net *Network) AddHiddenLayer(neurons, after int) error {
	if after < 0 || after >= len(net.weights) {
		return fmt.Errorf("%w: %d (network has %d layers)", ErrInvalidLayerIndex, after, len(net.weights))
	}
	if neurons <= 0 {
		return fmt.Errorf("%w: hidden layer with %d neurons", ErrInvalidSize, neurons)
	}

	inputSize, outputSize := net.weights[after].Dims()

	net.weights[after] = randomDense(inputSize, neurons, net.src)
	net.weights = slices.Insert(net.weights, after+1, randomDense(neurons, outputSize, net.src))
	net.biases = slices.Insert(net.biases, after, mat.NewDense(1, neurons, nil))
	return nil
}

// Forward evaluates the network for a 1×InputSize() row and returns the
// post-activation output of every layer. The last entry is the prediction.
func (net *Network) Forward(x mat.Matrix) ([]*mat.Dense, error) {
	if err := checkRow("input", x, net.InputSize()); err != nil {
		return nil, err
	}

	activations := make([]*mat.Dense, len(net.weights))
	current := x
	for i := range net.weights {
		sum := add(dot(current, net.weights[i]), net.biases[i])
		activations[i] = apply(net.activator.Activate, sum)
		current = activations[i]
	}
	return activations, nil
}

// Backward runs one gradient descent step for a single input/target pair
// using the activations a previous Forward call produced for x. Weights and
// biases are updated in place from the output layer back to the input.
func (net *Network) Backward(x, y mat.Matrix, activations []*mat.Dense, learningRate float64) error {
	if err := net.checkBackward(x, y, activations); err != nil {
		return err
	}

	errs := subtract(activations[net.lastIndex()], y)
	for i := net.lastIndex(); i >= 0; i-- {
		var input mat.Matrix = x
		if i > 0 {
			input = activations[i-1]
		}

		weightGradient := dot(input.T(), errs)
		biasGradient := sumColumns(errs)

		// propagate through W[i] before it is updated
		var propagated *mat.Dense
		if i > 0 {
			propagated = multiply(dot(errs, net.weights[i].T()), net.activator.Deactivate(activations[i-1]))
		}

		net.weights[i].Sub(net.weights[i], scale(learningRate, weightGradient))
		net.biases[i].Sub(net.biases[i], scale(learningRate, biasGradient))

		errs = propagated
	}
	return nil
}

func (net *Network) checkBackward(x, y mat.Matrix, activations []*mat.Dense) error {
	if err := checkRow("input", x, net.InputSize()); err != nil {
		return err
	}
	if err := checkRow("target", y, net.OutputSize()); err != nil {
		return err
	}
	if len(activations) != len(net.weights) {
		return fmt.Errorf("%w: %d cached activations for %d layers", ErrShapeMismatch, len(activations), len(net.weights))
	}
	for i, a := range activations {
		_, width := net.weights[i].Dims()
		if a == nil {
			return fmt.Errorf("%w: activation %d is missing", ErrShapeMismatch, i)
		}
		if err := checkRow(fmt.Sprintf("activation %d", i), a, width); err != nil {
			return err
		}
	}
	return nil
}

func checkRow(name string, a mat.Matrix, width int) error {
	r, c := a.Dims()
	if r != 1 || c != width {
		return fmt.Errorf("%w: %s is %dx%d, want 1x%d", ErrShapeMismatch, name, r, c, width)
	}
	return nil
}
