package feedforward

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/sharnoff/feedforward/initializers"
)

// Network is a fully-connected feedforward network of tanh Neurons. The zero value is an empty
// Network, which can be filled by reading it from a source. Networks are not safe for concurrent
// use.
type Network struct {
	// each layer ends with its bias neuron
	layers [][]Neuron

	// the number of records trained on, used for the values of hyperparameters
	iter int
}

// New creates a Network with the given layout, where layout[l] is the number of neurons in layer
// l, not counting the bias. The first layer is the input layer and the last is the output layer.
// The weights are set by rng.
//
// New returns ErrMalformedData if the layout is empty, contains a size less than 1, or would need
// more than MaxWeights weights, and a NilArgError if rng is nil.
func New(layout []int, rng initializers.RNG) (*Network, error) {
	if rng == nil {
		return nil, NilArgError{"RNG"}
	}

	if err := checkLayout(layout); err != nil {
		return nil, err
	}

	net := new(Network)
	net.create(layout, rng.Gen)
	return net, nil
}

// MaxWeights is the largest number of weights, counting those from bias neurons, that a Network
// may have
const MaxWeights = 1 << 27

func checkLayout(layout []int) error {
	if len(layout) == 0 {
		return errors.Wrapf(ErrMalformedData, "Network must have at least one layer")
	}

	total := 0
	for l, size := range layout {
		if size < 1 {
			return errors.Wrapf(ErrMalformedData, "Layer %d must have size >= 1 (%d)", l, size)
		} else if size > MaxWeights {
			return errors.Wrapf(ErrMalformedData, "Network is too large: layer %d has %d neurons", l, size)
		}

		if l > 0 {
			// both factors are at most MaxWeights+1, so this can't overflow
			total += size * (layout[l-1] + 1)
			if total > MaxWeights {
				return errors.Wrapf(ErrMalformedData, "Network is too large: more than %d weights", MaxWeights)
			}
		}
	}

	return nil
}

// create replaces the layers of the Network. gen may be nil, in which case all weights are zero.
// create assumes that the layout has already been checked.
func (net *Network) create(layout []int, gen func() float64) {
	net.layers = make([][]Neuron, len(layout))
	net.iter = 0

	for l, size := range layout {
		layer := make([]Neuron, size+1)
		for n := range layer {
			inputs := 0
			if l > 0 && n < size {
				inputs = layout[l-1] + 1
			}

			layer[n] = newNeuron(inputs, n, gen)
		}

		net.layers[l] = layer
	}
}

// Empty returns whether or not the Network has no layers
func (net *Network) Empty() bool {
	return len(net.layers) == 0
}

// Clear removes all layers from the Network, leaving it empty
func (net *Network) Clear() {
	net.layers = nil
	net.iter = 0
}

// NumLayers returns the number of layers, including the input and output layers
func (net *Network) NumLayers() int {
	return len(net.layers)
}

// Layout returns the sizes of each layer, not including the bias neurons. This is the same layout
// that would be given to New to create a Network with the same topology.
func (net *Network) Layout() []int {
	layout := make([]int, len(net.layers))
	for l := range net.layers {
		layout[l] = len(net.layers[l]) - 1
	}

	return layout
}

// LayerSize returns the number of neurons in layer l, including its bias
func (net *Network) LayerSize(l int) int {
	return len(net.layers[l])
}

// Neuron returns the neuron at the given index in layer l. The last neuron of each layer is its
// bias. Neuron panics if either index is out of range.
func (net *Network) Neuron(l, index int) *Neuron {
	return &net.layers[l][index]
}

// InputSize returns the number of values expected by Propagate. It returns 0 if the Network is
// empty.
func (net *Network) InputSize() int {
	if net.Empty() {
		return 0
	}

	return len(net.layers[0]) - 1
}

// OutputSize returns the number of values given by Results, and expected by Backpropagate. It
// returns 0 if the Network is empty.
func (net *Network) OutputSize() int {
	if net.Empty() {
		return 0
	}

	return len(net.layers[len(net.layers)-1]) - 1
}

// Iteration returns the number of records the Network has been trained on since it was created
// (or since ResetIter)
func (net *Network) Iteration() int {
	return net.iter
}

// ResetIter resets the Network's tracked number of iterations to the provided value. This could be
// done to bring HyperParameters that are dependent upon iterations back to an earlier state. The
// given value will usually be zero. ResetIter returns ErrMalformedData if the iteration given is
// less than zero.
func (net *Network) ResetIter(iter int) error {
	if iter < 0 {
		return errors.Wrapf(ErrMalformedData, "Iteration must be >= 0 (%d)", iter)
	}

	net.iter = iter
	return nil
}

// Propagate sets the outputs of the input layer to the given values and computes the outputs of
// every following layer. The results can then be retrieved with Results.
//
// If the number of inputs is not equal to InputSize, a SizeMismatchError is returned and the
// Network is unchanged. If the Network is empty, ErrEmptyNetwork is returned.
func (net *Network) Propagate(inputs []float64) error {
	if net.Empty() {
		return ErrEmptyNetwork
	} else if len(inputs) != net.InputSize() {
		return SizeMismatchError{net.InputSize(), len(inputs), "inputs"}
	}

	// the bias of the input layer is left as-is
	for i, v := range inputs {
		net.layers[0][i].output = v
	}

	for l := 1; l < len(net.layers); l++ {
		prev, layer := net.layers[l-1], net.layers[l]
		for n := 0; n < len(layer)-1; n++ {
			layer[n].computeOutput(prev)
		}
	}

	return nil
}

// Backpropagate computes the gradient of every neuron given the target outputs for the most recent
// call to Propagate, and then adjusts all of the weights in the Network.
//
// Every gradient is computed before any weights are changed, because the gradients of hidden
// layers are computed through the weights of the layers after them.
//
// If the number of targets is not equal to OutputSize, a SizeMismatchError is returned and the
// Network is unchanged.
func (net *Network) Backpropagate(targets []float64, learningRate, momentum float64) error {
	if net.Empty() {
		return ErrEmptyNetwork
	} else if len(targets) != net.OutputSize() {
		return SizeMismatchError{net.OutputSize(), len(targets), "targets"}
	}

	last := len(net.layers) - 1

	out := net.layers[last]
	for n := 0; n < len(out)-1; n++ {
		out[n].computeOutputGradient(targets[n])
	}

	// the input layer has no weights, so its gradients are never needed
	for l := last - 1; l > 0; l-- {
		layer, next := net.layers[l], net.layers[l+1]
		for n := 0; n < len(layer)-1; n++ {
			layer[n].computeHiddenGradient(next)
		}
	}

	for l := 1; l <= last; l++ {
		prev, layer := net.layers[l-1], net.layers[l]
		for n := 0; n < len(layer)-1; n++ {
			layer[n].updateIncomingWeights(prev, learningRate, momentum)
		}
	}

	return nil
}

// Results returns a copy of the current outputs of the Network, not including the bias of the
// output layer. The values are only meaningful after a call to Propagate. Results returns nil if
// the Network is empty.
func (net *Network) Results() []float64 {
	if net.Empty() {
		return nil
	}

	out := net.layers[len(net.layers)-1]
	results := make([]float64, len(out)-1)
	for n := range results {
		results[n] = out[n].output
	}

	return results
}

// AggregateSquareError returns the sum of the squared differences between the current outputs of
// the Network and the given targets.
func (net *Network) AggregateSquareError(targets []float64) (float64, error) {
	if net.Empty() {
		return 0, ErrEmptyNetwork
	} else if len(targets) != net.OutputSize() {
		return 0, SizeMismatchError{net.OutputSize(), len(targets), "targets"}
	}

	d := floats.Distance(net.Results(), targets, 2)
	return d * d, nil
}
