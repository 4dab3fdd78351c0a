package feedforward

import (
	"math"
)

// Neuron is a single unit of a layer. Neurons are only ever addressed as a (layer, index) pair
// within a Network; the index is stored so that a Neuron can find its outgoing weights in the
// next layer.
//
// The last Neuron of every layer is the bias. It has no incoming connections and its output is
// always 1, because propagation never writes to it.
type Neuron struct {
	output   float64
	gradient float64
	incoming []Connection
	index    int
}

// newNeuron returns a Neuron with 'inputs' incoming connections, each with weights from gen. gen
// may be nil if inputs is zero, or if the weights will be set afterwards.
func newNeuron(inputs, index int, gen func() float64) Neuron {
	n := Neuron{
		output:   1.0,
		gradient: 0.0,
		index:    index,
	}

	if inputs > 0 {
		n.incoming = make([]Connection, inputs)
		if gen != nil {
			for i := range n.incoming {
				n.incoming[i].Weight = gen()
			}
		}
	}

	return n
}

// Output returns the most recently computed (or set) output of the Neuron
func (n *Neuron) Output() float64 {
	return n.output
}

// Gradient returns the most recently computed gradient of the Neuron
func (n *Neuron) Gradient() float64 {
	return n.gradient
}

// Index returns the position of the Neuron within its layer
func (n *Neuron) Index() int {
	return n.index
}

// NumInputs returns the number of incoming connections
func (n *Neuron) NumInputs() int {
	return len(n.incoming)
}

// Weights returns a copy of the weights of the incoming connections, in the order of the neurons
// in the previous layer.
func (n *Neuron) Weights() []float64 {
	ws := make([]float64, len(n.incoming))
	for i := range n.incoming {
		ws[i] = n.incoming[i].Weight
	}

	return ws
}

// Weight returns the weight of the connection from neuron 'from' of the previous layer. It panics
// if 'from' is out of range.
func (n *Neuron) Weight(from int) float64 {
	return n.incoming[from].Weight
}

// setWeights assumes len(ws) == len(n.incoming)
func (n *Neuron) setWeights(ws []float64) {
	for i := range n.incoming {
		n.incoming[i].Weight = ws[i]
	}
}

// the derivative of tanh(x) is 1 - tanh(x)^2
//
// it is given the stored output, which is passed through tanh again before squaring
func transferDerivative(output float64) float64 {
	t := math.Tanh(output)
	return 1 - t*t
}

// computeOutput assumes len(prev) == len(n.incoming)
func (n *Neuron) computeOutput(prev []Neuron) {
	var sum float64
	for i := range prev {
		sum += prev[i].output * n.incoming[i].Weight
	}

	n.output = math.Tanh(sum)
}

func (n *Neuron) computeOutputGradient(target float64) {
	n.gradient = (target - n.output) * transferDerivative(n.output)
}

// computeHiddenGradient sums over all of next except its bias, which has no incoming connections
func (n *Neuron) computeHiddenGradient(next []Neuron) {
	var sum float64
	for i := 0; i < len(next)-1; i++ {
		sum += next[i].incoming[n.index].Weight * next[i].gradient
	}

	n.gradient = sum * transferDerivative(n.output)
}

func (n *Neuron) updateIncomingWeights(prev []Neuron, learningRate, momentum float64) {
	for i := range prev {
		c := &n.incoming[i]

		delta := learningRate*prev[i].output*n.gradient + momentum*c.Delta
		c.Delta = delta
		c.Weight += delta
	}
}
