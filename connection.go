package feedforward

// Connection is a single weighted edge into a Neuron, from one Neuron of the previous layer.
//
// Delta is the most recent change applied to Weight. It is carried into the next update, scaled by
// the momentum.
type Connection struct {
	Weight float64
	Delta  float64
}
