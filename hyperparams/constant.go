// Package hyperparams provides the values of the learning rate and momentum given to a
// feedforward.Network during training, as functions of the training iteration.
package hyperparams

import (
	"strconv"
)

type constant float64

// Constant returns a HyperParameter that has the same value at every iteration
func Constant(value float64) *constant {
	c := constant(value)
	return &c
}

func (c *constant) TypeString() string {
	return "constant"
}

func (c *constant) Value(iter int) float64 {
	return float64(*c)
}

func (c *constant) String() string {
	return strconv.FormatFloat(float64(*c), 'g', -1, 64)
}
