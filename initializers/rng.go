// Package initializers provides the random number generators that set the starting weights of a
// feedforward.Network.
package initializers

import (
	"math/rand"
)

// RNG needs no explanation
type RNG interface {
	Gen() float64
}

type uniform struct {
	lower, upper float64
	r            *rand.Rand
}

// Uniform returns an RNG that gives values uniformly spread on the open interval between its
// bounds, which can be set by Bounds. The default bounds are given by "uniform-lower" and
// "uniform-upper", which can be changed with SetDefault.
//
// Uniform will panic if r is nil.
func Uniform(r *rand.Rand) *uniform {
	if r == nil {
		panic("initializers: random source is nil")
	}

	return &uniform{defaultValue["uniform-lower"], defaultValue["uniform-upper"], r}
}

// Bounds sets the range of a Uniform RNG, returning it.
func (u *uniform) Bounds(lower, upper float64) *uniform {
	if lower > upper {
		lower, upper = upper, lower
	}

	u.lower = lower
	u.upper = upper
	return u
}

// Gen is the implementation of RNG for Uniform. It returns a random number.
func (u *uniform) Gen() float64 {
	for {
		// r.Float64() is on [0, 1), so only the lower bound needs to be discarded
		w := u.r.Float64()*(u.upper-u.lower) + u.lower
		if w == u.lower && u.lower != u.upper {
			continue
		}

		return w
	}
}

type constant float64

// Constant returns an RNG that always gives the same value. It is mostly useful for tests, where
// the weights of a Network should be known.
func Constant(value float64) constant {
	return constant(value)
}

// Gen is the implementation of RNG for Constant
func (c constant) Gen() float64 {
	return float64(c)
}

type sequence struct {
	values []float64
	next   int
}

// Sequence returns an RNG that cycles through the given values, in order. Sequence panics if no
// values are given.
func Sequence(values ...float64) *sequence {
	if len(values) == 0 {
		panic("initializers: Sequence given no values")
	}

	return &sequence{values: values}
}

// Gen is the implementation of RNG for Sequence
func (s *sequence) Gen() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}
