package hyperparams

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HyperParameter is the set of methods shared by all of the types in this package. It is a
// superset of feedforward.HyperParameter.
type HyperParameter interface {
	Value(iter int) float64
	TypeString() string
	String() string
}

// Parse builds a HyperParameter from its string form. Two forms are accepted:
//
//	0.01                   - Constant(0.01)
//	step:0.1,1000=0.05     - Step(0.1).Add(1000, 0.05)
//
// Any number of steps may be given. Values may not be NaN or infinite.
func Parse(str string) (HyperParameter, error) {
	str = strings.TrimSpace(str)

	if !strings.HasPrefix(str, "step:") {
		v, err := parseValue(str)
		if err != nil {
			return nil, err
		}

		return Constant(v), nil
	}

	parts := strings.Split(strings.TrimPrefix(str, "step:"), ",")

	base, err := parseValue(parts[0])
	if err != nil {
		return nil, errors.Wrapf(err, "Can't parse base of step %q", str)
	}

	s := Step(base)
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return nil, errors.Errorf("Can't parse step %q, expected <iteration>=<value>", p)
		}

		iter, err := strconv.Atoi(strings.TrimSpace(kv[0]))
		if err != nil || iter < 0 {
			return nil, errors.Errorf("Can't parse step %q, iteration must be a non-negative integer", p)
		}

		v, err := parseValue(kv[1])
		if err != nil {
			return nil, errors.Wrapf(err, "Can't parse step %q", p)
		}

		s.Add(iter, v)
	}

	return s, nil
}

func parseValue(str string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, errors.Errorf("%q is not a number", str)
	} else if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("Value is invalid (%v)", v)
	}

	return v, nil
}
