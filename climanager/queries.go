package climanager

import (
	"strconv"

	"github.com/pkg/errors"
)

// parseCount reads a strictly positive integer from the argument. 'what' names the argument in
// the returned error.
func parseCount(arg, what string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Errorf("Enter a valid value. Error at: %s (%q is not an integer)", what, arg)
	} else if v < 1 {
		return 0, errors.Errorf("Enter a valid value. Error at: %s (must be >= 1, given %d)", what, v)
	}

	return v, nil
}

// parseFloats reads every argument as a floating point number
func parseFloats(args []string) ([]float64, error) {
	vs := make([]float64, len(args))
	for i, a := range args {
		var err error
		if vs[i], err = strconv.ParseFloat(a, 64); err != nil {
			return nil, errors.Errorf("The input is wrong. Error at: value %d (%q is not a number)", i, a)
		}
	}

	return vs, nil
}

// checkArgs returns an error if the number of arguments is outside of [min, max]. A max of -1
// means there is no upper limit.
func checkArgs(args []string, min, max int, usage string) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return errors.Errorf("Wrong number of arguments. Usage: %s", usage)
	}

	return nil
}
