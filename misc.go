package feedforward

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// CorrectFunc decides whether the outputs of a Network are correct for the given targets. It
// may assume len(outs) == len(targets).
type CorrectFunc func(outs, targets []float64) bool

// CorrectRound returns true if every output is on the same side of 0.5 as its target
func CorrectRound(outs, targets []float64) bool {
	for i := range outs {
		if (outs[i] >= 0.5) != (targets[i] >= 0.5) {
			return false
		}
	}

	return true
}

// CorrectHighest returns whether or not the largest value in each is at the same index. It is
// intended for one-hot targets.
func CorrectHighest(outs, targets []float64) bool {
	return floats.MaxIdx(outs) == floats.MaxIdx(targets)
}

// Accuracy returns the fraction of records in the Dataset for which the outputs of the Network
// are correct, as decided by 'correct'. Like Evaluate, the weights are not changed.
//
// Accuracy returns ErrEmptyDataset if the Dataset has no records, and a SizeMismatchError if its
// records do not match the Network.
func (net *Network) Accuracy(ds *Dataset, correct CorrectFunc) (float64, error) {
	if ds == nil {
		return 0, NilArgError{"Dataset"}
	} else if correct == nil {
		return 0, NilArgError{"CorrectFunc"}
	} else if ds.Empty() {
		return 0, ErrEmptyDataset
	}

	if err := net.fits(ds); err != nil {
		return 0, errors.Wrapf(err, "Can't test accuracy on dataset")
	}

	numCorrect := 0
	for i, r := range ds.records {
		if err := net.Propagate(r.Inputs); err != nil {
			return 0, errors.Wrapf(err, "Propagating record %d failed", i)
		}

		if correct(net.Results(), r.Targets) {
			numCorrect++
		}
	}

	return float64(numCorrect) / float64(ds.Size()), nil
}
