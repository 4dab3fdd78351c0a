package feedforward

import (
	"math"

	"github.com/pkg/errors"

	"github.com/sharnoff/feedforward/hyperparams"
)

// HyperParameter gives the value of the learning rate or momentum at a certain training
// iteration. The subpackage hyperparams provides the usual implementations.
type HyperParameter interface {
	Value(iter int) float64
}

// TrainArgs are the hyperparameters used by TrainRecord and Train. Neither may be nil.
type TrainArgs struct {
	LearningRate HyperParameter
	Momentum     HyperParameter
}

const (
	// DefaultLearningRate is the learning rate given by DefaultTrainArgs
	DefaultLearningRate float64 = 0.01
	// DefaultMomentum is the momentum given by DefaultTrainArgs
	DefaultMomentum float64 = 0.5
)

// DefaultTrainArgs returns constant hyperparameters of DefaultLearningRate and DefaultMomentum
func DefaultTrainArgs() TrainArgs {
	return TrainArgs{
		LearningRate: hyperparams.Constant(DefaultLearningRate),
		Momentum:     hyperparams.Constant(DefaultMomentum),
	}
}

func (args TrainArgs) check() error {
	if args.LearningRate == nil {
		return NilArgError{"TrainArgs.LearningRate"}
	} else if args.Momentum == nil {
		return NilArgError{"TrainArgs.Momentum"}
	}

	return nil
}

// Fits indicates whether or not a given Record's dimensions match those of the Network, allowing
// it to be used for training or testing.
func (r Record) Fits(net *Network) bool {
	return !net.Empty() && len(r.Inputs) == net.InputSize() && len(r.Targets) == net.OutputSize()
}

// fits checks the arity of a non-empty Dataset against the Network
func (net *Network) fits(ds *Dataset) error {
	if net.Empty() {
		return ErrEmptyNetwork
	}

	in, _ := ds.InputSize()
	out, _ := ds.OutputSize()

	if in != net.InputSize() {
		return SizeMismatchError{net.InputSize(), in, "dataset inputs"}
	} else if out != net.OutputSize() {
		return SizeMismatchError{net.OutputSize(), out, "dataset targets"}
	}

	return nil
}

// TrainRecord propagates the record's inputs through the Network and then backpropagates its
// targets, with the learning rate and momentum given by args at the Network's current iteration.
// The iteration is incremented afterwards.
func (net *Network) TrainRecord(r Record, args TrainArgs) error {
	if err := args.check(); err != nil {
		return err
	}

	if err := net.Propagate(r.Inputs); err != nil {
		return errors.Wrapf(err, "Propagating record failed")
	}

	lr, m := args.LearningRate.Value(net.iter), args.Momentum.Value(net.iter)
	if err := net.Backpropagate(r.Targets, lr, m); err != nil {
		return errors.Wrapf(err, "Backpropagating record failed")
	}

	net.iter++
	return nil
}

// Train trains the Network on every record in the Dataset, in order, once. Training on an empty
// Dataset does nothing.
//
// If the sizes of the Dataset's records do not match the Network, a SizeMismatchError is returned
// before any weights are changed.
func (net *Network) Train(ds *Dataset, args TrainArgs) error {
	if ds == nil {
		return NilArgError{"Dataset"}
	} else if err := args.check(); err != nil {
		return err
	} else if ds.Empty() {
		return nil
	}

	if err := net.fits(ds); err != nil {
		return errors.Wrapf(err, "Can't train on dataset")
	}

	for i, r := range ds.records {
		if err := net.TrainRecord(r, args); err != nil {
			return errors.Wrapf(err, "Training on record %d failed", i)
		}
	}

	return nil
}

// Evaluate returns the root mean square error of the Network's outputs over every record of the
// Dataset, per output value and per record:
//
//	sqrt(Σ (output - target)² / (records × outputs))
//
// The weights of the Network are not changed.
//
// Evaluate returns ErrEmptyDataset if the Dataset has no records, and a SizeMismatchError if its
// records do not match the Network.
func (net *Network) Evaluate(ds *Dataset) (float64, error) {
	if ds == nil {
		return 0, NilArgError{"Dataset"}
	} else if ds.Empty() {
		return 0, ErrEmptyDataset
	}

	if err := net.fits(ds); err != nil {
		return 0, errors.Wrapf(err, "Can't evaluate on dataset")
	}

	var total float64
	for i, r := range ds.records {
		if err := net.Propagate(r.Inputs); err != nil {
			return 0, errors.Wrapf(err, "Propagating record %d failed", i)
		}

		e, err := net.AggregateSquareError(r.Targets)
		if err != nil {
			return 0, errors.Wrapf(err, "Getting error of record %d failed", i)
		}

		total += e
	}

	return math.Sqrt(total / float64(ds.Size()) / float64(net.OutputSize())), nil
}
