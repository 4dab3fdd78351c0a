// Package cliutils holds the setup shared by the feedforward commands: the training flags and the
// logger.
package cliutils

import (
	"flag"
	"math/rand"
	"strconv"
	"time"

	"github.com/pkg/errors"

	ff "github.com/sharnoff/feedforward"
	"github.com/sharnoff/feedforward/hyperparams"
	"github.com/sharnoff/feedforward/initializers"
)

// LogFlags are the values of the flags added by RegisterLogFlags, once parsed
type LogFlags struct {
	Verbosity int
	LogPath   string
}

// RegisterLogFlags adds only the logging flags, -v and -log, to the FlagSet
func RegisterLogFlags(fs *flag.FlagSet) *LogFlags {
	f := new(LogFlags)

	fs.IntVar(&f.Verbosity, "v", 2, "Verbosity level (0=none, 1=error, 2=info, 3=debug, 4=trace)")
	fs.StringVar(&f.LogPath, "log", "", "Log file path (default: stderr)")

	return f
}

// Flags are the values of the flags added by RegisterFlags, once parsed
type Flags struct {
	*LogFlags

	Rate     string
	Momentum string
	Seed     int64
}

// RegisterFlags adds the training and logging flags to the FlagSet, using the given defaults for
// the learning rate and momentum. The returned Flags are filled when the FlagSet is parsed.
func RegisterFlags(fs *flag.FlagSet, rate, momentum float64) *Flags {
	f := &Flags{LogFlags: RegisterLogFlags(fs)}

	fs.StringVar(&f.Rate, "rate", formatFloat(rate), "Learning rate, either a value or a step function (eg. \"step:0.1,1000=0.05\")")
	fs.StringVar(&f.Momentum, "momentum", formatFloat(momentum), "Momentum, in the same form as -rate")
	fs.Int64Var(&f.Seed, "seed", 0, "Seed for the initial weights (default: from the current time)")

	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// TrainArgs parses the learning rate and momentum flags
func (f *Flags) TrainArgs() (ff.TrainArgs, error) {
	rate, err := hyperparams.Parse(f.Rate)
	if err != nil {
		return ff.TrainArgs{}, errors.Wrapf(err, "Bad value for -rate")
	}

	momentum, err := hyperparams.Parse(f.Momentum)
	if err != nil {
		return ff.TrainArgs{}, errors.Wrapf(err, "Bad value for -momentum")
	}

	return ff.TrainArgs{LearningRate: rate, Momentum: momentum}, nil
}

// RNG returns a Uniform RNG seeded by the -seed flag. A seed of zero uses the current time.
func (f *Flags) RNG() initializers.RNG {
	seed := f.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return initializers.Uniform(rand.New(rand.NewSource(seed)))
}
