// xor trains a [2, 2, 1] network on the XOR function, saves it, and checks that the saved network
// gives the same error once read back.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	ff "github.com/sharnoff/feedforward"
	"github.com/sharnoff/feedforward/cliutils"
)

const (
	statusFrequency int = 500

	// XOR converges slowly at the library's default learning rate
	defaultRate float64 = 0.1
)

var layout = []int{2, 2, 1}

func dataset() *ff.Dataset {
	ds, err := ff.NewDataset([]ff.Record{
		{Inputs: []float64{0, 0}, Targets: []float64{0}},
		{Inputs: []float64{0, 1}, Targets: []float64{1}},
		{Inputs: []float64{1, 0}, Targets: []float64{1}},
		{Inputs: []float64{1, 1}, Targets: []float64{0}},
	})
	if err != nil {
		panic(err.Error())
	}

	return ds
}

func train(log *logrus.Logger, net *ff.Network, ds *ff.Dataset, args ff.TrainArgs, maxEpochs int, target float64) (float64, error) {
	log.WithFields(logrus.Fields{"target": target, "max epochs": maxEpochs}).Info("Starting training")

	var rms float64
	for epoch := 1; epoch <= maxEpochs; epoch++ {
		if err := net.Train(ds, args); err != nil {
			return 0, err
		}

		var err error
		if rms, err = net.Evaluate(ds); err != nil {
			return 0, err
		}

		if epoch%statusFrequency == 0 {
			log.WithFields(logrus.Fields{"epoch": epoch, "rms": rms}).Info("Status")
		}

		if rms < target {
			log.WithFields(logrus.Fields{"epoch": epoch, "rms": rms}).Info("Reached target")
			return rms, nil
		}
	}

	log.WithField("rms", rms).Warn("Stopped at maximum number of epochs")
	return rms, nil
}

func printOutputs(net *ff.Network, ds *ff.Dataset) error {
	for i := 0; i < ds.Size(); i++ {
		r := ds.Record(i)
		if err := net.Propagate(r.Inputs); err != nil {
			return err
		}

		fmt.Printf("%v -> %.4f (target %v)\n", r.Inputs, net.Results()[0], r.Targets[0])
	}

	return nil
}

func main() {
	f := cliutils.RegisterFlags(flag.CommandLine, defaultRate, ff.DefaultMomentum)
	maxEpochs := flag.Int("epochs", 20000, "Maximum number of passes over the dataset")
	target := flag.Float64("target", 0.1, "RMS error at which to stop training")
	path := flag.String("out", "xor"+ff.NetworkExt, "Where to save the trained network")
	flag.Parse()

	log, closeLog, err := f.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	fail := func(err error, msg string) {
		log.WithError(err).Error(msg)
		closeLog()
		os.Exit(1)
	}

	args, err := f.TrainArgs()
	if err != nil {
		fail(err, "Bad flags")
	}

	net, err := ff.New(layout, f.RNG())
	if err != nil {
		fail(err, "Can't create network")
	}

	ds := dataset()

	rms, err := train(log, net, ds, args, *maxEpochs, *target)
	if err != nil {
		fail(err, "Training failed")
	}

	if err = printOutputs(net, ds); err != nil {
		fail(err, "Computing outputs failed")
	}

	log.WithField("path", *path).Info("Saving network")
	if err = net.SaveFile(*path); err != nil {
		fail(err, "Saving failed")
	}

	loaded, err := ff.OpenNetwork(*path, nil)
	if err != nil {
		fail(err, "Reading saved network failed")
	}

	loadedRMS, err := loaded.Evaluate(ds)
	if err != nil {
		fail(err, "Testing saved network failed")
	}

	acc, err := loaded.Accuracy(ds, ff.CorrectRound)
	if err != nil {
		fail(err, "Testing saved network failed")
	}

	fmt.Printf("RMS error: %g (trained), %g (read from %s)\n", rms, loadedRMS, *path)
	fmt.Printf("Accuracy: %.0f%%\n", acc*100)
}
