// mnist converts the MNIST handwritten digit files into datasets that can be read by feedforward.
//
// The directory given by -dir must contain the four files from the MNIST site, still gzipped:
//
//	train-images-idx3-ubyte.gz, train-labels-idx1-ubyte.gz
//	t10k-images-idx3-ubyte.gz, t10k-labels-idx1-ubyte.gz
//
// Each record of the output has one input per pixel, scaled to [0, 1], and one target per digit,
// which is 1 for the correct digit and 0 otherwise.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/petar/GoMNIST"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	ff "github.com/sharnoff/feedforward"
	"github.com/sharnoff/feedforward/cliutils"
)

const (
	numClasses int     = 10 // 0 -> 9
	maxInput   float64 = 255
)

// convert turns the first 'limit' images of the set into a Dataset. A limit of zero (or one
// greater than the size of the set) converts all of them.
func convert(set *GoMNIST.Set, limit int) (*ff.Dataset, error) {
	n := set.Count()
	if limit > 0 && limit < n {
		n = limit
	}

	records := make([]ff.Record, n)
	for i := range records {
		img, label := set.Get(i)
		if int(label) >= numClasses {
			return nil, errors.Errorf("Label of image %d is out of bounds (%d >= %d)", i, label, numClasses)
		}

		ins := make([]float64, len(img))
		for p, v := range img {
			ins[p] = float64(v) / maxInput
		}

		outs := make([]float64, numClasses)
		outs[label] = 1

		records[i] = ff.Record{Inputs: ins, Targets: outs}
	}

	return ff.NewDataset(records)
}

func save(log *logrus.Logger, set *GoMNIST.Set, limit int, path string) error {
	ds, err := convert(set, limit)
	if err != nil {
		return err
	}

	if err = ds.SaveFile(path); err != nil {
		return err
	}

	in, _ := ds.InputSize()
	log.WithFields(logrus.Fields{"path": path, "records": ds.Size(), "inputs": in}).Info("Wrote dataset")
	return nil
}

func main() {
	f := cliutils.RegisterLogFlags(flag.CommandLine)
	dir := flag.String("dir", "resources", "Directory containing the MNIST files")
	out := flag.String("out", ".", "Directory to write train.set and test.set to")
	limit := flag.Int("limit", 0, "Maximum number of images to convert from each file (0 for all)")
	flag.Parse()

	log, closeLog, err := f.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	log.WithField("dir", *dir).Info("Loading MNIST")
	train, test, err := GoMNIST.Load(*dir)
	if err != nil {
		log.WithError(err).Error("Can't load MNIST files")
		closeLog()
		os.Exit(1)
	}

	sets := []struct {
		set  *GoMNIST.Set
		name string
	}{
		{train, "train" + ff.DatasetExt},
		{test, "test" + ff.DatasetExt},
	}

	for _, s := range sets {
		if err = save(log, s.set, *limit, filepath.Join(*out, s.name)); err != nil {
			log.WithError(err).WithField("set", s.name).Error("Can't convert set")
			closeLog()
			os.Exit(1)
		}
	}
}
