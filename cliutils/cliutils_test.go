package cliutils

import (
	"bytes"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs, 0.2, 0.5)

	if err := fs.Parse([]string{"-rate", "step:0.1,100=0.01", "-seed", "7"}); err != nil {
		t.Fatal(err)
	}

	args, err := f.TrainArgs()
	if err != nil {
		t.Fatal(err)
	}

	if v := args.LearningRate.Value(99); v != 0.1 {
		t.Errorf("Learning rate at 99 = %v, want 0.1", v)
	}
	if v := args.LearningRate.Value(100); v != 0.01 {
		t.Errorf("Learning rate at 100 = %v, want 0.01", v)
	}
	if v := args.Momentum.Value(0); v != 0.5 {
		t.Errorf("Default momentum = %v, want 0.5", v)
	}

	a, b := f.RNG(), f.RNG()
	if a.Gen() != b.Gen() {
		t.Errorf("RNGs with the same seed differ")
	}

	f.Momentum = "fast"
	if _, err = f.TrainArgs(); err == nil {
		t.Errorf("TrainArgs with bad momentum succeeded")
	}

	if fs.Lookup("v") == nil || fs.Lookup("log") == nil {
		t.Errorf("RegisterFlags did not add the logging flags")
	}
}

func TestLogFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := RegisterLogFlags(fs)

	for _, name := range []string{"rate", "momentum", "seed"} {
		if fs.Lookup(name) != nil {
			t.Errorf("RegisterLogFlags added -%s", name)
		}
	}

	if err := fs.Parse([]string{"-v", "3"}); err != nil {
		t.Fatal(err)
	}

	if f.Verbosity != 3 || f.LogPath != "" {
		t.Errorf("Parsed flags = %+v", *f)
	}

	if err := fs.Parse([]string{"-rate", "0.1"}); err == nil {
		t.Errorf("Parsing -rate succeeded without the training flags")
	}
}

func TestLogger(t *testing.T) {
	levels := map[int]logrus.Level{
		0:  logrus.PanicLevel,
		1:  logrus.ErrorLevel,
		2:  logrus.InfoLevel,
		3:  logrus.DebugLevel,
		4:  logrus.TraceLevel,
		17: logrus.InfoLevel,
	}

	for v, want := range levels {
		if got := Level(v); got != want {
			t.Errorf("Level(%d) = %v, want %v", v, got, want)
		}
	}

	var buf bytes.Buffer
	log := NewLogger(1, &buf)
	log.Info("hidden")
	log.Error("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("Logger at verbosity 1 wrote %q", buf.String())
	}

	f := &LogFlags{Verbosity: 2, LogPath: filepath.Join(t.TempDir(), "run.log")}
	fileLog, closeLog, err := f.Logger()
	if err != nil {
		t.Fatal(err)
	}

	fileLog.Info("to file")
	if err = closeLog(); err != nil {
		t.Error(err)
	}
}
