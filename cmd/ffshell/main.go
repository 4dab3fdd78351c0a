// ffshell is an interactive shell for creating, training and testing feedforward networks. Commands
// are read from standard input, or from the files given as arguments. Type "help" for the list of
// commands.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	ff "github.com/sharnoff/feedforward"
	"github.com/sharnoff/feedforward/climanager"
	"github.com/sharnoff/feedforward/cliutils"
)

func main() {
	f := cliutils.RegisterFlags(flag.CommandLine, ff.DefaultLearningRate, ff.DefaultMomentum)
	quiet := flag.Bool("q", false, "Don't print a prompt before each command")
	flag.Parse()

	log, closeLog, err := f.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	args, err := f.TrainArgs()
	if err != nil {
		log.WithError(err).Error("Bad flags")
		os.Exit(2)
	}

	conf := climanager.Config{
		Args:   args,
		RNG:    f.RNG(),
		Logger: log,
		Prompt: "> ",
	}
	if *quiet || flag.NArg() > 0 {
		conf.Prompt = ""
	}

	m := climanager.New(os.Stdout, conf)

	if flag.NArg() == 0 {
		if err = m.Run(os.Stdin); err != nil {
			log.WithError(err).Error("Shell stopped")
			os.Exit(1)
		}
		return
	}

	// "end" in any script ends the session
	for _, path := range flag.Args() {
		if err = runScript(m, path, log); err != nil {
			log.WithError(err).WithField("script", path).Error("Script failed")
			os.Exit(1)
		}

		if m.Ended() {
			break
		}
	}
}

func runScript(m *climanager.Manager, path string, log *logrus.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	log.WithField("script", path).Info("Running script")
	return m.Run(file)
}
