// Package climanager runs the interactive shell for feedforward: a set of named Networks and
// Datasets that are created, read, trained, tested and saved by one-line commands.
package climanager

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	ff "github.com/sharnoff/feedforward"
	"github.com/sharnoff/feedforward/initializers"
)

type netEntry struct {
	id     uuid.UUID
	name   string
	source string
	net    *ff.Network
}

type setEntry struct {
	id     uuid.UUID
	name   string
	source string
	set    *ff.Dataset
}

// Config is the setup of a Manager. Any of its fields may be left as their zero value.
type Config struct {
	// Args are used by "net.train". Defaults to ff.DefaultTrainArgs()
	Args ff.TrainArgs
	// RNG gives the weights of new Networks, and of those read from layout files. Defaults to a
	// Uniform RNG seeded from the current time.
	RNG initializers.RNG
	// Logger receives a record of every command. Defaults to discarding everything.
	Logger *logrus.Logger
	// Prompt is written before reading each command. It may be empty.
	Prompt string
}

// Manager holds the Networks and Datasets of a shell session. It is not safe for concurrent use.
type Manager struct {
	out    io.Writer
	log    *logrus.Logger
	args   ff.TrainArgs
	rng    initializers.RNG
	prompt string

	// set once "end" has been executed
	ended bool

	nets []*netEntry
	sets []*setEntry
}

// New returns a Manager with no Networks or Datasets, which writes the results of commands to
// 'out'.
func New(out io.Writer, conf Config) *Manager {
	m := &Manager{
		out:    out,
		log:    conf.Logger,
		args:   conf.Args,
		rng:    conf.RNG,
		prompt: conf.Prompt,
	}

	if m.log == nil {
		m.log = logrus.New()
		m.log.SetOutput(io.Discard)
	}

	if m.args.LearningRate == nil || m.args.Momentum == nil {
		def := ff.DefaultTrainArgs()
		if m.args.LearningRate == nil {
			m.args.LearningRate = def.LearningRate
		}
		if m.args.Momentum == nil {
			m.args.Momentum = def.Momentum
		}
	}

	if m.rng == nil {
		m.rng = initializers.Uniform(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	return m
}

// Run executes commands from r, one per line, until either the "end" command or the end of the
// input. Failed commands are reported to the output and do not stop Run. An error is only
// returned if reading from r fails.
//
// If the session has already ended, Run reads nothing.
func (m *Manager) Run(r io.Reader) error {
	if m.ended {
		return nil
	}

	sc := bufio.NewScanner(r)

	for {
		if m.prompt != "" {
			fmt.Fprint(m.out, m.prompt)
		}

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return errors.Wrapf(err, "Failed to read command")
			}

			m.log.Debug("Input ended")
			return nil
		}

		end, err := m.Exec(sc.Text())
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}

		if end {
			return nil
		}
	}
}

// Exec executes a single command line, returning whether or not it was the "end" command. Blank
// lines are ignored. If the command fails, nothing about the session is changed and the error is
// returned.
func (m *Manager) Exec(line string) (end bool, err error) {
	words, err := splitLine(line)
	if err != nil {
		m.log.WithError(err).Debug("Bad command line")
		return false, errors.Wrapf(err, "Can't read command")
	} else if len(words) == 0 {
		return false, nil
	}

	name, args := words[0], words[1:]
	if name == "end" {
		m.log.Info("Ending session")
		m.ended = true
		return true, nil
	}

	cmd, ok := commandsByName[name]
	if !ok {
		return false, errors.Errorf("Unknown command %q. Type \"help\" for a list of commands", name)
	}

	if err = checkArgs(args, cmd.minArgs, cmd.maxArgs, cmd.usage()); err != nil {
		return false, err
	}

	entry := m.log.WithFields(logrus.Fields{"command": name, "args": args})
	entry.Debug("Executing command")

	start := time.Now()
	if err = cmd.run(m, args); err != nil {
		entry.WithError(err).Error("Command failed")
		return false, err
	}

	entry.WithField("elapsed", time.Since(start)).Trace("Command finished")
	return false, nil
}

// Ended returns whether the "end" command has been executed. Once it has, the session is over even
// if Run is given more input.
func (m *Manager) Ended() bool {
	return m.ended
}

func (m *Manager) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}

// Network returns the Network with the given name, if there is one
func (m *Manager) Network(name string) (*ff.Network, bool) {
	if e := m.findNet(name); e != nil {
		return e.net, true
	}

	return nil, false
}

// Dataset returns the Dataset with the given name, if there is one
func (m *Manager) Dataset(name string) (*ff.Dataset, bool) {
	if e := m.findSet(name); e != nil {
		return e.set, true
	}

	return nil, false
}

// Source returns the source file of the named Network, which is empty if none has been set
func (m *Manager) Source(name string) (string, bool) {
	if e := m.findNet(name); e != nil {
		return e.source, true
	}

	return "", false
}

func (m *Manager) findNet(name string) *netEntry {
	for _, e := range m.nets {
		if e.name == name {
			return e
		}
	}

	return nil
}

func (m *Manager) findSet(name string) *setEntry {
	for _, e := range m.sets {
		if e.name == name {
			return e
		}
	}

	return nil
}

func (m *Manager) getNet(name string) (*netEntry, error) {
	if e := m.findNet(name); e != nil {
		return e, nil
	}

	return nil, errors.Errorf("No network named %q was found", name)
}

func (m *Manager) getSet(name string) (*setEntry, error) {
	if e := m.findSet(name); e != nil {
		return e, nil
	}

	return nil, errors.Errorf("No set named %q was found", name)
}

func (m *Manager) addNet(name, source string, net *ff.Network) *netEntry {
	e := &netEntry{uuid.New(), name, source, net}
	m.nets = append(m.nets, e)

	m.log.WithFields(logrus.Fields{"network": name, "id": e.id}).Info("Added network")
	return e
}

func (m *Manager) addSet(name, source string, set *ff.Dataset) *setEntry {
	e := &setEntry{uuid.New(), name, source, set}
	m.sets = append(m.sets, e)

	m.log.WithFields(logrus.Fields{"set": name, "id": e.id, "records": set.Size()}).Info("Added set")
	return e
}

func (m *Manager) uniqueNetName(name string) error {
	if m.findNet(name) != nil {
		return errors.Errorf("A network named %q already exists. Use a unique name", name)
	}

	return nil
}

func (m *Manager) uniqueSetName(name string) error {
	if m.findSet(name) != nil {
		return errors.Errorf("A set named %q already exists. Use a unique name", name)
	}

	return nil
}
