package climanager

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	ff "github.com/sharnoff/feedforward"
)

type command struct {
	name   string
	params string
	desc   string

	// the range of the number of arguments. maxArgs is -1 if there is no limit
	minArgs, maxArgs int

	run func(*Manager, []string) error
}

func (c *command) usage() string {
	if c.params == "" {
		return c.name
	}

	return c.name + " " + c.params
}

var commandList = []command{
	{"net.make", "number_of_layers layer_sizes... net_name", "adds a new network", 3, -1, (*Manager).netMake},
	{"net.print", "net_name", "prints the network", 1, 1, (*Manager).netPrint},
	{"net.remove", "net_name", "deletes the network", 1, 1, (*Manager).netRemove},
	{"net.read", "path net_name", "reads a network from the file", 2, 2, (*Manager).netRead},
	{"net.save", "net_name", "saves the network at its assigned source file", 1, 1, (*Manager).netSave},
	{"net.save.as", "net_name path", "saves the network at the path provided", 2, 2, (*Manager).netSaveAs},
	{"net.set.source", "net_name path", "sets the network source file", 2, 2, (*Manager).netSetSource},
	{"net.test", "net_name set_name", "tests the network with the set and tells the RMS error", 2, 2, (*Manager).netTest},
	{"net.train", "net_name set_name [epochs]", "trains the network with the set", 2, 3, (*Manager).netTrain},
	{"net.compute", "net_name inputs...", "computes outputs for the given inputs", 1, -1, (*Manager).netCompute},
	{"set.read", "path set_name", "reads a set from the path", 2, 2, (*Manager).setRead},
	{"set.print", "set_name", "prints the records of the set", 1, 1, (*Manager).setPrint},
	{"set.remove", "set_name", "removes the set", 1, 1, (*Manager).setRemove},
	{"list.networks", "", "prints names of all networks", 0, 0, (*Manager).listNetworks},
	{"list.sources", "", "prints names and source files of all networks", 0, 0, (*Manager).listSources},
	{"list.sets", "", "prints names and sizes of all sets", 0, 0, (*Manager).listSets},
	{"help", "", "prints this list", 0, 0, (*Manager).help},
	{"end", "", "finishes the session", 0, 0, nil},
}

// filled by init, so that help can refer to them
var (
	commandsByName map[string]*command
	commandOrder   []*command
)

func init() {
	commandsByName = make(map[string]*command, len(commandList))
	for i := range commandList {
		c := &commandList[i]
		commandsByName[c.name] = c
		commandOrder = append(commandOrder, c)
	}
}

func (m *Manager) netMake(args []string) error {
	numLayers, err := parseCount(args[0], "network size")
	if err != nil {
		return err
	} else if len(args) != numLayers+2 {
		return errors.Errorf("Expected %d layer sizes and a name, given %d arguments", numLayers, len(args)-1)
	}

	layout := make([]int, numLayers)
	for l := range layout {
		if layout[l], err = parseCount(args[l+1], "layer "+strconv.Itoa(l)+" size"); err != nil {
			return err
		}
	}

	name := args[numLayers+1]
	if err = m.uniqueNetName(name); err != nil {
		return err
	}

	net, err := ff.New(layout, m.rng)
	if err != nil {
		return errors.Wrapf(err, "Can't create network")
	}

	m.addNet(name, "", net)
	m.printf("Network %s has been created.\n", name)
	return nil
}

func (m *Manager) netPrint(args []string) error {
	e, err := m.getNet(args[0])
	if err != nil {
		return err
	}

	net := e.net
	if net.Empty() {
		m.printf("Network %s is empty.\n", e.name)
		return nil
	}

	source := e.source
	if source == "" {
		source = "none"
	}

	m.printf("Network %s (id %s)\n", e.name, e.id)
	m.printf("Source: %s\n", source)
	m.printf("Layout: %v\n", net.Layout())
	m.printf("Trained on %d records\n", net.Iteration())

	for l := 1; l < net.NumLayers(); l++ {
		var all []float64
		for n := 0; n < net.LayerSize(l)-1; n++ {
			all = append(all, net.Neuron(l, n).Weights()...)
		}

		m.printf("Layer %d: %d neurons, weights in [%g, %g]\n", l, net.LayerSize(l)-1, floats.Min(all), floats.Max(all))
		for n := 0; n < net.LayerSize(l)-1; n++ {
			m.printf("  neuron %d: %v\n", n, net.Neuron(l, n).Weights())
		}
	}

	m.printf("Outputs: %v\n", net.Results())
	return nil
}

func (m *Manager) netRemove(args []string) error {
	for i, e := range m.nets {
		if e.name == args[0] {
			m.nets = append(m.nets[:i], m.nets[i+1:]...)
			m.log.WithFields(logrus.Fields{"network": e.name, "id": e.id}).Info("Removed network")
			m.printf("Network %s has been removed.\n", e.name)
			return nil
		}
	}

	_, err := m.getNet(args[0])
	return err
}

func (m *Manager) netRead(args []string) error {
	path, name := args[0], args[1]
	if err := m.uniqueNetName(name); err != nil {
		return err
	}

	net, err := ff.OpenNetwork(path, m.rng)
	if err != nil {
		return errors.Wrapf(err, "Can't read network")
	}

	m.addNet(name, path, net)
	m.printf("Network %s has been successfully read from %s.\n", name, quote(path))
	return nil
}

func (m *Manager) netSave(args []string) error {
	e, err := m.getNet(args[0])
	if err != nil {
		return err
	}

	if e.source == "" {
		return errors.Errorf("Network %s has not been assigned a source file. Try \"net.save.as\" or \"net.set.source\"", e.name)
	}

	if err = e.net.SaveFile(e.source); err != nil {
		return errors.Wrapf(err, "Can't save network %s", e.name)
	}

	m.printf("Network %s has been saved to %s.\n", e.name, quote(e.source))
	return nil
}

func (m *Manager) netSaveAs(args []string) error {
	e, err := m.getNet(args[0])
	if err != nil {
		return err
	}

	path := args[1]
	if err = e.net.SaveFile(path); err != nil {
		return errors.Wrapf(err, "Can't save network %s", e.name)
	}

	if e.source == "" {
		e.source = path
	}

	m.printf("Network %s has been saved to %s.\n", e.name, quote(path))
	return nil
}

func (m *Manager) netSetSource(args []string) error {
	path := args[1]
	if !ff.IsNetworkPath(path) {
		return ff.UnsupportedExtensionError{Path: path, Want: []string{ff.LayoutExt, ff.NetworkExt}}
	}

	e, err := m.getNet(args[0])
	if err != nil {
		return err
	}

	e.source = path
	m.printf("The source file of network %s is now %s.\n", e.name, quote(path))
	return nil
}

func (m *Manager) netTest(args []string) error {
	e, err := m.getNet(args[0])
	if err != nil {
		return err
	}

	s, err := m.getSet(args[1])
	if err != nil {
		return err
	}

	rms, err := e.net.Evaluate(s.set)
	if err != nil {
		return errors.Wrapf(err, "Can't test network %s with set %s", e.name, s.name)
	}

	m.log.WithFields(logrus.Fields{"network": e.name, "set": s.name, "rms": rms}).Info("Tested network")
	m.printf("Network %s has been tested with set %s. The root mean square error is equal to: %g\n", e.name, s.name, rms)
	return nil
}

func (m *Manager) netTrain(args []string) error {
	e, err := m.getNet(args[0])
	if err != nil {
		return err
	}

	s, err := m.getSet(args[1])
	if err != nil {
		return err
	}

	epochs := 1
	if len(args) == 3 {
		if epochs, err = parseCount(args[2], "epochs"); err != nil {
			return err
		}
	}

	log := m.log.WithFields(logrus.Fields{"network": e.name, "set": s.name})
	start := time.Now()

	for ep := 0; ep < epochs; ep++ {
		if err = e.net.Train(s.set, m.args); err != nil {
			return errors.Wrapf(err, "Training network %s with set %s failed at epoch %d", e.name, s.name, ep)
		}

		log.WithField("epoch", ep).Debug("Finished epoch")
	}

	log.WithFields(logrus.Fields{"epochs": epochs, "elapsed": time.Since(start)}).Info("Trained network")
	m.printf("Network %s has been successfully trained with set %s (%d epochs).\n", e.name, s.name, epochs)
	return nil
}

func (m *Manager) netCompute(args []string) error {
	e, err := m.getNet(args[0])
	if err != nil {
		return err
	}

	if e.net.Empty() {
		return errors.Errorf("Network %s is empty", e.name)
	} else if len(args)-1 != e.net.InputSize() {
		return errors.Errorf("Network %s takes %d inputs, given %d", e.name, e.net.InputSize(), len(args)-1)
	}

	inputs, err := parseFloats(args[1:])
	if err != nil {
		return err
	}

	if err = e.net.Propagate(inputs); err != nil {
		return errors.Wrapf(err, "Can't compute outputs")
	}

	m.printf("Network %s has computed the outputs as:\n", e.name)
	for i, v := range e.net.Results() {
		m.printf("output[%d] = %g\n", i, v)
	}

	return nil
}

func (m *Manager) setRead(args []string) error {
	path, name := args[0], args[1]
	if err := m.uniqueSetName(name); err != nil {
		return err
	}

	set, err := ff.OpenDataset(path)
	if err != nil {
		return errors.Wrapf(err, "Can't read set")
	}

	m.addSet(name, path, set)
	m.printf("Set %s has been successfully read from %s (%d records).\n", name, quote(path), set.Size())
	return nil
}

func (m *Manager) setPrint(args []string) error {
	s, err := m.getSet(args[0])
	if err != nil {
		return err
	}

	set := s.set
	if set.Empty() {
		m.printf("Set %s is empty.\n", s.name)
		return nil
	}

	in, _ := set.InputSize()
	out, _ := set.OutputSize()
	m.printf("Set %s (id %s): %d records of %d inputs and %d targets\n", s.name, s.id, set.Size(), in, out)

	for i := 0; i < set.Size(); i++ {
		r := set.Record(i)
		m.printf("%d: %v -> %v\n", i, r.Inputs, r.Targets)
	}

	return nil
}

func (m *Manager) setRemove(args []string) error {
	for i, s := range m.sets {
		if s.name == args[0] {
			m.sets = append(m.sets[:i], m.sets[i+1:]...)
			m.log.WithFields(logrus.Fields{"set": s.name, "id": s.id}).Info("Removed set")
			m.printf("Set %s has been removed.\n", s.name)
			return nil
		}
	}

	_, err := m.getSet(args[0])
	return err
}

func (m *Manager) listNetworks(args []string) error {
	if len(m.nets) == 0 {
		m.printf("No networks are there.\n")
		return nil
	}

	m.printf("Networks:\n")
	for _, e := range m.nets {
		m.printf(" + %s\n", e.name)
	}

	return nil
}

func (m *Manager) listSources(args []string) error {
	if len(m.nets) == 0 {
		m.printf("No networks are there.\n")
		return nil
	}

	m.printf("Networks:\n")
	for _, e := range m.nets {
		if e.source == "" {
			m.printf(" + %s (no source file)\n", e.name)
		} else {
			m.printf(" + %s (%s)\n", e.name, quote(e.source))
		}
	}

	return nil
}

func (m *Manager) listSets(args []string) error {
	if len(m.sets) == 0 {
		m.printf("No sets are there.\n")
		return nil
	}

	m.printf("Sets:\n")
	for _, s := range m.sets {
		m.printf(" + %s\tsize = %d\n", s.name, s.set.Size())
	}

	return nil
}

func (m *Manager) help(args []string) error {
	width := 0
	for _, c := range commandOrder {
		if l := len(c.usage()); l > width {
			width = l
		}
	}

	m.printf("Commands:\n")
	for _, c := range commandOrder {
		u := c.usage()
		m.printf(" * %s %s %s\n", u, strings.Repeat(".", width-len(u)+2), c.desc)
	}

	return nil
}
