package feedforward

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sharnoff/feedforward/initializers"
)

// All of the formats are streams of whitespace-separated numbers. Line breaks are only written to
// make the files readable; they carry no meaning when reading.
//
// layout:
//	<number of layers>
//	<size of layer 0> <size of layer 1> ...
//
// network: the layout, followed by (for every layer after the first, for every neuron of that
// layer except the bias) the weights from each neuron of the previous layer, including its bias:
//	<w> <w> ... <w>
//	...
//
// dataset:
//	<number of inputs> <number of targets>
//	<inputs...> <targets...>
//	...

// tokens reads whitespace-separated values from a source
type tokens struct {
	sc *bufio.Scanner
}

func newTokens(r io.Reader) *tokens {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokens{sc}
}

// next returns ErrIncompleteData if the source has ended, and a PathError if reading failed
func (t *tokens) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", &PathError{UnreadableSource, "", err}
		}

		return "", ErrIncompleteData
	}

	return t.sc.Text(), nil
}

// count reads a strictly positive integer
func (t *tokens) count() (int, error) {
	str, err := t.next()
	if err != nil {
		return 0, err
	}

	c, err := strconv.Atoi(str)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedData, "%q is not an integer", str)
	} else if c < 1 {
		return 0, errors.Wrapf(ErrMalformedData, "Count must be >= 1 (%d)", c)
	}

	return c, nil
}

func (t *tokens) float() (float64, error) {
	str, err := t.next()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedData, "%q is not a number", str)
	}

	return v, nil
}

// row reads n values, growing the row only as they are read
func (t *tokens) row(n int) ([]float64, error) {
	var vs []float64
	for i := 0; i < n; i++ {
		v, err := t.float()
		if err != nil {
			return nil, err
		}

		vs = append(vs, v)
	}

	return vs, nil
}

func (t *tokens) layout() ([]int, error) {
	numLayers, err := t.count()
	if err != nil {
		return nil, errors.Wrapf(err, "Can't read number of layers")
	}

	var layout []int
	for l := 0; l < numLayers; l++ {
		size, err := t.count()
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read size of layer %d", l)
		}

		layout = append(layout, size)
	}

	return layout, nil
}

// ReadLayout reads a layout-only source, returning a new Network with that layout and weights
// given by rng. Any values after the layout are ignored.
//
// ReadLayout returns ErrIncompleteData if the source ends early and ErrMalformedData if any of the
// counts are not positive integers or the Network would have more than MaxWeights weights (both
// possibly wrapped; use KindOf).
func ReadLayout(r io.Reader, rng initializers.RNG) (*Network, error) {
	if rng == nil {
		return nil, NilArgError{"RNG"}
	}

	layout, err := newTokens(r).layout()
	if err != nil {
		return nil, err
	} else if err = checkLayout(layout); err != nil {
		return nil, err
	}

	net := new(Network)
	net.create(layout, rng.Gen)
	return net, nil
}

// ReadNetwork reads a source containing both the layout and the weights of a Network, as written
// by WriteNetwork. The momentum of every weight starts at zero.
//
// Errors are the same as ReadLayout. The neurons are only built once every weight has been read.
func ReadNetwork(r io.Reader) (*Network, error) {
	t := newTokens(r)

	layout, err := t.layout()
	if err != nil {
		return nil, err
	}

	// rows[l][n] holds the incoming weights of neuron n in layer l
	rows := make([][][]float64, len(layout))
	for l := 1; l < len(layout); l++ {
		for n := 0; n < layout[l]; n++ {
			ws, err := t.row(layout[l-1] + 1)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't read weights of neuron %d in layer %d", n, l)
			}

			rows[l] = append(rows[l], ws)
		}
	}

	if err = checkLayout(layout); err != nil {
		return nil, err
	}

	net := new(Network)
	net.create(layout, nil)

	for l := 1; l < len(net.layers); l++ {
		for n, ws := range rows[l] {
			net.layers[l][n].setWeights(ws)
		}
	}

	return net, nil
}

// errWriter stops writing after the first error, so that it only needs to be checked once
type errWriter struct {
	w   *bufio.Writer
	err error
}

func newErrWriter(w io.Writer) *errWriter {
	return &errWriter{w: bufio.NewWriter(w)}
}

func (ew *errWriter) str(s string) {
	if ew.err == nil {
		_, ew.err = ew.w.WriteString(s)
	}
}

func (ew *errWriter) flush() error {
	if ew.err == nil {
		ew.err = ew.w.Flush()
	}

	if ew.err != nil {
		return &PathError{UnwritableDestination, "", ew.err}
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (net *Network) writeLayout(ew *errWriter) {
	ew.str(strconv.Itoa(len(net.layers)) + "\n")
	for l, size := range net.Layout() {
		if l > 0 {
			ew.str(" ")
		}

		ew.str(strconv.Itoa(size))
	}
	ew.str("\n")
}

// WriteLayout writes only the layout of the Network, which can be read by ReadLayout. WriteLayout
// returns ErrEmptyNetwork if there are no layers.
func (net *Network) WriteLayout(w io.Writer) error {
	if net.Empty() {
		return ErrEmptyNetwork
	}

	ew := newErrWriter(w)
	net.writeLayout(ew)
	return ew.flush()
}

// WriteNetwork writes the layout and weights of the Network, which can be read by ReadNetwork.
// Weights are written with enough precision to be read back exactly. The momentum of each weight
// is not saved.
func (net *Network) WriteNetwork(w io.Writer) error {
	if net.Empty() {
		return ErrEmptyNetwork
	}

	ew := newErrWriter(w)
	net.writeLayout(ew)
	ew.str("\n")

	for l := 1; l < len(net.layers); l++ {
		layer := net.layers[l]
		for n := 0; n < len(layer)-1; n++ {
			for i, c := range layer[n].incoming {
				if i > 0 {
					ew.str(" ")
				}

				ew.str(formatFloat(c.Weight))
			}
			ew.str("\n")
		}
		ew.str("\n")
	}

	return ew.flush()
}
