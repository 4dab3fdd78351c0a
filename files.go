package feedforward

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sharnoff/feedforward/initializers"
)

// FileKind is the type of content in a file, as given by its extension
type FileKind int

const (
	// UnknownFile is any file without one of the extensions below
	UnknownFile FileKind = iota
	// LayoutFile (".lay") holds only the layout of a Network
	LayoutFile
	// NetworkFile (".net") holds the layout and weights of a Network
	NetworkFile
	// DatasetFile (".set") holds a Dataset
	DatasetFile
)

// The extensions corresponding to each FileKind
const (
	LayoutExt  string = ".lay"
	NetworkExt string = ".net"
	DatasetExt string = ".set"
)

var networkExts = []string{LayoutExt, NetworkExt}

// Classify returns the FileKind of the path, from its extension. The path is not accessed.
func Classify(path string) FileKind {
	switch filepath.Ext(path) {
	case LayoutExt:
		return LayoutFile
	case NetworkExt:
		return NetworkFile
	case DatasetExt:
		return DatasetFile
	default:
		return UnknownFile
	}
}

// IsNetworkPath returns whether or not the path is either a LayoutFile or a NetworkFile
func IsNetworkPath(path string) bool {
	k := Classify(path)
	return k == LayoutFile || k == NetworkFile
}

// readFile opens the path and hands it to read, closing it afterwards
func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &PathError{UnreadableSource, path, err}
	}

	defer f.Close()

	return withPath(read(f), path)
}

// withPath fills in the path of a PathError that came from reading or writing a stream
func withPath(err error, path string) error {
	var pe *PathError
	if errors.As(err, &pe) && pe.Path == "" {
		pe.Path = path
	}

	return err
}

// writeFile creates (or truncates) the path and hands it to write. An error from closing the file
// is returned if write succeeded.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &PathError{UnwritableDestination, path, err}
	}

	if err = write(f); err != nil {
		f.Close()
		return withPath(err, path)
	}

	if err = f.Close(); err != nil {
		return &PathError{UnwritableDestination, path, err}
	}

	return nil
}

// OpenNetwork reads a Network from the file at path, which must end with LayoutExt or NetworkExt.
// Layout files are read with ReadLayout, using rng for the weights; rng is unused (and may be
// nil) for network files.
//
// In addition to the errors from ReadLayout and ReadNetwork, OpenNetwork returns an
// UnsupportedExtensionError for other extensions, and a PathError if the file can't be opened.
func OpenNetwork(path string, rng initializers.RNG) (*Network, error) {
	var net *Network

	switch Classify(path) {
	case LayoutFile:
		if rng == nil {
			return nil, NilArgError{"RNG"}
		}

		err := readFile(path, func(r io.Reader) (err error) {
			net, err = ReadLayout(r, rng)
			return
		})
		return net, err
	case NetworkFile:
		err := readFile(path, func(r io.Reader) (err error) {
			net, err = ReadNetwork(r)
			return
		})
		return net, err
	default:
		return nil, UnsupportedExtensionError{path, networkExts}
	}
}

// SaveFile writes the Network to the file at path, with WriteLayout or WriteNetwork depending on
// the extension of the path. Any existing file is overwritten. If the extension is not LayoutExt
// or NetworkExt, an UnsupportedExtensionError is returned and nothing is written.
func (net *Network) SaveFile(path string) error {
	if net.Empty() {
		return ErrEmptyNetwork
	}

	switch Classify(path) {
	case LayoutFile:
		return writeFile(path, net.WriteLayout)
	case NetworkFile:
		return writeFile(path, net.WriteNetwork)
	default:
		return UnsupportedExtensionError{path, networkExts}
	}
}

// OpenDataset reads a Dataset from the file at path, which must end with DatasetExt.
func OpenDataset(path string) (*Dataset, error) {
	if Classify(path) != DatasetFile {
		return nil, UnsupportedExtensionError{path, []string{DatasetExt}}
	}

	var ds *Dataset
	err := readFile(path, func(r io.Reader) (err error) {
		ds, err = ReadDataset(r)
		return
	})
	return ds, err
}

// SaveFile writes the Dataset to the file at path, which must end with DatasetExt.
func (ds *Dataset) SaveFile(path string) error {
	if Classify(path) != DatasetFile {
		return UnsupportedExtensionError{path, []string{DatasetExt}}
	} else if ds.Empty() {
		return ErrEmptyDataset
	}

	return writeFile(path, ds.WriteRecords)
}
