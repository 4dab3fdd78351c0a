package feedforward

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies every error returned by this package, so that callers can branch on the
// kind of failure instead of on specific values. KindOf extracts it.
type ErrorKind int

const (
	// UnknownKind is returned by KindOf for errors that did not originate from this package
	UnknownKind ErrorKind = iota
	// IncompatibleVectorSize: an input or target vector doesn't match the Network's topology
	IncompatibleVectorSize
	// EmptyDataset: sizes were queried or evaluation attempted on a Dataset with no records
	EmptyDataset
	// EmptyNetwork: an operation needed layers, but the Network has none
	EmptyNetwork
	// MalformedData: a declared count is zero, or a value could not be parsed
	MalformedData
	// IncompleteData: the source ended before a required value
	IncompleteData
	// UnreadableSource: the path could not be opened for reading
	UnreadableSource
	// UnwritableDestination: the path could not be created or written to
	UnwritableDestination
	// UnsupportedExtension: the file's extension is not one of the recognized kinds
	UnsupportedExtension
	// NilArgument: a required argument was nil
	NilArgument
)

var kindNames = map[ErrorKind]string{
	UnknownKind:            "unknown",
	IncompatibleVectorSize: "incompatible vector size",
	EmptyDataset:           "empty dataset",
	EmptyNetwork:           "empty network",
	MalformedData:          "malformed data",
	IncompleteData:         "incomplete data",
	UnreadableSource:       "unreadable source",
	UnwritableDestination:  "unwritable destination",
	UnsupportedExtension:   "unsupported extension",
	NilArgument:            "nil argument",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// kinded is satisfied by all of the error types defined here
type kinded interface {
	error
	Kind() ErrorKind
}

// KindOf returns the ErrorKind of the given error, looking through any wrapping done by
// errors.Wrap or fmt.Errorf("%w"). If the error has no kind (or is nil), UnknownKind is returned.
func KindOf(err error) ErrorKind {
	var k kinded
	if err != nil && errors.As(err, &k) {
		return k.Kind()
	}

	return UnknownKind
}

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables, and can be compared directly.
type Error struct {
	kind ErrorKind
	msg  string
}

func (err Error) Error() string {
	return err.msg
}

// Kind returns the classification of the error
func (err Error) Kind() ErrorKind {
	return err.kind
}

// These are the global errors that may be returned.
var (
	ErrEmptyDataset   = Error{EmptyDataset, "The dataset is empty"}
	ErrEmptyNetwork   = Error{EmptyNetwork, "The network is empty"}
	ErrMalformedData  = Error{MalformedData, "The source contains incorrect data"}
	ErrIncompleteData = Error{IncompleteData, "The source contains incomplete data"}
)

// SizeMismatchError is returned when a vector given to the Network (or a Dataset given to it)
// does not have the length that the topology requires.
type SizeMismatchError struct {
	Expected, Given int
	// Of describes what was mismatched, eg. "inputs" or "targets"
	Of string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("Incompatible number of %s (expected %d, given %d)", err.Of, err.Expected, err.Given)
}

// Kind always returns IncompatibleVectorSize
func (err SizeMismatchError) Kind() ErrorKind {
	return IncompatibleVectorSize
}

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// Kind always returns NilArgument
func (err NilArgError) Kind() ErrorKind {
	return NilArgument
}

// PathError records a failure to open, read, create or write a file (or a stream, in which case
// Path is empty). Its kind is either UnreadableSource or UnwritableDestination.
type PathError struct {
	kind ErrorKind
	Path string
	Err  error
}

func (err *PathError) Error() string {
	verb := "read from"
	if err.kind == UnwritableDestination {
		verb = "write to"
	}

	if err.Path == "" {
		return fmt.Sprintf("Can't %s stream: %v", verb, err.Err)
	}

	return fmt.Sprintf("Can't %s %q: %v", verb, err.Path, err.Err)
}

// Kind returns either UnreadableSource or UnwritableDestination
func (err *PathError) Kind() ErrorKind {
	return err.kind
}

// Unwrap returns the underlying error from the os package
func (err *PathError) Unwrap() error {
	return err.Err
}

// Cause is provided for errors.Cause
func (err *PathError) Cause() error {
	return err.Err
}

// UnsupportedExtensionError is returned when a path's extension is not among those that are
// acceptable for the attempted operation.
type UnsupportedExtensionError struct {
	Path string
	// Want lists the acceptable extensions, including the leading '.'
	Want []string
}

func (err UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("Invalid extension for %q. Acceptable are: %q", err.Path, err.Want)
}

// Kind always returns UnsupportedExtension
func (err UnsupportedExtensionError) Kind() ErrorKind {
	return UnsupportedExtension
}
