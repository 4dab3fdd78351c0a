package feedforward

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Record is a single training (or testing) sample: the inputs to the Network and the outputs that
// it should give for them.
type Record struct {
	Inputs  []float64
	Targets []float64
}

// Dataset is an ordered set of Records that all have the same number of inputs and the same number
// of targets. Datasets are not modified after creation.
type Dataset struct {
	records []Record
}

// NewDataset returns a Dataset containing the given records. The slice is not copied. All records
// must have the same sizes as the first, and those sizes must be non-zero; otherwise
// ErrMalformedData is returned. Giving no records produces an empty Dataset.
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return new(Dataset), nil
	}

	in, out := len(records[0].Inputs), len(records[0].Targets)
	if in == 0 || out == 0 {
		return nil, errors.Wrapf(ErrMalformedData, "Records must have inputs and targets (%d, %d)", in, out)
	}

	for i, r := range records {
		if len(r.Inputs) != in || len(r.Targets) != out {
			return nil, errors.Wrapf(ErrMalformedData, "Record %d has sizes (%d, %d), expected (%d, %d)",
				i, len(r.Inputs), len(r.Targets), in, out)
		}
	}

	return &Dataset{records}, nil
}

// ReadDataset reads a Dataset from the source. The source begins with the number of inputs and
// the number of targets of each record, followed by the values of the records themselves.
//
// If the source ends partway through a record, that record is dropped and the records before it
// are kept. If it ends before the first record is complete, ErrIncompleteData is returned. A
// number of inputs or targets that is not a positive integer gives ErrMalformedData, as does any
// value that is not a number.
func ReadDataset(r io.Reader) (*Dataset, error) {
	t := newTokens(r)

	in, err := t.count()
	if err != nil {
		return nil, errors.Wrapf(err, "Can't read number of inputs")
	}

	out, err := t.count()
	if err != nil {
		return nil, errors.Wrapf(err, "Can't read number of targets")
	}

	ds := new(Dataset)
	for {
		var rec Record
		if rec.Inputs, err = t.row(in); err == nil {
			rec.Targets, err = t.row(out)
		}

		if err != nil {
			if KindOf(err) == IncompleteData && len(ds.records) != 0 {
				return ds, nil
			}

			return nil, errors.Wrapf(err, "Can't read record %d", len(ds.records))
		}

		ds.records = append(ds.records, rec)
	}
}

// WriteRecords writes the Dataset in the form read by ReadDataset, one record per line. It returns
// ErrEmptyDataset if there are no records, as the sizes would be unknown.
func (ds *Dataset) WriteRecords(w io.Writer) error {
	if ds.Empty() {
		return ErrEmptyDataset
	}

	ew := newErrWriter(w)

	in, _ := ds.InputSize()
	out, _ := ds.OutputSize()
	ew.str(strconv.Itoa(in) + " " + strconv.Itoa(out) + "\n")

	for _, r := range ds.records {
		for i, v := range r.Inputs {
			if i > 0 {
				ew.str(" ")
			}
			ew.str(formatFloat(v))
		}
		for _, v := range r.Targets {
			ew.str(" " + formatFloat(v))
		}
		ew.str("\n")
	}

	return ew.flush()
}

// Size returns the number of records
func (ds *Dataset) Size() int {
	return len(ds.records)
}

// Empty returns whether or not there are no records
func (ds *Dataset) Empty() bool {
	return len(ds.records) == 0
}

// InputSize returns the number of inputs in each record, or ErrEmptyDataset if there are no
// records.
func (ds *Dataset) InputSize() (int, error) {
	if ds.Empty() {
		return 0, ErrEmptyDataset
	}

	return len(ds.records[0].Inputs), nil
}

// OutputSize returns the number of targets in each record, or ErrEmptyDataset if there are no
// records.
func (ds *Dataset) OutputSize() (int, error) {
	if ds.Empty() {
		return 0, ErrEmptyDataset
	}

	return len(ds.records[0].Targets), nil
}

// Record returns the record at index i. It panics if i is out of range.
func (ds *Dataset) Record(i int) Record {
	return ds.records[i]
}

// Records returns a copy of the list of records. The values within the records are shared with
// the Dataset, and should not be modified.
func (ds *Dataset) Records() []Record {
	rs := make([]Record, len(ds.records))
	copy(rs, ds.records)
	return rs
}
