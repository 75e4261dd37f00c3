// Package export writes extracted records as CSV or JSON
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/abusix/ioc-parsers/indicators"
)

// Writer serializes one batch of records
type Writer interface {
	Write(records []*indicators.Record) error
}

// New returns the writer for format ("csv" or "json")
func New(format string, w io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case "csv":
		return NewCSVWriter(w), nil
	case "json":
		return NewJSONWriter(w), nil
	default:
		return nil, errors.Errorf("unsupported output format %q", format)
	}
}

// CSVWriter writes the indicators.Columns header followed by one row per record
type CSVWriter struct {
	w *csv.Writer
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) Write(records []*indicators.Record) error {
	if err := c.w.Write(indicators.Columns); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, record := range records {
		if err := c.w.Write(record.Row()); err != nil {
			return errors.Wrapf(err, "write csv row for %s", record.IOC)
		}
	}
	c.w.Flush()
	return errors.Wrap(c.w.Error(), "flush csv")
}

// JSONWriter writes the records as one indented JSON array
type JSONWriter struct {
	enc *json.Encoder
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONWriter{enc: enc}
}

func (j *JSONWriter) Write(records []*indicators.Record) error {
	if records == nil {
		records = []*indicators.Record{}
	}
	return errors.Wrap(j.enc.Encode(records), "encode json")
}
