// Package common provides report structures for parser output
package common

import (
	"errors"

	"github.com/samber/lo"

	"github.com/abusix/ioc-parsers/indicators"
)

// Report collects the records extracted from one email in encounter order
type Report struct {
	records []*indicators.Record
}

// NewReport creates a new Report
func NewReport() *Report {
	return &Report{
		records: make([]*indicators.Record, 0),
	}
}

// Add appends records in order. Records that do not satisfy their kind's
// field requirements are dropped and reported in the returned error.
func (r *Report) Add(records ...*indicators.Record) error {
	var errs []error
	for _, record := range records {
		if record == nil {
			continue
		}
		if err := record.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		r.records = append(r.records, record)
	}
	return errors.Join(errs...)
}

// Records returns the collected records
func (r *Report) Records() []*indicators.Record {
	return r.records
}

// Len returns the number of collected records
func (r *Report) Len() int {
	return len(r.records)
}

// CountByKind returns how many records of each kind were collected
func (r *Report) CountByKind() map[indicators.Kind]int {
	return lo.CountValuesBy(r.records, func(record *indicators.Record) indicators.Kind {
		return record.Kind
	})
}

// Aggregate concatenates record sequences in order without deduplication
func Aggregate(sequences ...[]*indicators.Record) []*indicators.Record {
	return lo.Flatten(sequences)
}
