// Package dataset reads one spatial-transcriptomics CSV export into
// canonical rows, tolerating malformed rows and alias-less headers.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spatialviz/spatialprep/internal/schema"
)

// ReadReport summarizes data-quality findings for one file. Nothing here is
// fatal; per-row skips are counted rather than silently dropped.
type ReadReport struct {
	Rows            int      `json:"rows"`
	Skipped         int      `json:"skipped"`
	BadNumeric      int      `json:"bad_numeric"`
	MissingRequired []string `json:"missing_required,omitempty"`
}

// Warnings renders the report's non-fatal findings as human-readable lines.
func (r ReadReport) Warnings(name string) []string {
	var out []string
	for _, f := range r.MissingRequired {
		out = append(out, fmt.Sprintf("%s: no column matches required field %q; rows carry it as null", name, f))
	}
	if r.Skipped > 0 {
		out = append(out, fmt.Sprintf("%s: skipped %d malformed row(s)", name, r.Skipped))
	}
	if r.BadNumeric > 0 {
		out = append(out, fmt.Sprintf("%s: %d coordinate cell(s) were not numeric and were nulled", name, r.BadNumeric))
	}
	return out
}

// Dataset is an ordered, read-once sequence of canonical rows sourced from
// a single CSV file.
type Dataset struct {
	Name   string
	Rows   []schema.Row
	Report ReadReport
}

// Read loads path into a Dataset, normalizing columns through the alias
// table. Rows with a column count different from the header, and rows the
// CSV parser rejects, are skipped and counted. Only an unreadable file or
// an empty/invalid header is an error.
func Read(path string, aliases schema.AliasTable) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: %s is empty", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)

	ix, missing := aliases.Resolve(header)
	ds := &Dataset{
		Name:   filepath.Base(path),
		Report: ReadReport{MissingRequired: missing},
	}

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				ds.Report.Skipped++
				continue
			}
			return nil, fmt.Errorf("read row %d: %w", ds.Report.Rows+ds.Report.Skipped+1, err)
		}
		if len(rec) != ncol {
			ds.Report.Skipped++
			continue
		}
		row, bad := ix.RowFrom(rec)
		ds.Report.BadNumeric += bad
		ds.Rows = append(ds.Rows, row)
		ds.Report.Rows++
	}
	return ds, nil
}
