// Package celltype merges cell-type assignment tables onto dataset rows.
// Assignment files come from a separate typing pipeline and join on the
// cell identifier; cells without an assignment are marked "unassigned".
package celltype

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"

	"github.com/spatialviz/spatialprep/internal/schema"
)

// Assignment is one record of a cell-typing CSV.
type Assignment struct {
	CellIndex string `csv:"cell_index"`
	CellType  string `csv:"cell_type"`
}

// MergeReport counts join outcomes for one dataset. Skipped counts
// malformed source rows that were dropped from the merged file; callers
// surface it so no row disappears silently.
type MergeReport struct {
	Rows       int `json:"rows"`
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
	Skipped    int `json:"skipped"`
}

// cleanKey strips the whitespace and stray quoting that differ between the
// typing pipeline's export and the regions export.
func cleanKey(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// LoadAssignments reads a cell-typing CSV into a cell-ID -> cell-type map.
func LoadAssignments(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open assignments: %w", err)
	}
	defer f.Close()

	var records []*Assignment
	if err := gocsv.Unmarshal(f, &records); err != nil {
		return nil, fmt.Errorf("parse assignments %s: %w", path, err)
	}
	out := make(map[string]string, len(records))
	for _, rec := range records {
		out[cleanKey(rec.CellIndex)] = cleanKey(rec.CellType)
	}
	return out, nil
}

// Apply returns a copy of rows with cell types filled in from the
// assignment map. Rows are not mutated in place. Rows whose cell ID has no
// assignment (or no cell ID at all) get schema.UnassignedCellType.
func Apply(rows []schema.Row, types map[string]string) ([]schema.Row, MergeReport) {
	out := make([]schema.Row, len(rows))
	rep := MergeReport{Rows: len(rows)}
	for i, r := range rows {
		if r.CellID.Valid {
			if ct, ok := types[cleanKey(r.CellID.String)]; ok {
				r.CellType = null.StringFrom(ct)
				rep.Assigned++
				out[i] = r
				continue
			}
		}
		r.CellType = null.StringFrom(schema.UnassignedCellType)
		rep.Unassigned++
		out[i] = r
	}
	return out, rep
}

// MergeFile rewrites the dataset CSV at src with a cell_type column
// appended, joining against the assignment CSV. The original columns pass
// through untouched so the merged file stays compatible with consumers of
// the raw export. An existing cell_type column is replaced rather than
// duplicated.
func MergeFile(src, assignPath, dst string, aliases schema.AliasTable) (MergeReport, error) {
	var rep MergeReport

	types, err := LoadAssignments(assignPath)
	if err != nil {
		return rep, err
	}

	in, err := os.Open(src)
	if err != nil {
		return rep, fmt.Errorf("open dataset: %w", err)
	}
	defer in.Close()

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return rep, fmt.Errorf("read header: %w", err)
	}
	ix, _ := aliases.Resolve(header)
	cellCol, hasCell := ix[schema.FieldCellID]
	typeCol, hasType := ix[schema.FieldCellType]

	out, err := os.Create(dst)
	if err != nil {
		return rep, fmt.Errorf("create output: %w", err)
	}
	defer out.Close()
	w := csv.NewWriter(out)

	outHeader := header
	if !hasType {
		typeCol = len(header)
		outHeader = append(append([]string(nil), header...), schema.FieldCellType)
	}
	if err := w.Write(outHeader); err != nil {
		return rep, fmt.Errorf("write header: %w", err)
	}

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rep.Skipped++
				continue
			}
			return rep, fmt.Errorf("read row: %w", err)
		}
		if len(rec) != len(header) {
			rep.Skipped++
			continue
		}
		ct := schema.UnassignedCellType
		if hasCell && cellCol < len(rec) {
			if v, ok := types[cleanKey(rec[cellCol])]; ok {
				ct = v
			}
		}
		if ct == schema.UnassignedCellType {
			rep.Unassigned++
		} else {
			rep.Assigned++
		}
		rep.Rows++
		if hasType {
			rec[typeCol] = ct
		} else {
			rec = append(append([]string(nil), rec...), ct)
		}
		if err := w.Write(rec); err != nil {
			return rep, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return rep, fmt.Errorf("flush output: %w", err)
	}
	return rep, nil
}
