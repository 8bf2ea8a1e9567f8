// Package pipeline runs the fixed batch sequence over a data directory:
// read + normalize each dataset, write its overview and statistics
// artifacts, then regenerate the manifest and a run summary. Steps run
// sequentially; every artifact is rebuilt from scratch on each run.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spatialviz/spatialprep/internal/aggregate"
	"github.com/spatialviz/spatialprep/internal/artifact"
	"github.com/spatialviz/spatialprep/internal/dataset"
	"github.com/spatialviz/spatialprep/internal/manifest"
	"github.com/spatialviz/spatialprep/internal/sample"
	"github.com/spatialviz/spatialprep/internal/schema"
)

// Options configures one pipeline run.
type Options struct {
	DataDir      string
	OutDir       string
	FileExt      string
	Stride       int
	Gzip         bool
	TrimSuffixes []string
	Aliases      schema.AliasTable
	// Progress receives human-readable per-step lines; nil discards them.
	Progress io.Writer
}

// DatasetResult records what one dataset contributed to the run.
type DatasetResult struct {
	File         string `json:"file"`
	Rows         int    `json:"rows"`
	OverviewRows int    `json:"overview_rows"`
	Skipped      int    `json:"skipped"`
	Regions      int    `json:"regions"`
}

// Summary is the audit artifact written at the end of a run.
type Summary struct {
	RunID     string          `json:"run_id"`
	StartedAt time.Time       `json:"started_at"`
	Stride    int             `json:"stride"`
	Datasets  []DatasetResult `json:"datasets"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// SummaryFileName is the fixed run-summary location inside the out dir.
const SummaryFileName = "summary.json"

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// OverviewPath returns the overview artifact path for a dataset file name.
func OverviewPath(outDir, file string) string {
	return filepath.Join(outDir, stem(file)+"_overview.json")
}

// StatsPath returns the statistics artifact path for a dataset file name.
func StatsPath(outDir, file string) string {
	return filepath.Join(outDir, stem(file)+"_stats.json")
}

// Run executes the full pipeline. It fails outright when the data
// directory cannot be enumerated or a listed file cannot be read; data
// quality problems inside a file are demoted to counted warnings.
func Run(opt Options) (*Summary, error) {
	progress := opt.Progress
	if progress == nil {
		progress = io.Discard
	}
	aliases := opt.Aliases
	if aliases == nil {
		aliases = schema.DefaultAliases()
	}
	if opt.Stride < 1 {
		return nil, fmt.Errorf("stride must be >= 1, got %d", opt.Stride)
	}

	entries, err := manifest.Build(opt.DataDir, opt.FileExt, opt.TrimSuffixes)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Stride:    opt.Stride,
	}

	for _, entry := range entries {
		ds, err := dataset.Read(filepath.Join(opt.DataDir, entry.File), aliases)
		if err != nil {
			return nil, err
		}
		sum.Warnings = append(sum.Warnings, ds.Report.Warnings(ds.Name)...)

		overview, err := sample.Stride(ds.Rows, opt.Stride)
		if err != nil {
			return nil, err
		}
		if err := artifact.WriteJSON(OverviewPath(opt.OutDir, entry.File), overview, false, opt.Gzip); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.File, err)
		}

		stats := aggregate.ByRegion(ds.Rows)
		if err := artifact.WriteJSON(StatsPath(opt.OutDir, entry.File), stats, true, false); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.File, err)
		}

		sum.Datasets = append(sum.Datasets, DatasetResult{
			File:         entry.File,
			Rows:         ds.Report.Rows,
			OverviewRows: len(overview),
			Skipped:      ds.Report.Skipped,
			Regions:      len(stats),
		})
		fmt.Fprintf(progress, "✓ %s: %d rows, %d overview, %d regions\n",
			entry.File, ds.Report.Rows, len(overview), len(stats))
	}

	if err := artifact.WriteJSON(filepath.Join(opt.DataDir, manifest.FileName), entries, true, false); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	fmt.Fprintf(progress, "✓ manifest: %d dataset(s)\n", len(entries))

	if err := artifact.WriteJSON(filepath.Join(opt.OutDir, SummaryFileName), sum, true, false); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}
	return sum, nil
}
