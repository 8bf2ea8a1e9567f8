// Package aggregate computes exact per-region statistics over the full row
// set. Statistics always reflect ground truth even when the visualization
// only renders a downsampled subset.
package aggregate

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/spatialviz/spatialprep/internal/schema"
)

// CoordSummary describes the spatial extent of a region's observations.
// Rows with absent coordinates do not contribute.
type CoordSummary struct {
	XMin  float64 `json:"x_min"`
	XMax  float64 `json:"x_max"`
	XMean float64 `json:"x_mean"`
	YMin  float64 `json:"y_min"`
	YMax  float64 `json:"y_max"`
	YMean float64 `json:"y_mean"`
}

// RegionStat is the per-region aggregate emitted to stats.json. Counts are
// exact; unique counts are true distinct counts, not estimates. Area and
// Proportion pass through the region-context columns some exports carry;
// the value repeats on every row of a region, so the first observed one is
// taken.
type RegionStat struct {
	Region      string        `json:"region"`
	Count       int           `json:"count"`
	UniqueGenes int           `json:"unique_genes"`
	UniqueCells int           `json:"unique_cells"`
	Area        *float64      `json:"area,omitempty"`
	Proportion  *float64      `json:"proportion,omitempty"`
	Bounds      *CoordSummary `json:"bounds,omitempty"`
}

// ByRegion groups rows by their normalized region value and returns one
// RegionStat per distinct region, sorted by region name. Rows with an
// absent region are bucketed under schema.UnknownRegion, never dropped, so
// the counts always sum to len(rows).
func ByRegion(rows []schema.Row) []RegionStat {
	type acc struct {
		count      int
		genes      map[string]struct{}
		cells      map[string]struct{}
		xs         []float64
		ys         []float64
		area       *float64
		proportion *float64
	}
	groups := map[string]*acc{}
	for _, r := range rows {
		key := schema.UnknownRegion
		if r.Region.Valid {
			key = r.Region.String
		}
		g := groups[key]
		if g == nil {
			g = &acc{genes: map[string]struct{}{}, cells: map[string]struct{}{}}
			groups[key] = g
		}
		g.count++
		if r.Gene.Valid {
			g.genes[r.Gene.String] = struct{}{}
		}
		if r.CellID.Valid {
			g.cells[r.CellID.String] = struct{}{}
		}
		if r.X.Valid {
			g.xs = append(g.xs, r.X.Float64)
		}
		if r.Y.Valid {
			g.ys = append(g.ys, r.Y.Float64)
		}
		if g.area == nil && r.Area.Valid {
			v := r.Area.Float64
			g.area = &v
		}
		if g.proportion == nil && r.Proportion.Valid {
			v := r.Proportion.Float64
			g.proportion = &v
		}
	}

	out := make([]RegionStat, 0, len(groups))
	for region, g := range groups {
		s := RegionStat{
			Region:      region,
			Count:       g.count,
			UniqueGenes: len(g.genes),
			UniqueCells: len(g.cells),
			Area:        g.area,
			Proportion:  g.proportion,
		}
		s.Bounds = bounds(g.xs, g.ys)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}

func bounds(xs, ys []float64) *CoordSummary {
	if len(xs) == 0 || len(ys) == 0 {
		return nil
	}
	// stats errors only on empty input, which is excluded above.
	xmin, _ := stats.Min(xs)
	xmax, _ := stats.Max(xs)
	xmean, _ := stats.Mean(xs)
	ymin, _ := stats.Min(ys)
	ymax, _ := stats.Max(ys)
	ymean, _ := stats.Mean(ys)
	return &CoordSummary{
		XMin: xmin, XMax: xmax, XMean: xmean,
		YMin: ymin, YMax: ymax, YMean: ymean,
	}
}
