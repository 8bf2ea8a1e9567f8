// Package sample implements deterministic stride downsampling. Stride
// sampling preserves the spatial distribution of dense point clouds better
// than random sampling and reproduces exactly across runs without a seed.
package sample

import (
	"fmt"

	"github.com/spatialviz/spatialprep/internal/schema"
)

// Stride returns every k-th row starting from the first, preserving input
// order. The output length is ceil(len(rows)/k); a non-empty input always
// yields at least the first row. An empty input yields an empty, non-nil
// slice so the overview artifact marshals to a JSON array, never null.
// k must be >= 1.
func Stride(rows []schema.Row, k int) ([]schema.Row, error) {
	if k < 1 {
		return nil, fmt.Errorf("stride must be >= 1, got %d", k)
	}
	if len(rows) == 0 {
		return []schema.Row{}, nil
	}
	out := make([]schema.Row, 0, (len(rows)+k-1)/k)
	for i := 0; i < len(rows); i += k {
		out = append(out, rows[i])
	}
	return out, nil
}
