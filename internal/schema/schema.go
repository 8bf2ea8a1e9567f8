package schema

import (
	"gopkg.in/guregu/null.v3"
)

// Canonical field names shared by every downstream consumer regardless of
// how the source CSV spelled its headers.
const (
	FieldRegion   = "region"
	FieldGene     = "gene"
	FieldX        = "x"
	FieldY        = "y"
	FieldZ        = "z"
	FieldCellID   = "cell_id"
	FieldCellType = "cell_type"
	FieldFOV      = "fov"

	// Per-region context columns some exports carry; the value repeats on
	// every row of a region.
	FieldArea       = "region_area"
	FieldProportion = "region_proportion"
)

// UnknownRegion is the aggregation bucket for rows whose region field is
// absent. Rows are never dropped for missing a region.
const UnknownRegion = "unknown"

// UnassignedCellType marks rows whose cell had no entry in the cell-type
// assignment table.
const UnassignedCellType = "unassigned"

// Row is one spatial-transcriptomics observation on the canonical schema.
// Absent fields are null-valued (not zero, not empty string) so consumers
// can tell "missing" from "zero". Rows are never mutated after reading.
type Row struct {
	Region   null.String `json:"region"`
	Gene     null.String `json:"gene"`
	X        null.Float  `json:"x"`
	Y        null.Float  `json:"y"`
	Z        null.Float  `json:"z"`
	CellID   null.String `json:"cell_id"`
	CellType null.String `json:"cell_type"`
	FOV      null.String `json:"fov"`

	Area       null.Float `json:"region_area"`
	Proportion null.Float `json:"region_proportion"`
}

// RequiredFields are the canonical fields a dataset is expected to carry.
// A file matching none of a required field's aliases yields a data-quality
// warning, not a fatal error.
func RequiredFields() []string {
	return []string{FieldRegion, FieldGene, FieldX, FieldY}
}

// Fields lists every canonical field in schema order.
func Fields() []string {
	return []string{
		FieldRegion, FieldGene, FieldX, FieldY, FieldZ,
		FieldCellID, FieldCellType, FieldFOV,
		FieldArea, FieldProportion,
	}
}
