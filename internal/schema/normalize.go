package schema

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// AliasTable maps each canonical field to a priority-ordered list of
// accepted header spellings. The first header that matches an alias wins;
// the canonical name itself is always the highest-priority alias so that
// normalizing an already-normalized file is a no-op.
type AliasTable map[string][]string

// DefaultAliases returns the built-in precedence table. Order within each
// list is load-bearing.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldRegion:   {"region", "region_name", "brain_region"},
		FieldGene:     {"gene", "gene_name", "target_gene"},
		FieldX:        {"x", "x_coordinate", "global_x", "x_um"},
		FieldY:        {"y", "y_coordinate", "global_y", "y_um"},
		FieldZ:        {"z", "z_coordinate", "global_z", "z_um"},
		FieldCellID:   {"cell_id", "cell", "cell_index"},
		FieldCellType: {"cell_type", "celltype"},
		FieldFOV:      {"fov", "fov_id", "field_of_view"},

		FieldArea:       {"region_area", "area"},
		FieldProportion: {"region_proportion", "proportion"},
	}
}

// Merge returns a copy of the table with per-field override lists replacing
// the built-in lists. Fields absent from overrides keep their defaults.
func (t AliasTable) Merge(overrides map[string][]string) AliasTable {
	out := make(AliasTable, len(t))
	for k, v := range t {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range overrides {
		if len(v) > 0 {
			out[k] = append([]string(nil), v...)
		}
	}
	return out
}

// FieldIndex maps canonical field names to column positions in one file's
// header. Fields with no matching alias are simply absent from the map.
type FieldIndex map[string]int

// Resolve matches a CSV header against the alias table. It returns the
// per-file field index plus the list of required canonical fields that no
// header column satisfied.
func (t AliasTable) Resolve(header []string) (FieldIndex, []string) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}
	ix := make(FieldIndex, len(t))
	for _, field := range Fields() {
		for _, alias := range t[field] {
			if col, ok := byName[alias]; ok {
				ix[field] = col
				break
			}
		}
	}
	var missing []string
	for _, field := range RequiredFields() {
		if _, ok := ix[field]; !ok {
			missing = append(missing, field)
		}
	}
	return ix, missing
}

// RowFrom maps a raw CSV record onto the canonical schema. Unmatched fields
// become null; coordinate cells that fail to parse as numbers become null
// and are counted so the caller can surface them as a warning total.
func (ix FieldIndex) RowFrom(record []string) (Row, int) {
	badNumeric := 0
	str := func(field string) null.String {
		col, ok := ix[field]
		if !ok || col >= len(record) {
			return null.String{}
		}
		v := strings.TrimSpace(record[col])
		if v == "" {
			return null.String{}
		}
		return null.StringFrom(v)
	}
	num := func(field string) null.Float {
		col, ok := ix[field]
		if !ok || col >= len(record) {
			return null.Float{}
		}
		v := strings.TrimSpace(record[col])
		if v == "" {
			return null.Float{}
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badNumeric++
			return null.Float{}
		}
		return null.FloatFrom(f)
	}
	return Row{
		Region:     str(FieldRegion),
		Gene:       str(FieldGene),
		X:          num(FieldX),
		Y:          num(FieldY),
		Z:          num(FieldZ),
		CellID:     str(FieldCellID),
		CellType:   str(FieldCellType),
		FOV:        str(FieldFOV),
		Area:       num(FieldArea),
		Proportion: num(FieldProportion),
	}, badNumeric
}
