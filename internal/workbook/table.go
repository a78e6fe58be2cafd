// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/peplab/restraintq/pkg/types"
)

// tableSkipRows is the number of leading grid rows above the restraint
// table. Row 6 (0-indexed) is the column header, data rows follow.
const tableSkipRows = 6

// Names of the required restraint table columns, matched exactly and
// case-sensitively against the header row.
const (
	ColX        = "prot x coor"
	ColY        = "prot y coor"
	ColZ        = "prot z coor"
	ColSeqPos   = "sl"
	ColWeight   = "wi"
	ColDistance = "dij"
)

// RequiredColumns lists the required column names in canonical order.
var RequiredColumns = []string{ColX, ColY, ColZ, ColSeqPos, ColWeight, ColDistance}

// ReadTable extracts the restraint table from the grid. The leading
// tableSkipRows rows are ignored, the next row is the column header,
// and all following rows are data. Column names are authoritative;
// source column order does not matter.
//
// Required column values are coerced to floats. A cell that is absent,
// blank, non-numeric, or non-finite invalidates its whole row, and
// invalid rows are dropped (counted in Table.Dropped). Every surviving
// row therefore has all six required fields present and finite.
// Non-required columns are carried through as raw text.
func ReadTable(g Grid) (types.Table, error) {
	var header []string
	if len(g) > tableSkipRows {
		header = g[tableSkipRows]
	}

	index := make(map[string]int, len(header))
	var columns []string
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		// First occurrence wins for duplicated header names.
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = i
		columns = append(columns, name)
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return types.Table{}, &SchemaError{Missing: missing}
	}

	table := types.Table{Columns: columns}
	for _, row := range g[tableSkipRows+1:] {
		r, ok := parseRestraint(row, index, columns)
		if !ok {
			table.Dropped++
			continue
		}
		table.Restraints = append(table.Restraints, r)
	}

	if len(table.Restraints) == 0 {
		return types.Table{}, ErrEmptyTable
	}
	return table, nil
}

// parseRestraint converts one data row. ok is false when any required
// cell fails numeric coercion, which drops the row entirely rather
// than blanking the one cell.
func parseRestraint(row []string, index map[string]int, columns []string) (types.Restraint, bool) {
	x, ok := numericCell(row, index[ColX])
	if !ok {
		return types.Restraint{}, false
	}
	y, ok := numericCell(row, index[ColY])
	if !ok {
		return types.Restraint{}, false
	}
	z, ok := numericCell(row, index[ColZ])
	if !ok {
		return types.Restraint{}, false
	}
	seqPos, ok := numericCell(row, index[ColSeqPos])
	if !ok {
		return types.Restraint{}, false
	}
	weight, ok := numericCell(row, index[ColWeight])
	if !ok {
		return types.Restraint{}, false
	}
	distance, ok := numericCell(row, index[ColDistance])
	if !ok {
		return types.Restraint{}, false
	}

	r := types.Restraint{
		X:        x,
		Y:        y,
		Z:        z,
		SeqPos:   seqPos,
		Weight:   weight,
		Distance: distance,
	}

	for _, name := range columns {
		if slices.Contains(RequiredColumns, name) {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		var cell string
		if idx := index[name]; idx < len(row) {
			cell = row[idx]
		}
		r.Extra[name] = cell
	}

	return r, true
}

// numericCell parses row[idx] as a finite float. ok is false when the
// cell is missing, blank, non-numeric, or not finite.
func numericCell(row []string, idx int) (float64, bool) {
	if idx >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[idx])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
