// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/peplab/restraintq/pkg/types"
)

// Names of the computed columns written after the source columns.
const (
	colFdij   = "fdij"
	colOmega  = "omega_ij"
	colSigmaP = "sigma_P"
	colSigmaL = "sigma_L"
)

// DerivedColumns lists the computed output columns in write order.
var DerivedColumns = []string{colFdij, colOmega, colSigmaP, colSigmaL}

// WriteScored writes the annotated result to a new workbook at path:
// a header row with the original columns in source order plus the four
// derived columns, then one row per surviving restraint. A source
// column whose name collides with a derived column is overwritten in
// place rather than duplicated, so rescoring an already-annotated
// workbook keeps a stable shape.
func WriteScored(path string, res types.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	columns := outputColumns(res.Table.Columns)

	for c, name := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("naming header cell %d: %w", c, err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("writing header %q: %w", name, err)
		}
	}

	for i, r := range res.Table.Restraints {
		for c, name := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return fmt.Errorf("naming cell at row %d: %w", i+2, err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(r, name)); err != nil {
				return fmt.Errorf("writing row %d column %q: %w", i+2, name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// outputColumns appends the derived column names to the source
// columns, skipping names the source already carries.
func outputColumns(source []string) []string {
	columns := slices.Clone(source)
	for _, d := range DerivedColumns {
		if !slices.Contains(columns, d) {
			columns = append(columns, d)
		}
	}
	return columns
}

// cellValue selects the output value for one restraint and column.
// Pass-through text that parses as a number is written as a numeric
// cell so spreadsheet formulas keep working on extra columns.
func cellValue(r types.Restraint, name string) any {
	switch name {
	case ColX:
		return r.X
	case ColY:
		return r.Y
	case ColZ:
		return r.Z
	case ColSeqPos:
		return r.SeqPos
	case ColWeight:
		return r.Weight
	case ColDistance:
		return r.Distance
	case colFdij:
		return r.DistWeight
	case colOmega:
		return r.Omega
	case colSigmaP:
		return r.SigmaP
	case colSigmaL:
		return r.SigmaL
	}

	raw := r.Extra[name]
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return v
	}
	return raw
}
