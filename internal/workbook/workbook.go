// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workbook reads and writes the Excel artifacts of a restraint
// scoring run: a fixed metadata block holding the four normalization
// lengths, a header-driven restraint table below it, and the annotated
// output workbook written after scoring.
package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is the raw cell matrix of one worksheet: rows of cell text as
// rendered by the workbook library, ragged at the right edge. Both
// extraction passes (lengths and table) operate on the same grid.
type Grid [][]string

// Load opens the workbook at path and returns the cell grid of its
// first sheet.
func Load(path string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// OutputPath derives the annotated output path from an input path: the
// extension is stripped and "_output.xlsx" appended, matching the
// naming of the original scoring tooling.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_output.xlsx"
}

// cellName converts 0-indexed grid coordinates to a spreadsheet-style
// cell name like "B3" for diagnostics.
func cellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Sprintf("(%d,%d)", row, col)
	}
	return name
}
