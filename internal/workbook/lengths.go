// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peplab/restraintq/pkg/types"
)

// Fixed 0-indexed positions of the normalization lengths in the
// metadata block (spreadsheet cells B2..B5). This is a layout
// convention of the source workbooks, never inferred from content.
const (
	lsRow = 1
	lxRow = 2
	lyRow = 3
	lzRow = 4

	// lengthCol is the column holding all four length values.
	lengthCol = 1

	// minRows is the smallest grid that can contain the whole block.
	minRows = lzRow + 1
)

// ReadLengths extracts the four normalization lengths from their fixed
// cells, without assuming any header. Each cell is coerced to a float
// but not validated further: zero, negative, or non-finite lengths
// pass through and surface later as a degenerate score.
func ReadLengths(g Grid) (types.Lengths, error) {
	if len(g) < minRows {
		return types.Lengths{}, &FormatError{
			Reason: fmt.Sprintf("grid has %d rows, need at least %d", len(g), minRows),
		}
	}

	ls, err := lengthCell(g, lsRow)
	if err != nil {
		return types.Lengths{}, err
	}
	lx, err := lengthCell(g, lxRow)
	if err != nil {
		return types.Lengths{}, err
	}
	ly, err := lengthCell(g, lyRow)
	if err != nil {
		return types.Lengths{}, err
	}
	lz, err := lengthCell(g, lzRow)
	if err != nil {
		return types.Lengths{}, err
	}

	return types.Lengths{Ls: ls, Lx: lx, Ly: ly, Lz: lz}, nil
}

// lengthCell reads and coerces the metadata cell at (row, lengthCol).
func lengthCell(g Grid, row int) (float64, error) {
	var raw string
	if lengthCol < len(g[row]) {
		raw = strings.TrimSpace(g[row][lengthCol])
	}
	if raw == "" {
		return 0, &FormatError{Cell: cellName(row, lengthCol), Reason: "cell is empty"}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &FormatError{
			Cell:   cellName(row, lengthCol),
			Reason: fmt.Sprintf("not numeric: %q", raw),
		}
	}
	return v, nil
}
