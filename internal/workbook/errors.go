// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTable reports that no restraint rows survived cleaning.
var ErrEmptyTable = errors.New("no valid restraint rows after cleaning (missing or non-numeric values)")

// FormatError reports a malformed metadata block: the grid is too
// small for the fixed cells, or a length cell is absent or non-numeric.
type FormatError struct {
	// Cell is the spreadsheet-style cell name (e.g. "B3"), empty for
	// grid-level faults.
	Cell string

	// Reason describes what was wrong with the cell or grid.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Cell == "" {
		return fmt.Sprintf("malformed metadata block: %s", e.Reason)
	}
	return fmt.Sprintf("malformed metadata block: cell %s: %s", e.Cell, e.Reason)
}

// SchemaError reports required restraint table columns absent from the
// header row. Missing keeps the canonical column order.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}
