// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/peplab/restraintq/internal/workbook"
	"github.com/peplab/restraintq/pkg/types"
)

// writeInput builds a complete restraint workbook: the metadata block
// with the four lengths, five more filler rows, the header at row 6,
// and the given data rows.
func writeInput(t *testing.T, dir string, lengths types.Lengths, rows ...[]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	set := func(row, col int, v any) {
		cell, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatal(err)
		}
	}

	set(0, 0, "restraint input")
	set(1, 0, "Ls")
	set(1, 1, lengths.Ls)
	set(2, 0, "Lx")
	set(2, 1, lengths.Lx)
	set(3, 0, "Ly")
	set(3, 1, lengths.Ly)
	set(4, 0, "Lz")
	set(4, 1, lengths.Lz)

	header := []any{"prot x coor", "prot y coor", "prot z coor", "sl", "wi", "dij"}
	for c, name := range header {
		set(6, c, name)
	}
	for r, row := range rows {
		for c, v := range row {
			set(7+r, c, v)
		}
	}

	path := filepath.Join(dir, "restraints.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, types.Lengths{Ls: 1, Lx: 1, Ly: 1, Lz: 1},
		[]any{0.0, 0.0, 0.0, 0.0, 1.0, 1.8},
		[]any{2.0, 0.0, 0.0, 2.0, 1.0, 1.8},
	)

	var report bytes.Buffer
	out, err := File(path, types.ScoreConfig{}, &report)
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	if math.Abs(out.Result.Score-4.0) > 1e-9 {
		t.Errorf("score = %v, want 4.0", out.Result.Score)
	}

	wantOut := filepath.Join(dir, "restraints_output.xlsx")
	if out.OutPath != wantOut {
		t.Errorf("output path = %q, want %q", out.OutPath, wantOut)
	}
	if _, err := os.Stat(wantOut); err != nil {
		t.Errorf("output workbook not written: %v", err)
	}

	for _, line := range []string{
		"File: " + path,
		"Lengths: Ls=1, Lx=1, Ly=1, Lz=1",
		"Restraint Score (σ): 4.000000",
		"Wrote: " + wantOut,
	} {
		if !strings.Contains(report.String(), line) {
			t.Errorf("report missing %q:\n%s", line, report.String())
		}
	}
}

// The written workbook must survive a second pass through the reader
// and rescore to the same value.
func TestFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, types.Lengths{Ls: 8, Lx: 24, Ly: 24, Lz: 24},
		[]any{1.5, -2.0, 3.25, 1.0, 0.9, 2.2},
		[]any{4.0, 5.5, -6.0, 3.0, 0.4, 1.1},
		[]any{-7.25, 8.0, 9.5, 5.0, 0.7, 3.8},
	)

	var report bytes.Buffer
	out, err := File(path, types.ScoreConfig{}, &report)
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	grid, err := workbook.Load(out.OutPath)
	if err != nil {
		t.Fatalf("reloading output: %v", err)
	}

	// The output workbook has no skip region; read its table directly
	// from row 0 by prepending six blank rows.
	padded := append(make(workbook.Grid, 6), grid...)
	table, err := workbook.ReadTable(padded)
	if err != nil {
		t.Fatalf("re-reading output table: %v", err)
	}

	if len(table.Restraints) != 3 {
		t.Fatalf("output kept %d rows, want 3", len(table.Restraints))
	}
	for _, d := range workbook.DerivedColumns {
		found := false
		for _, c := range table.Columns {
			if c == d {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("output lacks derived column %q", d)
		}
	}

	rescored := Compute(out.Lengths, table, types.ScoreConfig{})
	if math.Abs(rescored.Score-out.Result.Score) > 1e-9 {
		t.Errorf("rescored = %v, reported = %v", rescored.Score, out.Result.Score)
	}

	want := fmt.Sprintf("Restraint Score (σ): %.6f", out.Result.Score)
	if !strings.Contains(report.String(), want) {
		t.Errorf("report missing %q", want)
	}
}

func TestFile_NoOutputOnFailure(t *testing.T) {
	dir := t.TempDir()

	// Missing dij column: the table read fails, nothing is written.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, v := range []string{"", "10", "20", "30", "40"} {
		if v == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(2, r+1)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatal(err)
		}
	}
	for c, name := range []string{"prot x coor", "prot y coor", "prot z coor", "sl", "wi"} {
		cell, _ := excelize.CoordinatesToCellName(c+1, 7)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "bad.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	var report bytes.Buffer
	_, err := File(path, types.ScoreConfig{}, &report)
	if err == nil {
		t.Fatal("expected schema error")
	}
	if !strings.Contains(err.Error(), "dij") {
		t.Errorf("error %q does not name the missing column", err)
	}

	if _, statErr := os.Stat(workbook.OutputPath(path)); !os.IsNotExist(statErr) {
		t.Error("output workbook written despite failure")
	}
}

func TestFiles_ContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, types.Lengths{Ls: 1, Lx: 1, Ly: 1, Lz: 1},
		[]any{0.0, 0.0, 0.0, 0.0, 1.0, 1.8},
		[]any{2.0, 0.0, 0.0, 2.0, 1.0, 1.8},
	)
	missing := filepath.Join(dir, "absent.xlsx")

	var report bytes.Buffer
	outcomes, batch := Files([]string{missing, good}, types.ScoreConfig{}, &report)

	if batch.Scored != 1 || batch.Failed != 1 {
		t.Errorf("batch = %+v, want 1 scored and 1 failed", batch)
	}
	if !batch.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if len(outcomes) != 1 || outcomes[0].Path != good {
		t.Errorf("outcomes = %+v, want only the good file", outcomes)
	}
	if !strings.Contains(report.String(), "failed:") {
		t.Errorf("report lacks failure line:\n%s", report.String())
	}
	if !strings.Contains(report.String(), "Batch summary: 1 scored, 1 failed (total: 2)") {
		t.Errorf("report lacks summary:\n%s", report.String())
	}
}
