// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"fmt"
	"io"

	"github.com/peplab/restraintq/internal/workbook"
	"github.com/peplab/restraintq/pkg/types"
)

// Outcome pairs one scored input with its parsed lengths, result, and
// the output path that was written.
type Outcome struct {
	Path    string
	OutPath string
	Lengths types.Lengths
	Result  types.Result
}

// BatchResult holds the outcome counts of a batch scoring run.
type BatchResult struct {
	Scored int
	Failed int
}

// Total returns the total number of inputs processed.
func (r BatchResult) Total() int {
	return r.Scored + r.Failed
}

// HasFailures reports whether any input failed to score.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// File scores a single workbook: it loads the grid, reads the lengths
// and the restraint table, evaluates the score, writes the annotated
// copy to the derived output path, and prints the report to w. No
// output file is written if any earlier stage fails.
func File(path string, cfg types.ScoreConfig, w io.Writer) (Outcome, error) {
	grid, err := workbook.Load(path)
	if err != nil {
		return Outcome{}, err
	}

	lengths, err := workbook.ReadLengths(grid)
	if err != nil {
		return Outcome{}, fmt.Errorf("reading lengths from %s: %w", path, err)
	}

	table, err := workbook.ReadTable(grid)
	if err != nil {
		return Outcome{}, fmt.Errorf("reading restraint table from %s: %w", path, err)
	}

	res := Compute(lengths, table, cfg)

	outPath := workbook.OutputPath(path)
	if err := workbook.WriteScored(outPath, res); err != nil {
		return Outcome{}, err
	}

	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Lengths: Ls=%v, Lx=%v, Ly=%v, Lz=%v\n",
		lengths.Ls, lengths.Lx, lengths.Ly, lengths.Lz)
	fmt.Fprintf(w, "Restraint Score (σ): %.6f\n", res.Score)
	fmt.Fprintf(w, "Wrote: %s\n", outPath)

	return Outcome{Path: path, OutPath: outPath, Lengths: lengths, Result: res}, nil
}

// Files scores several workbooks sequentially, continuing past
// individual failures. Per-file reports and a trailing summary are
// printed to w; the outcomes of the successful files are returned.
func Files(paths []string, cfg types.ScoreConfig, w io.Writer) ([]Outcome, BatchResult) {
	var outcomes []Outcome
	var batch BatchResult

	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(w)
		}
		out, err := File(path, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			batch.Failed++
			continue
		}
		outcomes = append(outcomes, out)
		batch.Scored++
	}

	fmt.Fprintf(w, "\nBatch summary: %d scored, %d failed (total: %d)\n",
		batch.Scored, batch.Failed, batch.Total())
	return outcomes, batch
}
