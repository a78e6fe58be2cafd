// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/peplab/restraintq/internal/score"
	"github.com/peplab/restraintq/internal/workbook"
	"github.com/peplab/restraintq/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.xlsx>",
	Short: "Validate a restraint workbook without writing anything",
	Long: `Inspect parses a restraint workbook the same way score does: it reads
the normalization lengths from the metadata block, extracts and cleans
the restraint table, and evaluates the score in memory. It prints a
summary of what it found and writes no output workbook, so it is safe
to run against inputs of unknown quality.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// inspection is the parse-only view of one input workbook.
type inspection struct {
	File    string        `json:"file" yaml:"file"`
	Lengths types.Lengths `json:"lengths" yaml:"lengths"`
	Columns []string      `json:"columns" yaml:"columns"`
	Kept    int           `json:"kept" yaml:"kept"`
	Dropped int           `json:"dropped" yaml:"dropped"`
	Score   float64       `json:"score" yaml:"score"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	grid, err := workbook.Load(args[0])
	if err != nil {
		return err
	}

	lengths, err := workbook.ReadLengths(grid)
	if err != nil {
		return err
	}

	table, err := workbook.ReadTable(grid)
	if err != nil {
		return err
	}

	res := score.Compute(lengths, table, scoreConfig(cmd))

	ins := inspection{
		File:    args[0],
		Lengths: lengths,
		Columns: table.Columns,
		Kept:    len(table.Restraints),
		Dropped: table.Dropped,
		Score:   res.Score,
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "":
		printInspection(os.Stdout, ins)
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ins)
	case "yaml":
		data, err := yaml.Marshal(ins)
		if err != nil {
			return fmt.Errorf("marshaling inspection: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

// printInspection writes the human-readable summary.
func printInspection(w io.Writer, ins inspection) {
	fmt.Fprintf(w, "File: %s\n", ins.File)
	fmt.Fprintf(w, "Lengths: Ls=%v, Lx=%v, Ly=%v, Lz=%v\n",
		ins.Lengths.Ls, ins.Lengths.Lx, ins.Lengths.Ly, ins.Lengths.Lz)
	fmt.Fprintf(w, "Columns (%d): %s\n", len(ins.Columns), strings.Join(ins.Columns, ", "))
	fmt.Fprintf(w, "Restraints: %d kept, %d dropped\n", ins.Kept, ins.Dropped)
	fmt.Fprintf(w, "Restraint Score (σ): %.6f (nothing written)\n", ins.Score)
}

func init() {
	inspectCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(inspectCmd)
}
