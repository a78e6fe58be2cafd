// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/peplab/restraintq/internal/runlog"
	"github.com/peplab/restraintq/internal/score"
	"github.com/peplab/restraintq/internal/watch"
	"github.com/peplab/restraintq/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score <input.xlsx> [more.xlsx...]",
	Short: "Score restraint workbooks and write annotated copies",
	Long: `Score reads one or more restraint workbooks, evaluates the composite
restraint quality score for each, and writes an <input>_output.xlsx
next to each input with the per-restraint intermediate columns (fdij,
omega_ij, sigma_P, sigma_L) appended.

With --watch, score keeps running and rescores the single input
whenever it changes on disk. With --record, each successful run is
appended to the run history database (see "restraintq runs").`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := scoreConfig(cmd)
	record, _ := cmd.Flags().GetBool("record")

	if watchMode, _ := cmd.Flags().GetBool("watch"); watchMode {
		if len(args) != 1 {
			return fmt.Errorf("--watch takes exactly one input file, got %d", len(args))
		}
		return runScoreWatch(cmd, args[0], cfg, record)
	}

	if len(args) == 1 {
		out, err := score.File(args[0], cfg, os.Stdout)
		if err != nil {
			return err
		}
		if record {
			return recordOutcomes(cmd, []score.Outcome{out})
		}
		return nil
	}

	outcomes, batch := score.Files(args, cfg, os.Stdout)
	if record {
		if err := recordOutcomes(cmd, outcomes); err != nil {
			return err
		}
	}
	if batch.HasFailures() {
		return fmt.Errorf("%d file(s) failed scoring", batch.Failed)
	}
	return nil
}

// runScoreWatch scores the input once, then keeps rescoring it on file
// changes until interrupted. The initial score must succeed; later
// failures are logged by the watcher and scoring resumes on the next
// change.
func runScoreWatch(cmd *cobra.Command, path string, cfg types.ScoreConfig, record bool) error {
	rescore := func() error {
		out, err := score.File(path, cfg, os.Stdout)
		if err != nil {
			return err
		}
		if record {
			return recordOutcomes(cmd, []score.Outcome{out})
		}
		return nil
	}

	if err := rescore(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wcfg := types.WatchConfig{Debounce: viper.GetDuration("watch.debounce")}
	return watch.File(ctx, path, wcfg, rescore)
}

// recordOutcomes appends successfully scored runs to the history store.
func recordOutcomes(cmd *cobra.Command, outcomes []score.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	store, err := runlog.Open(runsDBPath(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	for _, out := range outcomes {
		run := runlog.Run{
			Input:   out.Path,
			Output:  out.OutPath,
			Lengths: out.Lengths,
			Kept:    len(out.Result.Table.Restraints),
			Dropped: out.Result.Table.Dropped,
			Score:   out.Result.Score,
		}
		if _, err := store.Record(cmd.Context(), run); err != nil {
			return fmt.Errorf("recording run for %s: %w", out.Path, err)
		}
	}
	return nil
}

// scoreConfig builds the evaluator config from flags and configuration.
func scoreConfig(cmd *cobra.Command) types.ScoreConfig {
	d0, _ := cmd.Flags().GetFloat64("d0")
	if d0 <= 0 {
		d0 = viper.GetFloat64("score.d0")
	}
	return types.ScoreConfig{D0: d0}
}

func init() {
	scoreCmd.Flags().Float64("d0", 0, "distance weight reference distance (0 = configured default)")
	scoreCmd.Flags().Bool("record", false, "append successful runs to the run history database")
	scoreCmd.Flags().Bool("watch", false, "keep running and rescore when the input changes")
	scoreCmd.Flags().String("db", "", "run history database path (with --record)")

	rootCmd.AddCommand(scoreCmd)
}
