// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/peplab/restraintq/internal/runlog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse the recorded scoring run history",
	Long: `Runs manages the local scoring history. History is opt-in: nothing is
recorded unless score is invoked with --record, so plain scoring keeps
no state across invocations.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded scoring runs, newest first",
	RunE:  runRunsList,
}

func runRunsList(cmd *cobra.Command, args []string) error {
	store, err := runlog.Open(runsDBPath(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-40s  %6s  %7s  %s\n",
		"ID", "Scored At", "Input", "Kept", "Dropped", "Score")
	for _, r := range runs {
		input := r.Input
		if len(input) > 40 {
			input = "..." + input[len(input)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-40s  %6d  %7d  %.6f\n",
			r.ID, r.ScoredAt.Local().Format("2006-01-02 15:04:05"),
			input, r.Kept, r.Dropped, r.Score)
	}
	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(runs))
	return nil
}

// runsDBPath resolves the history database path: the --db flag when
// set, otherwise the configured runs.db location.
func runsDBPath(cmd *cobra.Command) string {
	if db, err := cmd.Flags().GetString("db"); err == nil && db != "" {
		return db
	}
	return viper.GetString("runs.db")
}

func init() {
	runsListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = default of 20)")
	runsListCmd.Flags().Bool("json", false, "output runs as JSON")
	runsListCmd.Flags().String("db", "", "run history database path")

	runsCmd.AddCommand(runsListCmd)
	rootCmd.AddCommand(runsCmd)
}
