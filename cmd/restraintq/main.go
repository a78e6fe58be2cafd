// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the restraintq CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/peplab/restraintq/internal/score"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the restraintq CLI.
var rootCmd = &cobra.Command{
	Use:   "restraintq",
	Short: "Restraint quality scoring for protein-peptide docking",
	Long: `restraintq computes a composite quality score for protein-peptide
docking restraints from an Excel workbook. The workbook carries four
normalization lengths (Ls, Lx, Ly, Lz) in a fixed metadata block and a
restraint table with per-restraint protein coordinates, peptide
sequence positions, evolutionary weights, and observed distances.

Scoring writes an annotated copy of the table next to the input and
reports the aggregate score. Use inspect to validate a workbook without
writing anything, and runs to browse recorded scoring history.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./restraintq.yaml or ~/.config/restraintq/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("restraintq")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "restraintq"))
		}
	}

	viper.SetEnvPrefix("RESTRAINTQ")
	viper.AutomaticEnv()

	viper.SetDefault("score.d0", score.DefaultD0)
	viper.SetDefault("watch.debounce", "500ms")
	if home, err := os.UserHomeDir(); err == nil {
		viper.SetDefault("runs.db", filepath.Join(home, ".restraintq", "runs.db"))
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
