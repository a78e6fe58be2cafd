package types

import "time"

// ScoreConfig holds settings for the score evaluator.
type ScoreConfig struct {
	// D0 is the reference distance, in the units of the dij column, at
	// which a restraint's distance weight equals exactly 1. Zero or
	// negative selects the built-in default (1.8).
	D0 float64 `json:"d0" yaml:"d0"`
}

// RunLogConfig holds settings for the optional run history store.
type RunLogConfig struct {
	// Path is the SQLite database file for recorded runs
	// (default: ~/.restraintq/runs.db).
	Path string `json:"path" yaml:"path"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is how long the watcher waits after the last file event
	// before rescoring, so editors that save in several steps trigger
	// one rescore (default 500ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}
