// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Lengths holds the four normalization length parameters read from the
// fixed metadata block of a restraint workbook: the peptide sequence
// extent Ls and the protein spatial extents Lx, Ly, Lz. Read once per
// invocation, immutable afterwards.
type Lengths struct {
	// Ls is the normalization length along the peptide sequence axis.
	Ls float64 `json:"ls" yaml:"ls"`

	// Lx is the normalization length along the protein x axis.
	Lx float64 `json:"lx" yaml:"lx"`

	// Ly is the normalization length along the protein y axis.
	Ly float64 `json:"ly" yaml:"ly"`

	// Lz is the normalization length along the protein z axis.
	Lz float64 `json:"lz" yaml:"lz"`
}

// Restraint is one observed or inferred contact between a protein atom
// and a peptide residue, with its pre-computed evolutionary weight.
// The first six fields come from the required table columns; the
// derived fields are populated by the score evaluator.
type Restraint struct {
	// X, Y, Z are the contacted protein atom coordinates
	// (columns "prot x coor", "prot y coor", "prot z coor").
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`

	// SeqPos is the peptide sequence position (column "sl").
	SeqPos float64 `json:"sl" yaml:"sl"`

	// Weight is the evolutionary confidence weight (column "wi"),
	// independent of geometry.
	Weight float64 `json:"wi" yaml:"wi"`

	// Distance is the observed restraint distance (column "dij").
	Distance float64 `json:"dij" yaml:"dij"`

	// Extra holds non-required source columns as raw cell text, keyed
	// by header name. Carried through scoring and written back unchanged.
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`

	// DistWeight is the distance weight fdij = exp(-(dij - d0)).
	DistWeight float64 `json:"fdij" yaml:"fdij"`

	// Omega is the combined weight omega_ij = wi * fdij.
	Omega float64 `json:"omega_ij" yaml:"omega_ij"`

	// SigmaP is this restraint's share of the protein spatial
	// dispersion, normalized per axis.
	SigmaP float64 `json:"sigma_p" yaml:"sigma_p"`

	// SigmaL is this restraint's share of the peptide sequence
	// dispersion.
	SigmaL float64 `json:"sigma_l" yaml:"sigma_l"`
}

// Table is an ordered restraint table parsed from one workbook.
type Table struct {
	// Columns is the source header in original order, required and
	// non-required columns alike.
	Columns []string `json:"columns" yaml:"columns"`

	// Restraints are the rows that survived cleaning, in source order.
	Restraints []Restraint `json:"restraints" yaml:"restraints"`

	// Dropped counts rows removed during cleaning because a required
	// cell was missing or non-numeric.
	Dropped int `json:"dropped" yaml:"dropped"`
}

// Result pairs the aggregate restraint score with the annotated table
// it was computed from. Created once per evaluation, never mutated.
type Result struct {
	Score float64 `json:"score" yaml:"score"`
	Table Table   `json:"table" yaml:"table"`
}
