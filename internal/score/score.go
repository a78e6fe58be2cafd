// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score evaluates the composite restraint quality score over a
// cleaned restraint table and orchestrates the per-file scoring
// pipeline around it.
package score

import (
	"math"

	"github.com/peplab/restraintq/pkg/types"
)

// DefaultD0 is the reference distance at which the distance weight
// fdij equals exactly 1. Restraints observed closer than this are
// boosted, farther ones exponentially suppressed.
const DefaultD0 = 1.8

// Compute evaluates the restraint score over table and returns the
// score together with a copy of the table annotated with the
// per-restraint intermediate quantities (fdij, omega_ij, sigma_P,
// sigma_L).
//
// Compute assumes the table already satisfies the reader invariants
// (non-empty, all required fields finite) and adds no validation of
// its own: a zero normalization length surfaces as an infinite or NaN
// score, not an error.
func Compute(lengths types.Lengths, table types.Table, cfg types.ScoreConfig) types.Result {
	d0 := cfg.D0
	if d0 <= 0 {
		d0 = DefaultD0
	}

	restraints := append([]types.Restraint(nil), table.Restraints...)
	n := float64(len(restraints))

	var sumX, sumY, sumZ, sumS float64
	for i := range restraints {
		r := &restraints[i]
		r.DistWeight = math.Exp(-(r.Distance - d0))
		r.Omega = r.Weight * r.DistWeight

		sumX += r.X
		sumY += r.Y
		sumZ += r.Z
		sumS += r.SeqPos
	}

	muX := sumX / n
	muY := sumY / n
	muZ := sumZ / n
	muS := sumS / n

	// Each dispersion term carries a 1/n and the final score a factor
	// of n. The omega weight inside the sum breaks that apparent
	// cancellation, so the reference arithmetic is kept exactly.
	var total float64
	for i := range restraints {
		r := &restraints[i]

		dx := (r.X - muX) / lengths.Lx
		dy := (r.Y - muY) / lengths.Ly
		dz := (r.Z - muZ) / lengths.Lz
		r.SigmaP = (dx*dx + dy*dy + dz*dz) / n

		ds := (r.SeqPos - muS) / lengths.Ls
		r.SigmaL = ds * ds / n

		total += r.Omega * (r.SigmaP + r.SigmaL)
	}

	return types.Result{
		Score: n * total,
		Table: types.Table{
			Columns:    table.Columns,
			Restraints: restraints,
			Dropped:    table.Dropped,
		},
	}
}
