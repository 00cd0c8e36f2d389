// Package backend implements the MSM Engine: batched multi-scalar
// multiplication over sequences of scalars against a shared generator
// prefix, dispatched to either a CPU or a simulated-GPU execution
// strategy. Both strategies call the same exact point arithmetic, so
// their outputs are bit-identical by construction rather than by
// careful schedule-matching: Ristretto255 group addition is exact,
// associative and commutative, so no summation order can change the
// result.
package backend

import (
	"github.com/bwesterb/go-ristretto"
)

// Job describes one sequence's worth of multi-scalar multiplication:
// compute Sum_i Scalars[i] * Generators[i]. len(Generators) must be >=
// len(Scalars); trailing generators are ignored.
type Job struct {
	Scalars    []*ristretto.Scalar
	Generators []*ristretto.Point
}

// Engine is the capability set the façade dispatches through. Variant
// selection happens once, at Init, and never hot-swaps (spec.md §4.9).
type Engine interface {
	// Name identifies the backend ("cpu" or "gpu").
	Name() string

	// CommitBatch computes one compressed Ristretto255 point per job,
	// in job order. A job with zero scalars yields the group identity.
	CommitBatch(jobs []Job) [][32]byte

	// MSMSingle computes a single multi-scalar multiplication; used
	// directly by the IPA prover/verifier for fold operations.
	MSMSingle(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point
}

// msmSingle is the one true multi-scalar multiplication routine shared
// by every backend. Accumulation runs in ascending index order; since
// Ristretto255 point addition is exact (not floating point), any
// accumulation order produces the identical canonical point, so fixing
// the order here is a matter of clarity, not correctness.
func msmSingle(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var acc ristretto.Point
	acc.SetZero()
	if len(scalars) == 0 {
		return &acc
	}
	var term ristretto.Point
	for i := range scalars {
		term.ScalarMult(points[i], scalars[i])
		acc.Add(&acc, &term)
	}
	return &acc
}

func commitJob(j Job) [32]byte {
	p := msmSingle(j.Scalars, j.Generators)
	var out [32]byte
	copy(out[:], p.Bytes())
	return out
}
