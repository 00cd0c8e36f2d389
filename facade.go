package blitzar

import (
	"github.com/bwesterb/go-ristretto"

	"github.com/Adamphu/blitzar/internal/backend"
)

// ComputePedersenCommitments implements spec.md §4.5's
// compute_pedersen_commitments: S[j] = G[offset_generators + j], drawn
// from the Oracle.
func (lib *Library) ComputePedersenCommitments(out [][32]byte, descriptors []SequenceDescriptor, offsetGenerators uint64) {
	validateFacadeInputs(out, descriptors)
	requireInit(lib, "ComputePedersenCommitments")

	if len(descriptors) == 0 {
		return
	}

	maxN := 0
	for _, d := range descriptors {
		if d.N > maxN {
			maxN = d.N
		}
	}
	gens := lib.generators.getRange(offsetGenerators, uint64(maxN))

	dispatch(lib.engine, out, descriptors, gens)
}

// ComputePedersenCommitmentsWithGenerators implements spec.md §4.5's
// compute_pedersen_commitments_with_generators: the caller supplies the
// generator array directly, bypassing the Oracle.
func (lib *Library) ComputePedersenCommitmentsWithGenerators(out [][32]byte, descriptors []SequenceDescriptor, generators []*ristretto.Point) {
	validateFacadeInputs(out, descriptors)
	requireInit(lib, "ComputePedersenCommitmentsWithGenerators")

	maxN := 0
	for _, d := range descriptors {
		if d.N > maxN {
			maxN = d.N
		}
	}
	if len(generators) < maxN {
		fail("ComputePedersenCommitmentsWithGenerators", "generators shorter than max_i n_i")
	}

	if len(descriptors) == 0 {
		return
	}

	dispatch(lib.engine, out, descriptors, generators)
}

// validateFacadeInputs enforces spec.md §4.5's precondition list: a
// violation here is a programmer error, fatal per spec.md §7 class 1.
func validateFacadeInputs(out [][32]byte, descriptors []SequenceDescriptor) {
	if descriptors == nil {
		fail("ComputePedersenCommitments", "descriptors must be non-nil")
	}
	if len(descriptors) > 0 && out == nil {
		fail("ComputePedersenCommitments", "out must be non-nil")
	}
	if out != nil && len(out) < len(descriptors) {
		fail("ComputePedersenCommitments", "out shorter than descriptor count")
	}
	for _, d := range descriptors {
		if d.ElementNBytes < 1 || d.ElementNBytes > 32 {
			fail("ComputePedersenCommitments", "descriptor width out of [1, 32]")
		}
		if d.N > 0 && d.Data == nil {
			fail("ComputePedersenCommitments", "descriptor data must be non-nil when n > 0")
		}
	}
}

// dispatch normalizes every descriptor into scalars and hands the
// resulting jobs to the configured backend in one batch, so that
// sequences sharing the same generator prefix amortize generator loads
// (spec.md §4.4's cross-sequence batching).
func dispatch(engine backend.Engine, out [][32]byte, descriptors []SequenceDescriptor, gens []*ristretto.Point) {
	jobs := make([]backend.Job, len(descriptors))
	for i, d := range descriptors {
		jobs[i] = backend.Job{
			Scalars:    normalizeSequence(d),
			Generators: gens,
		}
	}
	results := engine.CommitBatch(jobs)
	copy(out, results)
}
