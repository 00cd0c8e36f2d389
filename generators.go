package blitzar

import (
	"encoding/binary"
	"sync"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/sha3"
)

// generatorDomainLabel domain-separates the generator stream from any
// other use of SHAKE256 within this module.
const generatorDomainLabel = "blitzar-generator-oracle-v1"

// generatorAt computes G[i], the i-th element of the deterministic
// generator stream, in O(1) time independent of i: a fresh SHAKE256
// state is seeded with the domain label and the 8-byte little-endian
// encoding of i, 64 bytes are squeezed out, and those bytes are mapped
// to a Ristretto255 point with two Elligator maps added together — the
// same hash-to-point shape the teacher's pointFromUniformBytes uses,
// restructured here so that no generator's derivation depends on any
// other generator having been computed first (spec.md §4.1's random
// access and embarrassingly-parallel requirements; the teacher's own
// GeneratorsChain advances a single SHAKE stream and is O(n) to reach
// offset n, which does not satisfy that requirement).
func generatorAt(i uint64) *ristretto.Point {
	h := sha3.NewShake256()
	h.Write([]byte(generatorDomainLabel))
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], i)
	h.Write(idx[:])

	var wide [64]byte
	h.Read(wide[:])

	return pointFromUniformBytes(wide[:])
}

// pointFromUniformBytes maps 64 uniformly random bytes to a Ristretto255
// point by summing two independent Elligator-mapped halves.
func pointFromUniformBytes(key []byte) *ristretto.Point {
	var r1Bytes, r2Bytes [32]byte
	copy(r1Bytes[:], key[:32])
	copy(r2Bytes[:], key[32:64])
	var r, r1, r2 ristretto.Point
	return r.Add(r1.SetElligator(&r1Bytes), r2.SetElligator(&r2Bytes))
}

// generatorOracle implements the Generator Oracle and the One-Commit
// Cache. Both caches are monotonic, grow-only, and guarded by a single
// mutex: spec.md §5 asks for "lock-free preferred; a monotonic grow-only
// cache suffices" — a grow-only cache guarded by a plain mutex meets the
// correctness requirement (internally synchronized, safe under
// concurrent reads) without the complexity of a lock-free structure the
// MSM hot path doesn't need.
type generatorOracle struct {
	mu sync.Mutex

	precomputed []*ristretto.Point // precomputed[i] == G[i]

	oneCommits []*ristretto.Point // oneCommits[n] == one_commit(n)
}

func newGeneratorOracle(numPrecomputed uint64) *generatorOracle {
	o := &generatorOracle{}
	if numPrecomputed > 0 {
		o.precomputed = make([]*ristretto.Point, numPrecomputed)
		for i := range o.precomputed {
			o.precomputed[i] = generatorAt(uint64(i))
		}
	}

	var identity ristretto.Point
	identity.SetZero()
	o.oneCommits = []*ristretto.Point{&identity}

	return o
}

// get returns G[i], using the precomputed window when possible.
func (o *generatorOracle) get(i uint64) *ristretto.Point {
	o.mu.Lock()
	if i < uint64(len(o.precomputed)) {
		p := o.precomputed[i]
		o.mu.Unlock()
		return p
	}
	o.mu.Unlock()
	return generatorAt(i)
}

// getRange returns [G[offset], ..., G[offset+count-1]].
func (o *generatorOracle) getRange(offset, count uint64) []*ristretto.Point {
	out := make([]*ristretto.Point, count)
	for j := uint64(0); j < count; j++ {
		out[j] = o.get(offset + j)
	}
	return out
}

// oneCommit returns Sum_{i<n} G[i], extending the memoized prefix-sum
// cache from its current high-water mark when n exceeds it. The
// recurrence one_commit(n+1) = one_commit(n) + G[n] (spec.md §4.2, §8)
// is exactly how the cache grows.
func (o *generatorOracle) oneCommit(n uint64) *ristretto.Point {
	o.mu.Lock()
	defer o.mu.Unlock()

	for uint64(len(o.oneCommits)) <= n {
		next := uint64(len(o.oneCommits)) - 1
		// o.mu is already held, so read G[next] without going through
		// get, which would lock o.mu a second time.
		var g *ristretto.Point
		if next < uint64(len(o.precomputed)) {
			g = o.precomputed[next]
		} else {
			g = generatorAt(next)
		}
		var sum ristretto.Point
		sum.Add(o.oneCommits[next], g)
		o.oneCommits = append(o.oneCommits, &sum)
	}
	return o.oneCommits[n]
}

// GetGenerators implements spec.md §6's sxt_get_generators: requesting
// zero generators is a successful no-op regardless of out.
func (lib *Library) GetGenerators(out [][32]byte, offsetGenerators, numGenerators uint64) error {
	if numGenerators == 0 {
		return nil
	}
	if out == nil {
		return ErrNilOutput
	}
	requireInit(lib, "GetGenerators")

	points := lib.generators.getRange(offsetGenerators, numGenerators)
	for i, p := range points {
		copy(out[i][:], p.Bytes())
	}
	return nil
}

// GetOneCommit implements spec.md §6's sxt_get_one_commit.
func (lib *Library) GetOneCommit(out *[32]byte, n uint64) error {
	if out == nil {
		return ErrNilOutput
	}
	requireInit(lib, "GetOneCommit")

	p := lib.generators.oneCommit(n)
	copy(out[:], p.Bytes())
	return nil
}
