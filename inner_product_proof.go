package blitzar

import (
	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"

	"github.com/Adamphu/blitzar/internal/backend"
)

// InnerProductProof is the prove() output of spec.md §4.7: a log2(n)
// round fold of a single generator vector against one extra base Q,
// attesting to <a,G> = A and <a,b> = z. The verifier is given b in the
// clear, and the proof is not zero-knowledge with respect to a.
type InnerProductProof struct {
	LVec  []*ristretto.Point
	RVec  []*ristretto.Point
	AStar *ristretto.Scalar
}

// ProveInnerProduct implements spec.md §4.7. n is the logical sequence
// length before padding; genOffset selects where in the Oracle G is
// fetched from. a and b are trusted-input vectors of length n.
func (lib *Library) ProveInnerProduct(transcript *merlin.Transcript, n uint64, genOffset uint64, a, b []*ristretto.Scalar) *InnerProductProof {
	if n == 0 {
		fail("ProveInnerProduct", "n must be > 0")
	}
	if uint64(len(a)) != n || uint64(len(b)) != n {
		fail("ProveInnerProduct", "a, b must have length n")
	}
	requireInit(lib, "ProveInnerProduct")

	np := nextPowerOfTwo(int(n))
	k := 0
	for (1 << k) < np {
		k++
	}

	// G[0..np] plus the extra base Q = G[np].
	gens := lib.generators.getRange(genOffset, uint64(np)+1)
	G := gens[:np]
	Q := gens[np]

	aPad := padScalars(a, np)
	bPad := padScalars(b, np)

	InnerproductDomainSep(uint64(n), transcript)

	var LVec, RVec []*ristretto.Point

	m := np
	for j := k - 1; j >= 0; j-- {
		m = m / 2

		aLo, aHi := aPad[:m], aPad[m:]
		bLo, bHi := bPad[:m], bPad[m:]
		gLo, gHi := G[:m], G[m:]

		cL := innerProduct(aLo, bHi)
		cR := innerProduct(aHi, bLo)

		L := combinedMSM(lib.engine, aLo, gHi, cL, Q)
		R := combinedMSM(lib.engine, aHi, gLo, cR, Q)

		LVec = append(LVec, L)
		RVec = append(RVec, R)

		AppendPoint("L", L, transcript)
		AppendPoint("R", R, transcript)

		u := ChallengeScalar("x", transcript)
		var zero ristretto.Scalar
		zero.SetZero()
		if zero.Equals(u) {
			fail("ProveInnerProduct", "transcript produced a zero challenge")
		}
		var uInv ristretto.Scalar
		uInv.Inverse(u)

		nextA := make([]*ristretto.Scalar, m)
		nextB := make([]*ristretto.Scalar, m)
		nextG := make([]*ristretto.Point, m)
		for i := 0; i < m; i++ {
			var t1, t2 ristretto.Scalar
			var foldA ristretto.Scalar
			nextA[i] = foldA.Add(t1.Mul(u, aLo[i]), t2.Mul(&uInv, aHi[i]))

			var t3, t4 ristretto.Scalar
			var foldB ristretto.Scalar
			nextB[i] = foldB.Add(t3.Mul(&uInv, bLo[i]), t4.Mul(u, bHi[i]))

			nextG[i] = lib.engine.MSMSingle([]*ristretto.Scalar{&uInv, u}, []*ristretto.Point{gLo[i], gHi[i]})
		}

		aPad = nextA
		bPad = nextB
		G = nextG
	}

	return &InnerProductProof{
		LVec:  LVec,
		RVec:  RVec,
		AStar: aPad[0],
	}
}

func (p *InnerProductProof) ToBytes() []byte {
	var buf []byte
	for i := range p.LVec {
		buf = append(buf, p.LVec[i].Bytes()...)
		buf = append(buf, p.RVec[i].Bytes()...)
	}
	buf = append(buf, p.AStar.Bytes()...)
	return buf
}

// padScalars zero-pads vec to length np, per spec.md §4.7 step 2.
func padScalars(vec []*ristretto.Scalar, np int) []*ristretto.Scalar {
	out := make([]*ristretto.Scalar, np)
	copy(out, vec)
	for i := len(vec); i < np; i++ {
		var zero ristretto.Scalar
		zero.SetZero()
		out[i] = &zero
	}
	return out
}

// combinedMSM computes <a, G> + c*Q in one pass, matching the teacher's
// vartimeMultiscalarMul helper restructured for the single-vector IPA's
// L_j / R_j computation (spec.md §4.7 step 3), routed through the
// configured backend engine like every other fold in the prover and
// verifier.
func combinedMSM(engine backend.Engine, a []*ristretto.Scalar, g []*ristretto.Point, c *ristretto.Scalar, Q *ristretto.Point) *ristretto.Point {
	scalars := make([]*ristretto.Scalar, len(a)+1)
	copy(scalars, a)
	scalars[len(a)] = c

	points := make([]*ristretto.Point, len(g)+1)
	copy(points, g)
	points[len(g)] = Q

	return engine.MSMSingle(scalars, points)
}
