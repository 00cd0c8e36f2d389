package blitzar

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
	gtankristretto "github.com/gtank/ristretto255"
)

// canonicalDecodeCheck rejects non-canonical Ristretto255 encodings in
// untrusted verifier input (spec.md §3's decode invariant, §4.8's "any
// malformed point encoding... yields reject"). It uses
// github.com/gtank/ristretto255's Decode purely as a validity gate;
// the bwesterb/go-ristretto representation used for arithmetic
// elsewhere in this module does not itself reject non-canonical
// encodings, so this check runs first on every untrusted point.
func canonicalDecodeCheck(encoded [32]byte) bool {
	el := gtankristretto.NewElement()
	return el.Decode(encoded[:]) == nil
}

// decodeUntrustedPoint runs the canonical gate and, if it passes,
// decodes into the bwesterb/go-ristretto representation used for the
// rest of the verifier's arithmetic. ok is false on a non-canonical or
// otherwise malformed encoding.
func decodeUntrustedPoint(encoded [32]byte) (p *ristretto.Point, ok bool) {
	if !canonicalDecodeCheck(encoded) {
		return nil, false
	}
	var pt ristretto.Point
	pt.SetBytes(&encoded)
	return &pt, true
}

// VerifyInnerProduct implements spec.md §4.8. A and the proof's L/R
// points are untrusted; any malformed or non-canonical encoding yields
// reject (false), never a panic. n == 0 is still a precondition
// violation per spec.md §7 class 1, since the caller controls n.
func (lib *Library) VerifyInnerProduct(transcript *merlin.Transcript, n uint64, genOffset uint64, b []*ristretto.Scalar, z *ristretto.Scalar, aCommitment [32]byte, proof *InnerProductProof) bool {
	if n == 0 {
		fail("VerifyInnerProduct", "n must be > 0")
	}
	if proof == nil {
		fail("VerifyInnerProduct", "proof must be non-nil")
	}
	requireInit(lib, "VerifyInnerProduct")

	np := nextPowerOfTwo(int(n))
	k := 0
	for (1 << k) < np {
		k++
	}
	if len(proof.LVec) != k || len(proof.RVec) != k {
		return false
	}

	A, ok := decodeUntrustedPoint(aCommitment)
	if !ok {
		return false
	}

	L := make([]*ristretto.Point, k)
	R := make([]*ristretto.Point, k)
	for j := 0; j < k; j++ {
		var lEnc, rEnc [32]byte
		copy(lEnc[:], proof.LVec[j].Bytes())
		copy(rEnc[:], proof.RVec[j].Bytes())
		if L[j], ok = decodeUntrustedPoint(lEnc); !ok {
			return false
		}
		if R[j], ok = decodeUntrustedPoint(rEnc); !ok {
			return false
		}
	}

	gens := lib.generators.getRange(genOffset, uint64(np)+1)
	G := gens[:np]
	Q := gens[np]

	bPad := padScalars(b, np)

	InnerproductDomainSep(uint64(n), transcript)

	u := make([]*ristretto.Scalar, k)
	for idx := 0; idx < k; idx++ {
		AppendPoint("L", L[idx], transcript)
		AppendPoint("R", R[idx], transcript)
		u[idx] = ChallengeScalar("x", transcript)
		var zero ristretto.Scalar
		zero.SetZero()
		if zero.Equals(u[idx]) {
			return false
		}
	}

	// u[0] corresponds to round j = k-1 (spec.md §4.7's "most-significant
	// round first" ordering); uAt(j) below re-indexes into that order.
	uAt := func(j int) *ristretto.Scalar { return u[k-1-j] }

	uInv := make([]*ristretto.Scalar, k)
	for idx := range u {
		var inv ristretto.Scalar
		inv.Inverse(u[idx])
		uInv[idx] = &inv
	}
	uInvAt := func(j int) *ristretto.Scalar { return uInv[k-1-j] }

	// s_i = Prod_j u_j^{e_ij}, e_ij = +1 if bit j of i is 1, else -1.
	s := make([]*ristretto.Scalar, np)
	for i := 0; i < np; i++ {
		bits := bitset.From([]uint64{uint64(i)})
		var acc ristretto.Scalar
		acc.SetOne()
		for j := 0; j < k; j++ {
			var factor *ristretto.Scalar
			if bits.Test(uint(j)) {
				factor = uAt(j)
			} else {
				factor = uInvAt(j)
			}
			var next ristretto.Scalar
			next.Mul(&acc, factor)
			acc = next
		}
		sv := acc
		s[i] = &sv
	}

	// b' = <s, b>: the prover folds b with exactly the same exponents
	// as G (b <- u^-1*b_lo + u*b_hi, same direction as G's fold), so the
	// verifier's collapsed b uses s, not its inverse.
	var bPrime ristretto.Scalar
	bPrime.SetZero()
	for i := 0; i < np; i++ {
		var term ristretto.Scalar
		term.Mul(s[i], bPad[i])
		bPrime.Add(&bPrime, &term)
	}

	// G' = <s, G>.
	GPrime := lib.engine.MSMSingle(s, G)

	// Accept iff a*.G' + (a*.b').Q == A + z.Q + sum_j(u_j^2 L_j + u_j^-2 R_j).
	var aStarBPrime ristretto.Scalar
	aStarBPrime.Mul(proof.AStar, &bPrime)

	lhs := lib.engine.MSMSingle(
		[]*ristretto.Scalar{proof.AStar, &aStarBPrime},
		[]*ristretto.Point{GPrime, Q},
	)

	rhsScalars := make([]*ristretto.Scalar, 0, 2+2*k)
	rhsPoints := make([]*ristretto.Point, 0, 2+2*k)

	var one ristretto.Scalar
	one.SetOne()
	rhsScalars = append(rhsScalars, &one, z)
	rhsPoints = append(rhsPoints, A, Q)

	for idx := 0; idx < k; idx++ {
		var uSq, uInvSq ristretto.Scalar
		uSq.Mul(u[idx], u[idx])
		uInvSq.Mul(uInv[idx], uInv[idx])
		rhsScalars = append(rhsScalars, &uSq, &uInvSq)
		rhsPoints = append(rhsPoints, L[idx], R[idx])
	}

	rhs := lib.engine.MSMSingle(rhsScalars, rhsPoints)

	return lhs.Equals(rhs)
}
