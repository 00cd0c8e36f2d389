package blitzar

import (
	"github.com/bwesterb/go-ristretto"
)

// multiscalarMul is the same sequential-accumulation multi-scalar
// multiply the teacher's mod.go defines: an MSM that does not go
// through the configured backend. Only the IPA tests call it, to build
// the commitment A = <a,G>.
func multiscalarMul(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var p ristretto.Point
	p.SetZero()
	for i := range scalars {
		var t ristretto.Point
		t.ScalarMult(points[i], scalars[i])
		p.Add(&p, &t)
	}
	return &p
}

// fromBytesModOrderWide reduces up to 64 bytes modulo ℓ with a wide
// reduction, used both by challenge_scalar and by the sequence
// normalizer's unsigned path.
func fromBytesModOrderWide(data []byte) *ristretto.Scalar {
	var data64 [64]byte
	copy(data64[:], data)
	var hs ristretto.Scalar
	return hs.SetReduced(&data64)
}

// nextPowerOfTwo returns the smallest power of two >= v, or 1 if v <= 0.
func nextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}

// innerProduct computes <a,b> mod ℓ.
func innerProduct(a, b []*ristretto.Scalar) *ristretto.Scalar {
	var sum ristretto.Scalar
	sum.SetZero()
	for i := range a {
		var term ristretto.Scalar
		term.Mul(a[i], b[i])
		sum.Add(&sum, &term)
	}
	return &sum
}
