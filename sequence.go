package blitzar

import (
	"github.com/bwesterb/go-ristretto"
)

// SequenceDescriptor is the (element_nbytes, n, data, is_signed) tuple
// of spec.md §3: a contiguous little-endian buffer of n fixed-width
// elements, interpreted either as unsigned magnitudes or as signed
// two's-complement values.
type SequenceDescriptor struct {
	ElementNBytes int
	N             int
	Data          []byte
	IsSigned      bool
}

// normalizeSequence lifts a descriptor's raw bytes into a slice of n
// scalars in Z/ℓZ.
//
// The unsigned path always passes the raw little-endian bytes through a
// wide (512-bit) modular reduction, which is also correct for
// element_nbytes == 32, where the raw value can exceed ℓ.
//
// The signed path never reduces a sign-extended two's-complement bit
// pattern directly: element_nbytes <= 16 whenever is_signed (spec.md
// §3's descriptor constraint), so the raw magnitude is always < 2^128,
// comfortably less than ℓ. Decoding the two's-complement value as a
// signed magnitude e and then, for e < 0, computing the scalar ℓ - |e|
// via a single scalar subtraction is both simpler and unambiguously
// correct; wide-reducing a 128-bit sign-extended-to-512-bit pattern
// would instead compute e mod ℓ directly, which coincides with ℓ - |e|
// only because |e| < ℓ — but going through the subtraction makes that
// fact explicit rather than incidental.
func normalizeSequence(d SequenceDescriptor) []*ristretto.Scalar {
	if d.ElementNBytes == 0 || d.ElementNBytes > 32 {
		fail("normalizeSequence", "element_nbytes out of range")
	}
	if d.N > 0 && d.Data == nil {
		fail("normalizeSequence", "nil data for non-empty sequence")
	}
	if len(d.Data) < d.N*d.ElementNBytes {
		fail("normalizeSequence", "data shorter than n*element_nbytes")
	}

	out := make([]*ristretto.Scalar, d.N)
	for i := 0; i < d.N; i++ {
		raw := d.Data[i*d.ElementNBytes : (i+1)*d.ElementNBytes]
		if d.IsSigned {
			out[i] = normalizeSignedElement(raw)
		} else {
			out[i] = normalizeUnsignedElement(raw)
		}
	}
	return out
}

func normalizeUnsignedElement(raw []byte) *ristretto.Scalar {
	return fromBytesModOrderWide(raw)
}

func normalizeSignedElement(raw []byte) *ristretto.Scalar {
	n := len(raw)
	negative := raw[n-1]&0x80 != 0

	magnitude := make([]byte, n)
	copy(magnitude, raw)
	if negative {
		// two's-complement negate in place: invert bits, add one.
		carry := byte(1)
		for i := 0; i < n; i++ {
			magnitude[i] = ^magnitude[i]
			sum := uint16(magnitude[i]) + uint16(carry)
			magnitude[i] = byte(sum)
			carry = byte(sum >> 8)
		}
	}

	var s ristretto.Scalar
	s.SetZero()
	result := fromBytesModOrderWide(magnitude)
	if negative {
		s.Sub(&s, result) // 0 - |e| == ℓ - |e| in the scalar field
		return &s
	}
	return result
}
