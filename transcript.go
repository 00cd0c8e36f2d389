package blitzar

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

// ippDomainSep is the STROBE-128 domain separator label the IPA prover
// and verifier both absorb before the first round, and ippInitialLabel
// is the transcript's construction label. Both are part of the wire
// contract and must never change independently on only one side.
const (
	ippInitialLabel = "ipp v1"
	ippDomainSep    = "ipp v1"
)

// NewTranscript starts a fresh STROBE-128 transcript under the given
// construction label.
func NewTranscript(label string) *merlin.Transcript {
	return merlin.NewTranscript(label)
}

// InnerproductDomainSep absorbs the IPA's domain separator and the
// instance size n, matching the teacher's RangeproofDomainSep shape but
// carrying this module's single-vector IPA's domain string instead of
// the rangeproof one.
func InnerproductDomainSep(n uint64, t *merlin.Transcript) *merlin.Transcript {
	appendBytes([]byte("dom-sep"), []byte(ippDomainSep), t)
	appendUint64("n", n, t)
	return t
}

func appendBytes(label, data []byte, t *merlin.Transcript) {
	t.AppendMessage(label, data)
}

func appendUint64(label string, v uint64, t *merlin.Transcript) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	t.AppendMessage([]byte(label), buf[:])
}

// AppendPoint absorbs P's 32-byte compressed encoding under the given
// ASCII label (the IPA uses the one-character labels "L" and "R"), per
// spec.md §4.6.
func AppendPoint(label string, p *ristretto.Point, t *merlin.Transcript) {
	t.AppendMessage([]byte(label), p.Bytes())
}

// AppendScalar absorbs s's 32-byte little-endian encoding under the
// given ASCII label.
func AppendScalar(label string, s *ristretto.Scalar, t *merlin.Transcript) {
	t.AppendMessage([]byte(label), s.Bytes())
}

// ChallengeScalar emits 64 bytes via the transcript's PRF and reduces
// them modulo ℓ with a wide (512-bit) reduction, giving a
// uniformly-distributed scalar challenge.
func ChallengeScalar(label string, t *merlin.Transcript) *ristretto.Scalar {
	buf := t.ExtractBytes([]byte(label), 64)
	return fromBytesModOrderWide(buf)
}
