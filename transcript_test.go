package blitzar

import (
	"encoding/hex"
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
)

func TestTranscriptDeterminism(t *testing.T) {
	assert := assert.New(t)

	tt := NewTranscript(ippInitialLabel)
	InnerproductDomainSep(64, tt)
	a := hex.EncodeToString(tt.ExtractBytes([]byte("digest32"), 32))

	tt2 := NewTranscript(ippInitialLabel)
	InnerproductDomainSep(64, tt2)
	b := hex.EncodeToString(tt2.ExtractBytes([]byte("digest32"), 32))

	assert.Equal(a, b, "two transcripts that absorbed the same (label, bytes) sequence must produce identical challenges")
}

func TestTranscriptDomainSepChangesOutput(t *testing.T) {
	assert := assert.New(t)

	plain := NewTranscript(ippInitialLabel)
	plainDigest := hex.EncodeToString(plain.ExtractBytes([]byte("digest32"), 32))

	domainSeparated := NewTranscript(ippInitialLabel)
	InnerproductDomainSep(64, domainSeparated)
	domainDigest := hex.EncodeToString(domainSeparated.ExtractBytes([]byte("digest32"), 32))

	assert.NotEqual(plainDigest, domainDigest)
}

func TestTranscriptDomainSepVariesWithN(t *testing.T) {
	assert := assert.New(t)

	t64 := NewTranscript(ippInitialLabel)
	InnerproductDomainSep(64, t64)
	digest64 := hex.EncodeToString(t64.ExtractBytes([]byte("digest32"), 32))

	t32 := NewTranscript(ippInitialLabel)
	InnerproductDomainSep(32, t32)
	digest32 := hex.EncodeToString(t32.ExtractBytes([]byte("digest32"), 32))

	assert.NotEqual(digest64, digest32)
}

func TestChallengeScalarIsWideReduced(t *testing.T) {
	assert := assert.New(t)

	tt := NewTranscript("challenge-scalar-test")
	data := tt.ExtractBytes([]byte("y"), 64)

	tt2 := NewTranscript("challenge-scalar-test")
	scalar := ChallengeScalar("y", tt2)

	assert.Equal(hex.EncodeToString(fromBytesModOrderWide(data).Bytes()), hex.EncodeToString(scalar.Bytes()))
}

func TestPointAdditionIsCommutative(t *testing.T) {
	assert := assert.New(t)

	var r, r1, r2 ristretto.Point
	r1.Rand()
	r2.Rand()
	assert.Equal(hex.EncodeToString(r.Add(&r1, &r2).Bytes()), hex.EncodeToString(r.Add(&r2, &r1).Bytes()))
}
