package blitzar

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnsignedSingleByte(t *testing.T) {
	assert := assert.New(t)

	scalars := normalizeSequence(SequenceDescriptor{
		ElementNBytes: 1,
		N:             1,
		Data:          []byte{1},
		IsSigned:      false,
	})

	var one ristretto.Scalar
	one.SetOne()
	assert.Equal(one.Bytes(), scalars[0].Bytes())
}

func TestNormalizeUnsignedWideValueReducesModL(t *testing.T) {
	assert := assert.New(t)

	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = 0xff
	}

	scalars := normalizeSequence(SequenceDescriptor{
		ElementNBytes: 32,
		N:             1,
		Data:          raw,
		IsSigned:      false,
	})

	assert.Equal(fromBytesModOrderWide(raw).Bytes(), scalars[0].Bytes())
}

func TestNormalizeSignedNegativeOne(t *testing.T) {
	assert := assert.New(t)

	// -1 in two's-complement, element_nbytes = 1.
	scalars := normalizeSequence(SequenceDescriptor{
		ElementNBytes: 1,
		N:             1,
		Data:          []byte{0xff},
		IsSigned:      true,
	})

	var one, ell ristretto.Scalar
	one.SetOne()
	ell.SetZero()
	ell.Sub(&ell, &one) // ℓ - 1

	assert.Equal(ell.Bytes(), scalars[0].Bytes())
}

func TestNormalizeSignedPositiveMatchesUnsigned(t *testing.T) {
	assert := assert.New(t)

	signed := normalizeSequence(SequenceDescriptor{
		ElementNBytes: 2,
		N:             1,
		Data:          []byte{0x2a, 0x00}, // +42
		IsSigned:      true,
	})
	unsigned := normalizeSequence(SequenceDescriptor{
		ElementNBytes: 2,
		N:             1,
		Data:          []byte{0x2a, 0x00},
		IsSigned:      false,
	})

	assert.Equal(unsigned[0].Bytes(), signed[0].Bytes())
}

func TestNormalizeSignedMinValueDoesNotOverflowWideReduction(t *testing.T) {
	assert := assert.New(t)

	// element_nbytes = 16, most negative value: 0x80 followed by 15 zero bytes,
	// i.e. -2^127. |e| = 2^127 < ℓ by a wide margin, so ℓ - |e| is well defined.
	raw := make([]byte, 16)
	raw[15] = 0x80

	scalars := normalizeSequence(SequenceDescriptor{
		ElementNBytes: 16,
		N:             1,
		Data:          raw,
		IsSigned:      true,
	})

	assert.NotPanics(func() {
		_ = scalars[0].Bytes()
	})
}

func TestNormalizeRejectsZeroWidth(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		normalizeSequence(SequenceDescriptor{ElementNBytes: 0, N: 1, Data: []byte{1}})
	})
}

func TestNormalizeRejectsOversizeWidth(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		normalizeSequence(SequenceDescriptor{ElementNBytes: 33, N: 1, Data: make([]byte, 33)})
	})
}

func TestNormalizeEmptySequenceYieldsNoScalars(t *testing.T) {
	assert := assert.New(t)

	scalars := normalizeSequence(SequenceDescriptor{ElementNBytes: 1, N: 0, Data: nil, IsSigned: false})
	assert.Len(scalars, 0)
}
