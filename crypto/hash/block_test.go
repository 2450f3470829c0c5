package hash

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// loadBlockReversed loads a block the "reversed-index" way: the bytes are
// stored back to front in a buffer that is then read as little-endian words,
// and the schedule takes the words in reverse order.
func loadBlockReversed(x *[blockWords]uint32, p []byte) {
	var buf [BlockSize]byte
	for i := 0; i < BlockSize; i++ {
		buf[BlockSize-1-i] = p[i]
	}
	var le [blockWords]uint32
	for k := range le {
		le[k] = binary.LittleEndian.Uint32(buf[4*k:])
	}
	for t := range x {
		x[t] = le[blockWords-1-t]
	}
}

// sumReversed hashes data with the reversed-index loader and byte-level
// padding (message || 0x80 || zeros || 64-bit big-endian bit length).
func sumReversed(iv [8]uint32, data []byte) [8]uint32 {
	padded := append([]byte{}, data...)
	padded = append(padded, 0x80)
	for len(padded)%BlockSize != BlockSize-8 {
		padded = append(padded, 0)
	}
	padded = binary.BigEndian.AppendUint64(padded, uint64(len(data))*8)

	var (
		h = iv
		w [rounds]uint32
		x [blockWords]uint32
	)
	for len(padded) > 0 {
		loadBlockReversed(&x, padded)
		block(&h, &w, &x)
		padded = padded[BlockSize:]
	}
	return h
}

func TestReversedIndexLoading(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SliceOfN(rapid.Byte(), BlockSize, BlockSize).Draw(t, "block")
		var canonical, reversed [blockWords]uint32
		loadBlock(&canonical, p)
		loadBlockReversed(&reversed, p)
		require.Equal(t, canonical, reversed)
	})

	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 3*BlockSize).Draw(t, "data")
		h := sumReversed(iv256, data)
		var out [HashLenSHA2_256]byte
		putWords(out[:], &h)
		require.Equal(t, Sum256(data), out)
	})
}

// TestLengthFieldAgreement checks the shift/mask length words against a
// byte-swapping derivation of the same 64-bit big-endian field.
func TestLengthFieldAgreement(t *testing.T) {
	check := func(t require.TestingT, byteLen uint64) {
		var field [8]byte
		binary.BigEndian.PutUint64(field[:], byteLen*8)

		hi, lo := lengthWords(byteLen)
		require.Equal(t, binary.BigEndian.Uint32(field[:4]), hi, "byte length %d", byteLen)
		require.Equal(t, binary.BigEndian.Uint32(field[4:]), lo, "byte length %d", byteLen)
	}

	rapid.Check(t, func(t *rapid.T) {
		check(t, rapid.Uint64Range(0, 1<<61-1).Draw(t, "byteLen"))
	})

	for _, byteLen := range []uint64{0, 1, 55, 56, 64, 1 << 29, 1<<29 - 1, 1<<32 - 1, 1 << 32, 1<<61 - 1} {
		check(t, byteLen)
	}
}

func TestTailWord(t *testing.T) {
	assert.Equal(t, uint32(0x80000000), tailWord(nil, 0x80))
	assert.Equal(t, uint32(0x61800000), tailWord([]byte{0x61}, 0x80))
	assert.Equal(t, uint32(0x61628000), tailWord([]byte{0x61, 0x62}, 0x80))
	assert.Equal(t, uint32(0x61626380), tailWord([]byte{0x61, 0x62, 0x63}, 0x80))
	assert.Panics(t, func() { tailWord([]byte{1, 2, 3, 4}, 0x80) })
}

// TestPaddingOverflow checks the tail positions around the length field:
// a message whose padding byte lands in word 14 or 15 needs an extra block.
func TestPaddingOverflow(t *testing.T) {
	for length := 48; length <= 72; length++ {
		data := make([]byte, length)
		for i := range data {
			data[i] = byte(i)
		}
		h := sumReversed(iv224, data)
		var expected [HashLenSHA2_224]byte
		putWords(expected[:], &h)
		assert.Equal(t, expected, Sum224(data), "length %d", length)
	}
}

// TestTruncation checks that SHA-224 is the first 28 bytes of the state
// obtained from the SHA-224 IV through the shared compression.
func TestTruncation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 2*BlockSize).Draw(t, "data")

		h := iv224
		sum(&h, data)
		var full [32]byte
		putWords(full[:], &h)

		digest := Sum224(data)
		require.Equal(t, full[:HashLenSHA2_224], digest[:])

		// the SHA-256 IV gives a different state
		sha256Digest := Sum256(data)
		require.NotEqual(t, sha256Digest[:HashLenSHA2_224], digest[:])
	})
}

func TestCompressionWrapsAround(t *testing.T) {
	h := [8]uint32{0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff}
	x := [blockWords]uint32{0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff}
	var w [rounds]uint32
	assert.NotPanics(t, func() { block(&h, &w, &x) })

	// the schedule words 0 to 15 are the block words
	assert.Equal(t, x[:], w[:blockWords])
}
