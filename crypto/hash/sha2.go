package hash

import (
	"encoding/binary"
)

// SHA2Hasher incrementally computes a SHA-224 or SHA-256 digest.
//
// Data is accepted in chunks of any size through Write (or Update). Complete
// 32-bit words are loaded big-endian into the pending block as they arrive and
// the block is compressed as soon as it holds 16 words, so at most 3 bytes and
// 15 words are carried between calls.
//
// Digest finalizes the hasher: further writes fail with a FinalizedError until
// Reset is called. SumHash reads the digest of the data written so far
// without finalizing.
//
// A SHA2Hasher is not safe for concurrent use.
type SHA2Hasher struct {
	algo      HashingAlgorithm
	outputLen int
	iv        *[8]uint32

	h [8]uint32          // chaining state
	x [blockWords]uint32 // pending block words
	w [rounds]uint32     // message schedule scratch
	b [4]byte            // pending bytes, not yet a full word
	n uint64             // total bytes written

	nx   int // number of words in x, in [0, 16)
	nb   int // number of bytes in b, in [0, 4)
	done bool
}

var _ Hasher = (*SHA2Hasher)(nil)

// NewSHA2_224 returns a new instance of SHA2-224 hasher
func NewSHA2_224() *SHA2Hasher {
	d := &SHA2Hasher{
		algo:      SHA2_224,
		outputLen: HashLenSHA2_224,
		iv:        &iv224,
	}
	d.Reset()
	return d
}

// NewSHA2_256 returns a new instance of SHA2-256 hasher
func NewSHA2_256() *SHA2Hasher {
	d := &SHA2Hasher{
		algo:      SHA2_256,
		outputLen: HashLenSHA2_256,
		iv:        &iv256,
	}
	d.Reset()
	return d
}

// NewSHA2 returns a new hasher for the given algorithm.
// It errors with an InvalidAlgorithmError if the algorithm isn't SHA2_224 or SHA2_256.
func NewSHA2(algo HashingAlgorithm) (*SHA2Hasher, error) {
	switch algo {
	case SHA2_224:
		return NewSHA2_224(), nil
	case SHA2_256:
		return NewSHA2_256(), nil
	default:
		return nil, NewInvalidAlgorithmErrorf("hashing algorithm %s is not supported", algo)
	}
}

// Algorithm returns the hashing algorithm of the hasher.
func (d *SHA2Hasher) Algorithm() HashingAlgorithm {
	return d.algo
}

// Size returns the digest length in bytes.
func (d *SHA2Hasher) Size() int {
	return d.outputLen
}

// BlockSize returns the hash's underlying block size.
func (d *SHA2Hasher) BlockSize() int {
	return BlockSize
}

// Reset puts the hasher back in its initial state, ready to accept data.
func (d *SHA2Hasher) Reset() {
	d.h = *d.iv
	d.x = [blockWords]uint32{}
	d.b = [4]byte{}
	d.n = 0
	d.nx = 0
	d.nb = 0
	d.done = false
}

// Finalized returns true once a digest has been produced and until the next Reset.
func (d *SHA2Hasher) Finalized() bool {
	return d.done
}

// Len returns the number of bytes written since the last Reset.
func (d *SHA2Hasher) Len() uint64 {
	return d.n
}

// pushWord appends a word to the pending block and compresses it once full.
func (d *SHA2Hasher) pushWord(word uint32) {
	d.x[d.nx] = word
	d.nx++
	if d.nx == blockWords {
		block(&d.h, &d.w, &d.x)
		d.nx = 0
	}
}

// Write adds data to the hash state.
//
// It returns a FinalizedError if the hasher has been finalized by Digest or
// DigestInto. Writing an empty slice to a hasher accepting data has no effect.
func (d *SHA2Hasher) Write(p []byte) (int, error) {
	if d.done {
		return 0, NewFinalizedErrorf("cannot write %d bytes", len(p))
	}
	if len(p) == 0 {
		return 0, nil
	}
	written := len(p)
	d.n += uint64(written)

	// complete the pending word first
	if d.nb > 0 {
		need := 4 - d.nb
		if len(p) < need {
			d.nb += copy(d.b[d.nb:], p)
			return written, nil
		}
		copy(d.b[d.nb:], p[:need])
		p = p[need:]
		d.nb = 0
		d.pushWord(binary.BigEndian.Uint32(d.b[:]))
	}

	// fast path: whole blocks straight from the input when aligned on a block boundary
	if d.nx == 0 {
		for len(p) >= BlockSize {
			loadBlock(&d.x, p)
			block(&d.h, &d.w, &d.x)
			p = p[BlockSize:]
		}
	}

	for len(p) >= 4 {
		d.pushWord(binary.BigEndian.Uint32(p))
		p = p[4:]
	}

	d.nb = copy(d.b[:], p)
	return written, nil
}

// Update adds data to the hash state. It is Write without the byte count.
func (d *SHA2Hasher) Update(p []byte) error {
	_, err := d.Write(p)
	return err
}

// finalize pads the message and runs the final compression(s).
func (d *SHA2Hasher) finalize() {
	pad(&d.h, &d.w, &d.x, d.nx, d.b[:d.nb], d.n)
	d.x = [blockWords]uint32{}
	d.nx = 0
	d.nb = 0
	d.done = true
}

// DigestInto finalizes the hasher and writes the digest into out,
// which must be exactly Size() bytes long.
//
// It returns:
//   - InvalidOutputLengthError if len(out) != Size()
//   - FinalizedError if a digest was already produced since the last Reset
//   - nil otherwise
func (d *SHA2Hasher) DigestInto(out []byte) error {
	if len(out) != d.outputLen {
		return NewInvalidOutputLengthError(d.algo, d.outputLen, len(out))
	}
	if d.done {
		return NewFinalizedErrorf("cannot compute the digest twice")
	}
	d.finalize()
	putWords(out, &d.h)
	return nil
}

// Digest finalizes the hasher and returns the digest.
// See DigestInto for the returned errors.
func (d *SHA2Hasher) Digest() (Hash, error) {
	out := make(Hash, d.outputLen)
	if err := d.DigestInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// SumHash returns the digest of the data written so far.
// It does not finalize the hasher, so more data can be written afterwards.
// On a finalized hasher it returns the digest produced by Digest.
func (d *SHA2Hasher) SumHash() Hash {
	c := *d
	if !c.done {
		c.finalize()
	}
	out := make(Hash, c.outputLen)
	putWords(out, &c.h)
	return out
}

// Sum appends the current digest to in, following the hash.Hash convention.
func (d *SHA2Hasher) Sum(in []byte) []byte {
	return append(in, d.SumHash()...)
}

// ComputeHash returns the digest of data.
// The streaming state of the hasher is left untouched.
func (d *SHA2Hasher) ComputeHash(data []byte) Hash {
	out := make(Hash, d.outputLen)
	h := *d.iv
	sum(&h, data)
	putWords(out, &h)
	return out
}
