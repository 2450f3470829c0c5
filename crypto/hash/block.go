package hash

import (
	"encoding/binary"
	"math/bits"
)

// SHA-224 and SHA-256 round constants (FIPS 180-4, section 4.2.2).
var _K = [rounds]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// initial hash values (FIPS 180-4, sections 5.3.2 and 5.3.3)
var (
	iv224 = [8]uint32{
		0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939,
		0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
	}
	iv256 = [8]uint32{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	}
)

func sigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ (x >> 3)
}

func sigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ (x >> 10)
}

func bigSigma0(x uint32) uint32 {
	return bits.RotateLeft32(x, -2) ^ bits.RotateLeft32(x, -13) ^ bits.RotateLeft32(x, -22)
}

func bigSigma1(x uint32) uint32 {
	return bits.RotateLeft32(x, -6) ^ bits.RotateLeft32(x, -11) ^ bits.RotateLeft32(x, -25)
}

func ch(x, y, z uint32) uint32 {
	return (x & y) ^ (^x & z)
}

func maj(x, y, z uint32) uint32 {
	return (x & y) ^ (x & z) ^ (y & z)
}

// expand derives the 64-word message schedule of a block.
func expand(w *[rounds]uint32, x *[blockWords]uint32) {
	copy(w[:blockWords], x[:])
	for t := blockWords; t < rounds; t++ {
		w[t] = sigma1(w[t-2]) + w[t-7] + sigma0(w[t-15]) + w[t-16]
	}
}

// block folds one 16-word block into the state h.
// w is scratch space for the message schedule.
// All additions wrap modulo 2^32.
func block(h *[8]uint32, w *[rounds]uint32, x *[blockWords]uint32) {
	expand(w, x)

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for t := 0; t < rounds; t++ {
		t1 := hh + bigSigma1(e) + ch(e, f, g) + _K[t] + w[t]
		t2 := bigSigma0(a) + maj(a, b, c)

		hh = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

// loadBlock reads a full 64-byte block as 16 big-endian words.
func loadBlock(x *[blockWords]uint32, p []byte) {
	_ = p[BlockSize-1] // bounds check hint to compiler
	for t := 0; t < blockWords; t++ {
		x[t] = binary.BigEndian.Uint32(p[4*t:])
	}
}

// tailWord packs the 0 to 3 pending message bytes, followed by the pad byte,
// into a big-endian word. Lower bytes are zero.
func tailWord(pending []byte, pad byte) uint32 {
	switch len(pending) {
	case 0:
		return uint32(pad) << 24
	case 1:
		return uint32(pending[0])<<24 | uint32(pad)<<16
	case 2:
		return uint32(pending[0])<<24 | uint32(pending[1])<<16 | uint32(pad)<<8
	case 3:
		return uint32(pending[0])<<24 | uint32(pending[1])<<16 | uint32(pending[2])<<8 | uint32(pad)
	default:
		panic("sha2: unreachable pending byte count")
	}
}

// lengthWords splits the message length in bits (byteLen * 8) into the
// high and low words of the 64-bit length field.
func lengthWords(byteLen uint64) (hi, lo uint32) {
	return uint32(byteLen >> 29), uint32(byteLen << 3)
}

// pad terminates the message: the pending bytes and the 0x80 marker become
// the word at index nx, the block is zero filled and the bit length of the
// message is written into words 14 and 15. It runs one or two compressions.
// On return x is dirty and must be considered empty.
func pad(h *[8]uint32, w *[rounds]uint32, x *[blockWords]uint32, nx int, pending []byte, byteLen uint64) {
	x[nx] = tailWord(pending, 0x80)
	nx++
	if nx > blockWords-2 {
		for i := nx; i < blockWords; i++ {
			x[i] = 0
		}
		block(h, w, x)
		nx = 0
	}
	for i := nx; i < blockWords-2; i++ {
		x[i] = 0
	}
	x[blockWords-2], x[blockWords-1] = lengthWords(byteLen)
	block(h, w, x)
}

// putWords serializes the first len(out)/4 words of h big-endian into out.
func putWords(out []byte, h *[8]uint32) {
	for i := 0; i < len(out)/4; i++ {
		binary.BigEndian.PutUint32(out[4*i:], h[i])
	}
}
