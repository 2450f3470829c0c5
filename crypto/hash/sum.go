package hash

import (
	gohash "hash"
)

var _ gohash.Hash = (*SHA2Hasher)(nil)

// sum runs the whole message through the compression function, starting
// from the state h. Full blocks are read straight from data, the trailing
// partial block is padded the same way SHA2Hasher pads on finalization.
func sum(h *[8]uint32, data []byte) {
	var (
		w [rounds]uint32
		x [blockWords]uint32
	)
	byteLen := uint64(len(data))

	for len(data) >= BlockSize {
		loadBlock(&x, data)
		block(h, &w, &x)
		data = data[BlockSize:]
	}

	nx := 0
	for ; len(data) >= 4; nx++ {
		x[nx] = uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
		data = data[4:]
	}
	pad(h, &w, &x, nx, data, byteLen)
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [HashLenSHA2_256]byte {
	var out [HashLenSHA2_256]byte
	h := iv256
	sum(&h, data)
	putWords(out[:], &h)
	return out
}

// Sum224 returns the SHA-224 digest of data.
func Sum224(data []byte) [HashLenSHA2_224]byte {
	var out [HashLenSHA2_224]byte
	h := iv224
	sum(&h, data)
	putWords(out[:], &h)
	return out
}

// DoubleSHA256 returns SHA-256(SHA-256(data)).
func DoubleSHA256(data []byte) [HashLenSHA2_256]byte {
	first := Sum256(data)
	return Sum256(first[:])
}

// ComputeSHA2 returns the digest of data using the given algorithm.
// It errors with an InvalidAlgorithmError if the algorithm isn't SHA2_224 or SHA2_256.
func ComputeSHA2(algo HashingAlgorithm, data []byte) (Hash, error) {
	switch algo {
	case SHA2_224:
		digest := Sum224(data)
		return digest[:], nil
	case SHA2_256:
		digest := Sum256(data)
		return digest[:], nil
	default:
		return nil, NewInvalidAlgorithmErrorf("hashing algorithm %s is not supported", algo)
	}
}
