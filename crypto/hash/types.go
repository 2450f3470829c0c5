package hash

//revive:disable:var-naming

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// HashingAlgorithm is an identifier for a hashing algorithm.
type HashingAlgorithm int

const (
	// Supported hashing algorithms
	UnknownHashingAlgorithm HashingAlgorithm = iota
	SHA2_224
	SHA2_256
)

// String returns the string representation of this hashing algorithm.
func (h HashingAlgorithm) String() string {
	if h < UnknownHashingAlgorithm || h > SHA2_256 {
		return fmt.Sprintf("HashingAlgorithm(%d)", int(h))
	}
	return [...]string{"UNKNOWN", "SHA2_224", "SHA2_256"}[h]
}

// ParseHashingAlgorithm maps a user-facing name ("sha224", "SHA2_256", "sha-256", ...)
// to a HashingAlgorithm.
func ParseHashingAlgorithm(name string) (HashingAlgorithm, error) {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name)) {
	case "sha224", "sha2224":
		return SHA2_224, nil
	case "sha256", "sha2256":
		return SHA2_256, nil
	}
	return UnknownHashingAlgorithm, NewInvalidAlgorithmErrorf("unknown hashing algorithm name %q", name)
}

const (
	// Lengths of hash outputs in bytes
	HashLenSHA2_224 = 28
	HashLenSHA2_256 = 32

	// BlockSize is the SHA-2 (224/256) block size in bytes.
	BlockSize = 64

	// block size in 32-bit words
	blockWords = BlockSize / 4
	// number of compression rounds, and of message schedule words
	rounds = 64
)

// Hash is the hash algorithms output type.
type Hash []byte

// Equal checks if a hash is equal to a given hash
func (h Hash) Equal(input Hash) bool {
	return bytes.Equal(h, input)
}

// Hex returns the lowercase hex string representation of the hash, without prefix.
func (h Hash) Hex() string {
	return hex.EncodeToString(h)
}

// String returns the hex string representation of the hash.
func (h Hash) String() string {
	return h.Hex()
}

// Hasher interface
type Hasher interface {
	// Algorithm returns the hashing algorithm of the hasher.
	Algorithm() HashingAlgorithm
	// Size returns the hash output length
	Size() int
	// ComputeHash returns the hash output regardless of the hash state
	ComputeHash([]byte) Hash
	// Write([]bytes) (using the io.Writer interface) adds more bytes to the
	// current hash state
	Write([]byte) (int, error)
	// SumHash returns the hash output of the data written so far,
	// without finalizing the hash state
	SumHash() Hash
	// Reset resets the hash state
	Reset()
}
