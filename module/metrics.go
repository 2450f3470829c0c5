package module

import (
	"time"

	"github.com/onflow/flow-sha2/crypto/hash"
)

// HashMetrics tracks the hashing work done by the tooling around the hashers.
type HashMetrics interface {
	// BytesHashed counts the bytes fed to a hasher of the given algorithm.
	BytesHashed(algo hash.HashingAlgorithm, n int)

	// DigestComputed tracks the time spent to hash a full message, from the first
	// write to the digest.
	DigestComputed(algo hash.HashingAlgorithm, duration time.Duration)

	// VectorChecked counts the known-answer vectors checked, by result.
	VectorChecked(passed bool)
}
