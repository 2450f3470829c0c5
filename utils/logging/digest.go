package logging

import (
	"github.com/onflow/flow-sha2/crypto/hash"
)

// Digests hex encodes digests for array log fields.
func Digests(digests []hash.Hash) []string {
	ss := make([]string, 0, len(digests))
	for _, d := range digests {
		ss = append(ss, d.Hex())
	}
	return ss
}
