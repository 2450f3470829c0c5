package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/onflow/flow-sha2/crypto/hash"
	"github.com/onflow/flow-sha2/module"
)

// digestReader hashes everything read from r, writing at most chunkSize bytes
// to the hasher at a time.
func digestReader(algo hash.HashingAlgorithm, r io.Reader, chunkSize int, metrics module.HashMetrics) (hash.Hash, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	hasher, err := hash.NewSHA2(algo)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, chunkSize)
	start := time.Now()
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := hasher.Write(buf[:n]); werr != nil {
				return nil, werr
			}
			metrics.BytesHashed(algo, n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	digest, err := hasher.Digest()
	if err != nil {
		return nil, err
	}
	metrics.DigestComputed(algo, time.Since(start))
	return digest, nil
}
