package hash

import (
	"crypto/sha256"
	"fmt"
	"testing"
)

var benchSizes = []int{8, 64, 1024, 8192}

// SHA2-256 streaming bench
func BenchmarkSHA2_256(b *testing.B) {
	for _, size := range benchSizes {
		data := make([]byte, size)
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			hasher := NewSHA2_256()
			out := make([]byte, HashLenSHA2_256)
			b.SetBytes(int64(size))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				hasher.Reset()
				_, _ = hasher.Write(data)
				_ = hasher.DigestInto(out)
			}
		})
	}
}

// SHA2-256 streaming bench with unaligned chunks
func BenchmarkSHA2_256Unaligned(b *testing.B) {
	data := make([]byte, 8192)
	b.SetBytes(int64(len(data)))
	hasher := NewSHA2_256()
	for i := 0; i < b.N; i++ {
		hasher.Reset()
		for p := data; len(p) > 0; {
			n := 7
			if n > len(p) {
				n = len(p)
			}
			_, _ = hasher.Write(p[:n])
			p = p[n:]
		}
		_, _ = hasher.Digest()
	}
}

// SHA2-256 one-shot bench
func BenchmarkSum256(b *testing.B) {
	for _, size := range benchSizes {
		data := make([]byte, size)
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				Sum256(data)
			}
		})
	}
}

// reference point
func BenchmarkStdlibSum256(b *testing.B) {
	data := make([]byte, 8192)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		sha256.Sum256(data)
	}
}
