package unittest

import (
	crand "crypto/rand"
	"fmt"
)

func RandomBytes(n int) []byte {
	b := make([]byte, n)
	read, err := crand.Read(b)
	if err != nil {
		panic("cannot read random bytes")
	}
	if read != n {
		panic(fmt.Errorf("cannot read enough random bytes (got %d of %d)", read, n))
	}
	return b
}

// PatternBytes returns n bytes counting up from 0 and wrapping at 256.
func PatternBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

// Chunks splits data into consecutive pieces of the given size, the last one
// possibly shorter.
func Chunks(data []byte, size int) [][]byte {
	if size <= 0 {
		panic(fmt.Sprintf("invalid chunk size %d", size))
	}
	chunks := make([][]byte, 0, len(data)/size+1)
	for len(data) > size {
		chunks = append(chunks, data[:size])
		data = data[size:]
	}
	return append(chunks, data)
}
