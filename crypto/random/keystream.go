// Package random provides finite, restartable keystreams of pseudo-random
// bytes. They are used to synthesize large deterministic inputs for hashing
// tests and benchmarks and must not be used for anything security related.
package random

import (
	"crypto/rc4"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Keystream is a finite stream of pseudo-random bytes.
//
// A Keystream is an external iterator: bytes are pulled with Next or Read
// until Len bytes have been produced. Reset restarts the stream from its
// first byte, producing the exact same sequence again.
type Keystream interface {
	// Next returns the next byte, or false once the stream is exhausted.
	Next() (byte, bool)

	// Read fills p with the next bytes of the stream (io.Reader).
	// It returns io.EOF once the stream is exhausted.
	Read(p []byte) (int, error)

	// Len returns the total number of bytes of the stream.
	Len() uint64

	// Remaining returns the number of bytes left to be produced.
	Remaining() uint64

	// Reset restarts the stream from the beginning.
	Reset()
}

// keystreamCore produces an unbounded keystream.
// All Keystream methods are built on top of it by genericKeystream.
//
// In order to add a new Keystream implementation,
// it should be enough to implement keystreamCore.
type keystreamCore interface {
	// fill overwrites p with the next keystream bytes.
	fill(p []byte)
	// restart rewinds the keystream to its first byte.
	restart()
}

// genericKeystream bounds a keystreamCore to a fixed length.
type genericKeystream struct {
	keystreamCore
	length uint64
	pos    uint64
	one    [1]byte
}

var _ Keystream = (*genericKeystream)(nil)
var _ io.Reader = (*genericKeystream)(nil)

func newGenericKeystream(core keystreamCore, length uint64) *genericKeystream {
	return &genericKeystream{
		keystreamCore: core,
		length:        length,
	}
}

func (k *genericKeystream) Next() (byte, bool) {
	if k.pos == k.length {
		return 0, false
	}
	k.fill(k.one[:])
	k.pos++
	return k.one[0], true
}

func (k *genericKeystream) Read(p []byte) (int, error) {
	remaining := k.Remaining()
	if remaining == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	if uint64(len(p)) > remaining {
		p = p[:remaining]
	}
	k.fill(p)
	k.pos += uint64(len(p))
	return len(p), nil
}

func (k *genericKeystream) Len() uint64 {
	return k.length
}

func (k *genericKeystream) Remaining() uint64 {
	return k.length - k.pos
}

func (k *genericKeystream) Reset() {
	k.restart()
	k.pos = 0
}

// rc4Core is the RC4 PRGA output for a given key.
type rc4Core struct {
	key    []byte
	cipher *rc4.Cipher
}

func (c *rc4Core) fill(p []byte) {
	for i := range p {
		p[i] = 0
	}
	c.cipher.XORKeyStream(p, p)
}

func (c *rc4Core) restart() {
	// the key length was validated at construction
	c.cipher, _ = rc4.NewCipher(c.key)
}

// NewRC4 returns the first `length` bytes of the RC4 keystream for key.
// The key must be 1 to 256 bytes long.
func NewRC4(key []byte, length uint64) (Keystream, error) {
	if len(key) < 1 || len(key) > 256 {
		return nil, fmt.Errorf("rc4 key must be 1 to 256 bytes, got %d", len(key))
	}
	core := &rc4Core{key: append([]byte{}, key...)}
	core.restart()
	return newGenericKeystream(core, length), nil
}

// chachaCore is the ChaCha20 keystream (RFC 8439) starting at block counter 0.
type chachaCore struct {
	seed   []byte
	nonce  []byte
	cipher *chacha20.Cipher
}

func (c *chachaCore) fill(p []byte) {
	for i := range p {
		p[i] = 0
	}
	c.cipher.XORKeyStream(p, p)
}

func (c *chachaCore) restart() {
	// key and nonce sizes were validated at construction
	c.cipher, _ = chacha20.NewUnauthenticatedCipher(c.seed, c.nonce)
}

// NewChaCha20 returns the first `length` bytes of the ChaCha20 keystream for
// the 32-byte seed and the 12-byte nonce.
func NewChaCha20(seed []byte, nonce []byte, length uint64) (Keystream, error) {
	if len(seed) != chacha20.KeySize {
		return nil, fmt.Errorf("chacha20 seed must be %d bytes, got %d", chacha20.KeySize, len(seed))
	}
	if len(nonce) != chacha20.NonceSize {
		return nil, fmt.Errorf("chacha20 nonce must be %d bytes, got %d", chacha20.NonceSize, len(nonce))
	}
	core := &chachaCore{
		seed:  append([]byte{}, seed...),
		nonce: append([]byte{}, nonce...),
	}
	core.restart()
	return newGenericKeystream(core, length), nil
}

// repeatCore repeats a single byte.
type repeatCore struct {
	b byte
}

func (c *repeatCore) fill(p []byte) {
	for i := range p {
		p[i] = c.b
	}
}

func (c *repeatCore) restart() {}

// NewRepeat returns a stream of `length` copies of b.
func NewRepeat(b byte, length uint64) Keystream {
	return newGenericKeystream(&repeatCore{b: b}, length)
}
