package hash

import (
	"encoding/binary"
	"fmt"
)

const (
	magic224 = "sha\x02"
	magic256 = "sha\x03"

	// magic || h || x || b || nx || nb || done || n
	marshaledSize = len(magic256) + 8*4 + blockWords*4 + 4 + 1 + 1 + 1 + 8
)

func (d *SHA2Hasher) magic() string {
	if d.algo == SHA2_224 {
		return magic224
	}
	return magic256
}

// MarshalBinary exports the hasher state so that hashing can be resumed later,
// possibly in another process, with UnmarshalBinary.
func (d *SHA2Hasher) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	b = append(b, d.magic()...)
	for _, v := range d.h {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	for _, v := range d.x {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	b = append(b, d.b[:]...)
	b = append(b, byte(d.nx), byte(d.nb))
	if d.done {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	b = binary.BigEndian.AppendUint64(b, d.n)
	return b, nil
}

// UnmarshalBinary restores a state exported by MarshalBinary.
// The state must come from a hasher of the same algorithm, otherwise
// ErrInvalidState is returned and the hasher is left unchanged.
func (d *SHA2Hasher) UnmarshalBinary(data []byte) error {
	if len(data) != marshaledSize {
		return fmt.Errorf("expected %d bytes, got %d: %w", marshaledSize, len(data), ErrInvalidState)
	}
	if string(data[:len(magic256)]) != d.magic() {
		return fmt.Errorf("state identifier doesn't match %s: %w", d.algo, ErrInvalidState)
	}
	data = data[len(magic256):]

	var restored SHA2Hasher
	for i := range restored.h {
		restored.h[i] = binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	for i := range restored.x {
		restored.x[i] = binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	copy(restored.b[:], data[:4])
	data = data[4:]

	restored.nx, restored.nb = int(data[0]), int(data[1])
	if restored.nx >= blockWords || restored.nb >= len(restored.b) || data[2] > 1 {
		return fmt.Errorf("buffer offsets out of range: %w", ErrInvalidState)
	}
	restored.done = data[2] == 1
	restored.n = binary.BigEndian.Uint64(data[3:])

	// the byte counter must agree with the buffered words and bytes
	if restored.n%BlockSize != uint64(4*restored.nx+restored.nb) && !restored.done {
		return fmt.Errorf("byte count %d inconsistent with buffered data: %w", restored.n, ErrInvalidState)
	}

	restored.algo, restored.outputLen, restored.iv = d.algo, d.outputLen, d.iv
	*d = restored
	return nil
}
