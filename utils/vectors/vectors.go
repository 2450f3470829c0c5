// Package vectors reads SHA-256 known-answer vectors and checks hashers against them.
//
// A vector file holds one vector per line starting with ':'. Other lines are ignored.
//
//	:identifier octetLength inputSpec expectedSHA256 expectedDoubleSHA256
//
// The input spec is a hex literal of octetLength bytes, "-" for the empty message,
// or the name of a generator producing octetLength bytes (see the Input constants).
// A "-" in place of an expected digest leaves that digest unchecked.
package vectors

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/onflow/flow-sha2/crypto/hash"
	"github.com/onflow/flow-sha2/crypto/random"
)

// Generator input specs
const (
	// InputRC4 is the RC4 keystream for the one byte key 0x00.
	InputRC4 = "RC4"
	// InputChaCha20 is the ChaCha20 keystream for an all zero key and nonce.
	InputChaCha20 = "CHACHA20"
	// InputMillionA repeats the byte 'a'.
	InputMillionA = "MILLION_a"
	// InputEmpty is the empty message.
	InputEmpty = "-"
)

// Unchecked in place of an expected digest skips the comparison.
const Unchecked = "-"

const vectorPrefix = ":"

// Vector is one known-answer vector.
type Vector struct {
	ID          string
	OctetLength uint64
	InputSpec   string
	// expected digests, nil when unchecked
	SHA256       hash.Hash
	DoubleSHA256 hash.Hash
	// line number in the source, for reporting
	Line int
}

// ParseError reports a malformed vector line.
type ParseError struct {
	Line int
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

func (e ParseError) Unwrap() error { return e.Err }

// IsParseError returns whether err is a ParseError
func IsParseError(err error) bool {
	var e ParseError
	return errors.As(err, &e)
}

// ParseFile reads the vectors of the file at path.
func ParseFile(path string) ([]Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open vector file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads vectors from r. All malformed lines are reported, as a
// multierror of ParseError, and the well-formed vectors are still returned.
func Parse(r io.Reader) ([]Vector, error) {
	var (
		vectors []Vector
		errs    *multierror.Error
	)

	scanner := bufio.NewScanner(r)
	// hex literals can be long
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(text, vectorPrefix) {
			continue
		}
		v, err := parseLine(strings.TrimPrefix(text, vectorPrefix))
		if err != nil {
			errs = multierror.Append(errs, ParseError{Line: line, Err: err})
			continue
		}
		v.Line = line
		vectors = append(vectors, v)
	}
	if err := scanner.Err(); err != nil {
		return vectors, fmt.Errorf("could not read vectors: %w", err)
	}
	return vectors, errs.ErrorOrNil()
}

func parseLine(text string) (Vector, error) {
	fields := strings.Fields(text)
	if len(fields) != 5 {
		return Vector{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	length, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Vector{}, fmt.Errorf("invalid octet length %q: %w", fields[1], err)
	}

	v := Vector{
		ID:          fields[0],
		OctetLength: length,
		InputSpec:   fields[2],
	}
	if err := v.validateInput(); err != nil {
		return Vector{}, err
	}
	if v.SHA256, err = parseDigest(fields[3]); err != nil {
		return Vector{}, fmt.Errorf("invalid SHA-256: %w", err)
	}
	if v.DoubleSHA256, err = parseDigest(fields[4]); err != nil {
		return Vector{}, fmt.Errorf("invalid double SHA-256: %w", err)
	}
	return v, nil
}

func parseDigest(field string) (hash.Hash, error) {
	if field == Unchecked {
		return nil, nil
	}
	digest, err := hex.DecodeString(field)
	if err != nil {
		return nil, err
	}
	if len(digest) != hash.HashLenSHA2_256 {
		return nil, fmt.Errorf("expected %d bytes, got %d", hash.HashLenSHA2_256, len(digest))
	}
	return digest, nil
}

func (v Vector) validateInput() error {
	switch v.InputSpec {
	case InputRC4, InputChaCha20, InputMillionA:
		return nil
	case InputEmpty:
		if v.OctetLength != 0 {
			return fmt.Errorf("empty input with octet length %d", v.OctetLength)
		}
		return nil
	}
	literal, err := hex.DecodeString(v.InputSpec)
	if err != nil {
		return fmt.Errorf("input is neither a generator nor a hex literal: %w", err)
	}
	if uint64(len(literal)) != v.OctetLength {
		return fmt.Errorf("hex literal is %d bytes, octet length is %d", len(literal), v.OctetLength)
	}
	return nil
}

// Source returns a reader producing the vector input.
func (v Vector) Source() (io.Reader, error) {
	switch v.InputSpec {
	case InputRC4:
		return random.NewRC4([]byte{0}, v.OctetLength)
	case InputChaCha20:
		return random.NewChaCha20(make([]byte, 32), make([]byte, 12), v.OctetLength)
	case InputMillionA:
		return random.NewRepeat('a', v.OctetLength), nil
	case InputEmpty:
		return bytes.NewReader(nil), nil
	}
	if err := v.validateInput(); err != nil {
		return nil, err
	}
	literal, _ := hex.DecodeString(v.InputSpec)
	return bytes.NewReader(literal), nil
}
