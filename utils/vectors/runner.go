package vectors

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/onflow/flow-sha2/crypto/hash"
	"github.com/onflow/flow-sha2/module"
	"github.com/onflow/flow-sha2/module/util"
)

// DefaultChunkSize is the size of the writes used to stream vector inputs into
// the hasher. It is a multiple of neither the word nor the block size.
const DefaultChunkSize = 35

// MismatchError reports a digest different from the expected one.
type MismatchError struct {
	ID       string
	Digest   string
	Expected hash.Hash
	Got      hash.Hash
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("vector %s: %s mismatch: expected %x, got %x", e.ID, e.Digest, []byte(e.Expected), []byte(e.Got))
}

// IsMismatchError returns whether err is a MismatchError
func IsMismatchError(err error) bool {
	var e MismatchError
	return errors.As(err, &e)
}

// Result is the outcome of checking one vector.
type Result struct {
	Vector       Vector
	SHA256       hash.Hash
	DoubleSHA256 hash.Hash
	Passed       bool
}

// Report summarizes a run over a set of vectors.
type Report struct {
	Results []Result
	Passed  int
	Failed  int
}

// Runner streams vector inputs through SHA2Hasher in fixed size chunks and
// compares the digests with the expected ones.
type Runner struct {
	log       zerolog.Logger
	metrics   module.HashMetrics
	chunkSize int
}

// NewRunner creates a Runner writing chunkSize bytes at a time.
func NewRunner(log zerolog.Logger, metrics module.HashMetrics, chunkSize int) (*Runner, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	return &Runner{
		log:       log.With().Str("component", "vectors").Int("chunk_size", chunkSize).Logger(),
		metrics:   metrics,
		chunkSize: chunkSize,
	}, nil
}

// digest streams src into a new SHA-256 hasher.
func (r *Runner) digest(src io.Reader) (hash.Hash, uint64, error) {
	hasher := hash.NewSHA2_256()
	buf := make([]byte, r.chunkSize)
	start := time.Now()
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := hasher.Write(buf[:n]); werr != nil {
				return nil, 0, fmt.Errorf("could not write to hasher: %w", werr)
			}
			r.metrics.BytesHashed(hash.SHA2_256, n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("could not read input: %w", err)
		}
	}
	digest, err := hasher.Digest()
	if err != nil {
		return nil, 0, fmt.Errorf("could not compute digest: %w", err)
	}
	r.metrics.DigestComputed(hash.SHA2_256, time.Since(start))
	return digest, hasher.Len(), nil
}

// Check computes the digests of one vector.
// It returns a MismatchError (possibly two, in a multierror) when a digest is
// wrong, and other errors when the input can't be produced.
func (r *Runner) Check(v Vector) (Result, error) {
	result := Result{Vector: v}

	src, err := v.Source()
	if err != nil {
		return result, fmt.Errorf("vector %s: %w", v.ID, err)
	}
	digest, length, err := r.digest(src)
	if err != nil {
		return result, fmt.Errorf("vector %s: %w", v.ID, err)
	}
	if length != v.OctetLength {
		return result, fmt.Errorf("vector %s: input produced %d bytes, expected %d", v.ID, length, v.OctetLength)
	}
	double := hash.Sum256(digest)
	result.SHA256 = digest
	result.DoubleSHA256 = double[:]

	var errs *multierror.Error
	if v.SHA256 != nil && !v.SHA256.Equal(result.SHA256) {
		errs = multierror.Append(errs, MismatchError{ID: v.ID, Digest: "SHA-256", Expected: v.SHA256, Got: result.SHA256})
	}
	if v.DoubleSHA256 != nil && !v.DoubleSHA256.Equal(result.DoubleSHA256) {
		errs = multierror.Append(errs, MismatchError{ID: v.ID, Digest: "double SHA-256", Expected: v.DoubleSHA256, Got: result.DoubleSHA256})
	}
	result.Passed = errs == nil
	return result, errs.ErrorOrNil()
}

// Run checks all vectors. Every failing vector is logged and its error is
// part of the returned multierror, the report covers all vectors.
func (r *Runner) Run(vectors []Vector) (*Report, error) {
	report := &Report{Results: make([]Result, 0, len(vectors))}
	var errs *multierror.Error

	var total uint64
	for _, v := range vectors {
		total += v.OctetLength
	}
	progress := util.LogProgress(r.log, util.DefaultLogProgressConfig("vector input", total))

	for _, v := range vectors {
		result, err := r.Check(v)
		report.Results = append(report.Results, result)
		r.metrics.VectorChecked(result.Passed)

		progress(v.OctetLength)

		lg := r.log.With().Str("vector", v.ID).Uint64("octets", v.OctetLength).Str("input", inputLabel(v)).Logger()
		if err != nil {
			report.Failed++
			errs = multierror.Append(errs, err)
			lg.Error().Err(err).Msg("vector failed")
			continue
		}
		report.Passed++
		lg.Debug().Str("sha256", result.SHA256.Hex()).Msg("vector passed")
	}

	r.log.Info().Int("passed", report.Passed).Int("failed", report.Failed).Msg("vectors checked")
	return report, errs.ErrorOrNil()
}

// inputLabel keeps long hex literals out of the logs.
func inputLabel(v Vector) string {
	if len(v.InputSpec) > 16 {
		return v.InputSpec[:16] + "..."
	}
	return v.InputSpec
}
