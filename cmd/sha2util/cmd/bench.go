package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pbnjay/memory"
	"github.com/pkg/profile"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/flow-sha2/crypto/hash"
	"github.com/onflow/flow-sha2/crypto/random"
	"github.com/onflow/flow-sha2/module"
	"github.com/onflow/flow-sha2/utils/logging"
)

const (
	flagSize       = "size"
	flagInput      = "input"
	flagChunkSizes = "chunk-sizes"
	flagProfileDir = "profile-dir"

	inputRC4      = "rc4"
	inputChaCha20 = "chacha20"
)

// key of the rc4 bench input
var benchRC4Key = []byte("sha2util")

// share of the system memory the materialized input may take
const inputMemoryScale = 0.25

func newBenchCmd(c *command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure the hashing throughput for several write sizes",
		Long: `Hash a deterministic keystream of --size bytes once per chunk size, writing
chunk size bytes to the hasher at a time. Every chunk size must give the same
digest, which must also match the one-shot digest of the whole input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBench(cmd)
		},
	}

	cmd.Flags().VarP(newAlgorithmValue(hash.SHA2_256), flagAlgo, "a", "hashing algorithm (sha224 or sha256)")
	cmd.Flags().Uint64(flagSize, 16<<20, "number of input bytes")
	cmd.Flags().String(flagInput, inputChaCha20, fmt.Sprintf("input keystream (%s or %s)", inputRC4, inputChaCha20))
	cmd.Flags().IntSlice(flagChunkSizes, []int{1, 7, 64, 1000, 4096, 65536}, "write sizes to measure")
	cmd.Flags().IntP(flagWorkers, "w", 1, "number of concurrent hashers per chunk size")
	cmd.Flags().String(flagProfileDir, "", "write a CPU profile of the measures to this directory")
	addMetricsFlags(cmd)
	return cmd
}

// benchResult is the measure of one chunk size.
type benchResult struct {
	chunkSize int
	bytes     uint64
	elapsed   time.Duration
	digest    hash.Hash
	// MB/s of each worker
	workers stats.Float64Data
}

// throughput in MB/s
func (r benchResult) throughput() float64 {
	return throughput(r.bytes, r.elapsed)
}

func throughput(bytes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(bytes) / elapsed.Seconds() / 1e6
}

// spread returns the median and standard deviation of the worker throughputs.
func (r benchResult) spread() (float64, float64, error) {
	median, err := stats.Median(r.workers)
	if err != nil {
		return 0, 0, err
	}
	stddev, err := stats.StandardDeviation(r.workers)
	if err != nil {
		return 0, 0, err
	}
	return median, stddev, nil
}

// allowedInputSize is the largest input the bench materializes.
func allowedInputSize() uint64 {
	return uint64(math.Floor(float64(memory.TotalMemory()) * inputMemoryScale))
}

// cpuModel names the processor for the bench logs.
func cpuModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		return "unknown"
	}
	return infos[0].ModelName
}

func newBenchInput(name string, size uint64) (random.Keystream, error) {
	switch strings.ToLower(name) {
	case inputRC4:
		return random.NewRC4(benchRC4Key, size)
	case inputChaCha20:
		return random.NewChaCha20(make([]byte, 32), make([]byte, 12), size)
	}
	return nil, fmt.Errorf("unknown bench input %q", name)
}

func (c *command) runBench(cmd *cobra.Command) error {
	algo, err := hash.ParseHashingAlgorithm(c.v.GetString(flagAlgo))
	if err != nil {
		return err
	}
	size := c.v.GetUint64(flagSize)
	if allowed := allowedInputSize(); allowed > 0 && size > allowed {
		return fmt.Errorf("input size %d exceeds %d bytes, a quarter of the system memory", size, allowed)
	}
	input := c.v.GetString(flagInput)
	// slices are not read from the environment
	chunkSizes, err := cmd.Flags().GetIntSlice(flagChunkSizes)
	if err != nil {
		return err
	}
	if len(chunkSizes) == 0 {
		return fmt.Errorf("no chunk size to measure")
	}
	for _, chunkSize := range chunkSizes {
		if chunkSize <= 0 {
			return fmt.Errorf("chunk sizes must be positive, got %d", chunkSize)
		}
	}
	slices.Sort(chunkSizes)
	chunkSizes = slices.Compact(chunkSizes)
	workers := c.v.GetInt(flagWorkers)
	if workers <= 0 {
		return fmt.Errorf("--%s must be positive, got %d", flagWorkers, workers)
	}

	// reference digest over the materialized input
	stream, err := newBenchInput(input, size)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("could not generate input: %w", err)
	}
	expected, err := hash.ComputeSHA2(algo, data)
	if err != nil {
		return err
	}

	log := c.log.With().Str("algo", algo.String()).Str("input", input).Uint64("size", size).Logger()
	log.Info().
		Ints("chunk_sizes", chunkSizes).
		Int("workers", workers).
		Str("cpu", cpuModel()).
		Msg("starting bench")

	if dir := c.v.GetString(flagProfileDir); dir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	run := c.startMetrics()
	results := make([]benchResult, 0, len(chunkSizes))
	var benchErr error
	for _, chunkSize := range chunkSizes {
		result, err := c.benchChunkSize(cmd, algo, input, size, chunkSize, workers, run.collector)
		if err != nil {
			benchErr = err
			break
		}
		if !result.digest.Equal(expected) {
			benchErr = fmt.Errorf("chunk size %d gave digest %s, expected %s", chunkSize, result.digest.Hex(), expected.Hex())
			break
		}
		median, stddev, err := result.spread()
		if err != nil {
			benchErr = err
			break
		}
		log.Info().
			Int("chunk_size", chunkSize).
			Dur("elapsed", result.elapsed).
			Float64("mb_per_s", result.throughput()).
			Float64("worker_median_mb_per_s", median).
			Float64("worker_stddev_mb_per_s", stddev).
			Msg("chunk size measured")
		results = append(results, result)
	}
	if benchErr != nil {
		_ = c.stopMetrics(run, io.Discard)
		return benchErr
	}

	digests := make([]hash.Hash, 0, len(results))
	out := cmd.OutOrStdout()
	for _, result := range results {
		digests = append(digests, result.digest)
		if _, err := fmt.Fprintf(out, "%10d B/write  %10.2f MB/s\n", result.chunkSize, result.throughput()); err != nil {
			return err
		}
	}
	log.Debug().Strs("digests", logging.Digests(digests)).Msg("digests agree")
	if _, err := fmt.Fprintf(out, "%s  %s:%d\n", expected.Hex(), input, size); err != nil {
		return err
	}
	return c.stopMetrics(run, out)
}

// benchChunkSize hashes the input once per worker, concurrently.
func (c *command) benchChunkSize(
	cmd *cobra.Command,
	algo hash.HashingAlgorithm,
	input string,
	size uint64,
	chunkSize int,
	workers int,
	metrics module.HashMetrics,
) (benchResult, error) {
	hashed := atomic.NewUint64(0)
	digests := make([]hash.Hash, workers)
	throughputs := make(stats.Float64Data, workers)

	g, ctx := errgroup.WithContext(cmd.Context())
	start := time.Now()
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stream, err := newBenchInput(input, size)
			if err != nil {
				return err
			}
			workerStart := time.Now()
			digest, err := digestReader(algo, stream, chunkSize, metrics)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			throughputs[i] = throughput(stream.Len(), time.Since(workerStart))
			hashed.Add(stream.Len())
			digests[i] = digest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return benchResult{}, err
	}
	elapsed := time.Since(start)

	for i := 1; i < workers; i++ {
		if !digests[i].Equal(digests[0]) {
			return benchResult{}, fmt.Errorf("workers 0 and %d disagree for chunk size %d", i, chunkSize)
		}
	}

	return benchResult{
		chunkSize: chunkSize,
		bytes:     hashed.Load(),
		elapsed:   elapsed,
		digest:    digests[0],
		workers:   throughputs,
	}, nil
}
