package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/onflow/flow-sha2/crypto/hash"
	"github.com/onflow/flow-sha2/module/metrics"
)

const (
	flagAlgo      = "algo"
	flagChunkSize = "chunk-size"
	flagProgress  = "progress"
	flagWorkers   = "workers"

	// name of the standard input
	stdinName = "-"
)

func newSumCmd(c *command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sum [files...]",
		Short: "Print the SHA-2 digests of files",
		Long: `Print the SHA-2 digest of each file, one "<hex>  <name>" line per file in the
order given. The standard input is read when no file is given or for "-".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSum(cmd, args)
		},
	}

	cmd.Flags().VarP(newAlgorithmValue(hash.SHA2_256), flagAlgo, "a", "hashing algorithm (sha224 or sha256)")
	cmd.Flags().Int(flagChunkSize, 32*1024, "number of bytes written to the hasher at a time")
	cmd.Flags().Bool(flagProgress, false, "show a progress bar per file on stderr")
	cmd.Flags().IntP(flagWorkers, "w", 4, "number of files hashed concurrently")
	return cmd
}

func (c *command) runSum(cmd *cobra.Command, args []string) error {
	algo, err := hash.ParseHashingAlgorithm(c.v.GetString(flagAlgo))
	if err != nil {
		return err
	}
	chunkSize := c.v.GetInt(flagChunkSize)
	if chunkSize <= 0 {
		return fmt.Errorf("--%s must be positive, got %d", flagChunkSize, chunkSize)
	}
	workers := c.v.GetInt(flagWorkers)
	if workers <= 0 {
		return fmt.Errorf("--%s must be positive, got %d", flagWorkers, workers)
	}
	progress := c.v.GetBool(flagProgress)

	names := args
	if len(names) == 0 {
		names = []string{stdinName}
	}

	log := c.log.With().Str("algo", algo.String()).Int("chunk_size", chunkSize).Logger()
	log.Debug().Int("files", len(names)).Int("workers", workers).Msg("hashing files")

	digests := make([]hash.Hash, len(names))
	errs := make([]error, len(names))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			// a failing file doesn't stop the others
			digests[i], errs[i] = c.sumFile(cmd, algo, name, chunkSize, progress)
			return nil
		})
	}
	_ = g.Wait()

	var result *multierror.Error
	out := cmd.OutOrStdout()
	for i, name := range names {
		if errs[i] != nil {
			log.Error().Err(errs[i]).Str("file", name).Msg("could not hash file")
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, errs[i]))
			continue
		}
		if _, err := fmt.Fprintf(out, "%s  %s\n", digests[i].Hex(), name); err != nil {
			return err
		}
	}
	return result.ErrorOrNil()
}

func (c *command) sumFile(cmd *cobra.Command, algo hash.HashingAlgorithm, name string, chunkSize int, progress bool) (hash.Hash, error) {
	var (
		r    io.Reader
		size int64 = -1
	)
	if name == stdinName {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("is a directory")
		}
		r, size = f, info.Size()
	}

	if progress {
		bar := progressbar.DefaultBytes(size, name)
		defer func() { _ = bar.Finish() }()
		r = io.TeeReader(r, bar)
	}

	return digestReader(algo, r, chunkSize, metrics.NewNoopCollector())
}
