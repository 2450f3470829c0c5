package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onflow/flow-sha2/utils/vectors"
)

func newVectorsCmd(c *command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectors <file>",
		Short: "Check SHA-256 and double SHA-256 known-answer vectors",
		Long: `Check the vectors of a file in the format

	:identifier octetLength inputSpec expectedSHA256 expectedDoubleSHA256

Inputs are streamed into the hasher in writes of --chunk-size bytes.
The command fails if any vector fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVectors(cmd, args[0])
		},
	}

	cmd.Flags().Int(flagChunkSize, vectors.DefaultChunkSize, "number of bytes written to the hasher at a time")
	addMetricsFlags(cmd)
	return cmd
}

func (c *command) runVectors(cmd *cobra.Command, path string) error {
	all, err := vectors.ParseFile(path)
	if err != nil {
		return fmt.Errorf("invalid vector file %s: %w", path, err)
	}
	c.log.Info().Str("file", path).Int("vectors", len(all)).Msg("vectors loaded")

	chunkSize := c.v.GetInt(flagChunkSize)
	if chunkSize <= 0 {
		return fmt.Errorf("--%s must be positive, got %d", flagChunkSize, chunkSize)
	}

	run := c.startMetrics()
	runner, err := vectors.NewRunner(c.log, run.collector, chunkSize)
	if err != nil {
		_ = c.stopMetrics(run, cmd.OutOrStdout())
		return err
	}

	report, runErr := runner.Run(all)
	if err := c.stopMetrics(run, cmd.OutOrStdout()); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("%d of %d vectors failed: %w", report.Failed, len(report.Results), runErr)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d vectors passed\n", report.Passed)
	return err
}
