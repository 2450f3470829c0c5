package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onflow/flow-sha2/utils/logging"
)

// flags are also read from SHA2_<FLAG> environment variables
const envPrefix = "SHA2"

const (
	flagLogLevel  = "loglevel"
	flagLogFormat = "log-format"
)

// state shared by the commands of one invocation
type command struct {
	v   *viper.Viper
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &command{
		v:   viper.New(),
		log: zerolog.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:           "sha2util",
		Short:         "Compute and check SHA-224 and SHA-256 digests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP(flagLogLevel, "l", "info", "level for logging output")
	rootCmd.PersistentFlags().String(flagLogFormat, logging.FormatConsole,
		fmt.Sprintf("log output format (%s or %s)", logging.FormatConsole, logging.FormatJSON))

	rootCmd.AddCommand(
		newSumCmd(c),
		newVectorsCmd(c),
		newBenchCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

// setup binds the flags of the command being run to the environment and
// builds the logger.
func (c *command) setup(cmd *cobra.Command) error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("could not bind flags: %w", err)
	}

	log, err := logging.New(cmd.ErrOrStderr(), c.v.GetString(flagLogLevel), c.v.GetString(flagLogFormat))
	if err != nil {
		return err
	}
	c.log = log.With().Str("command", cmd.Name()).Logger()
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
