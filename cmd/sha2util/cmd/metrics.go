package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-sha2/module/metrics"
)

const (
	flagMetrics     = "metrics"
	flagMetricsPort = "metrics-port"
)

func addMetricsFlags(cmd *cobra.Command) {
	cmd.Flags().Bool(flagMetrics, false, "print the collected metrics in Prometheus text format when done")
	cmd.Flags().Uint(flagMetricsPort, 0, "serve /metrics on this port while running, 0 disables the server")
}

// metricsRun holds the metrics of one command run.
type metricsRun struct {
	registry  *prometheus.Registry
	collector *metrics.HashCollector
	server    *metrics.Server
}

// startMetrics creates a registry for the run and, when a port is given,
// starts serving it.
func (c *command) startMetrics() *metricsRun {
	registry := prometheus.NewRegistry()
	run := &metricsRun{
		registry:  registry,
		collector: metrics.NewHashCollector(registry),
	}

	if port := c.v.GetUint(flagMetricsPort); port > 0 {
		run.server = metrics.NewServer(c.log, port, registry)
		<-run.server.Ready()
	}
	return run
}

// stopMetrics shuts the server down and prints the metrics if requested.
func (c *command) stopMetrics(run *metricsRun, out io.Writer) error {
	if run.server != nil {
		<-run.server.Done()
	}
	if !c.v.GetBool(flagMetrics) {
		return nil
	}
	return dumpMetrics(c.log, out, run.registry)
}

func dumpMetrics(log zerolog.Logger, w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("could not encode metric %s: %w", family.GetName(), err)
		}
	}
	log.Debug().Int("families", len(families)).Msg("metrics written")
	return nil
}
