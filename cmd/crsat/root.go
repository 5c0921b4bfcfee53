package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logger is set in PersistentPreRunE once flags are parsed; subcommand
// RunE bodies read it directly rather than capturing a value at
// construction time, since cobra builds the command tree before flags
// are known.
var logger *zap.Logger

// newRootCmd assembles the crsat driver: the encode/solve/verify
// subcommands plus the shared persistent flags for logging and the
// optional Prometheus metrics endpoint.
func newRootCmd() *cobra.Command {
	var debug bool
	var metricsAddr string
	var stopMetrics context.CancelFunc

	root := &cobra.Command{
		Use:   "crsat",
		Short: "Encode a course-scheduling instance to CNF, solve it, and verify the result",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if debug {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			if err != nil {
				return err
			}

			if metricsAddr != "" {
				ctx, cancel := context.WithCancel(cmd.Context())
				cmd.SetContext(ctx)
				stopMetrics = cancel
				go serveMetrics(ctx, metricsAddr, logger)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if stopMetrics != nil {
				stopMetrics()
			}
			return logger.Sync()
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "use a development logger and group clauses by tag where applicable")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus /metrics on, e.g. :9090 (disabled if empty)")

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newSolveCmd())
	root.AddCommand(newVerifyCmd())

	return root
}
