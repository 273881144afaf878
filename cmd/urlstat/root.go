package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd creates the root command and wires up the subcommands.
func newRootCmd(version string) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "urlstat",
		Short: "urlstat checks the HTTP status of many URLs in parallel",
		Long: "urlstat reads URLs line by line and probes each one with a HEAD request\n" +
			"under a bounded worker count, reporting the status code or the failure\n" +
			"for every URL. It runs one-shot (check) or as a service (serve).",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	log := logrus.New()
	log.SetOutput(os.Stderr)
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if debug {
			log.SetLevel(logrus.DebugLevel)
		}
	}

	rootCmd.AddCommand(newCheckCmd(log))
	rootCmd.AddCommand(newServeCmd(log))
	return rootCmd
}
