package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/urlstat/urlstat/pkg/checker"
	"github.com/urlstat/urlstat/pkg/server"
)

// newServeCmd creates the serve command. Flags can also be provided via
// URLSTAT_-prefixed environment variables (e.g. URLSTAT_LISTEN).
func newServeCmd(log *logrus.Logger) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("URLSTAT")
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Re-check a URL file on an interval and serve the results",
		Long: "Serve runs the check for the given file on a fixed interval and exposes\n" +
			"the latest results on a JSON API (/api, /api/summary) and a Prometheus\n" +
			"metrics endpoint (/metrics).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := server.New(v.GetString("file"),
				server.WithListenAddr(v.GetString("listen")),
				server.WithInterval(v.GetDuration("interval")),
				server.WithWorkers(v.GetInt("workers")),
				server.WithTimeout(v.GetDuration("timeout")),
				server.WithLogger(log),
			)
			if err != nil {
				return err
			}

			srv.Start()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			log.Info("Server is running. Press Ctrl+C to stop.")
			<-stop
			log.Info("Shutting down...")
			srv.Stop()
			return nil
		},
	}

	cmd.Flags().String("file", "urls.txt", "file of URLs to check, one per line")
	cmd.Flags().String("listen", server.DefaultListenAddr, "API listen address")
	cmd.Flags().Duration("interval", server.DefaultInterval, "delay between check runs")
	cmd.Flags().Int("workers", server.DefaultWorkers, "number of concurrent probe workers")
	cmd.Flags().Duration("timeout", checker.DefaultTimeout, "per-probe timeout")

	for _, name := range []string{"file", "listen", "interval", "workers", "timeout"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}

	return cmd
}
