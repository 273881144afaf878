package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/urlstat/urlstat/pkg/checker"
)

const (
	// defaultCheckWorkers is the worker count for one-shot checks.
	defaultCheckWorkers = 16
)

// newCheckCmd creates the one-shot check command. Each argument is a
// file of URLs; a file that cannot be opened or checked is reported and
// skipped while the remaining files still run.
func newCheckCmd(log *logrus.Logger) *cobra.Command {
	var workers int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Check every URL listed in the given files once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					log.Errorf("Cannot open %s: %v", path, err)
					continue
				}

				c, err := checker.New(f,
					checker.WithWorkers(workers),
					checker.WithTimeout(timeout),
					checker.WithLogger(log),
				)
				if err != nil {
					f.Close()
					return err
				}

				results, err := c.Run(cmd.Context())
				if err != nil {
					log.Errorf("Check failed for %s: %v", path, err)
					continue
				}

				for u, outcome := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", u, outcome)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", defaultCheckWorkers, "number of concurrent probe workers")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", checker.DefaultTimeout, "per-probe timeout")

	return cmd
}
