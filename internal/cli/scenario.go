package cli

import (
	"fmt"
	"time"

	"github.com/okian/nexera/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	scenarioURL      string
	scenarioSessions int
	scenarioTimeout  time.Duration
	scenarioSettle   time.Duration
	scenarioVerbose  bool
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Check a running service end to end",
	Long: `Drive a running service through classification, pose and concurrent
session walkthroughs, then print a summary. Exits non-zero when any check
fails.`,
	Args: cobra.NoArgs,
	RunE: runScenario,
}

func init() {
	scenarioCmd.Flags().StringVar(&scenarioURL, "url", "http://localhost:9080", "Base URL of the service")
	scenarioCmd.Flags().IntVar(&scenarioSessions, "sessions", scenario.DefaultSessions, "Concurrent session walkthroughs")
	scenarioCmd.Flags().DurationVar(&scenarioTimeout, "timeout", scenario.DefaultTimeout, "HTTP request timeout")
	scenarioCmd.Flags().DurationVar(&scenarioSettle, "settle", scenario.DefaultSettle, "Upper bound for a submission to resolve")
	scenarioCmd.Flags().BoolVarP(&scenarioVerbose, "verbose", "v", false, "Log every check")
}

func runScenario(cmd *cobra.Command, _ []string) error {
	stats, err := scenario.Run(commandContext(cmd), &scenario.Config{
		BaseURL:  scenarioURL,
		Sessions: scenarioSessions,
		Timeout:  scenarioTimeout,
		Settle:   scenarioSettle,
		Verbose:  scenarioVerbose,
	})
	if stats != nil {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "checks: %d passed: %d failed: %d\n", stats.Checks, stats.Passed, stats.Failed)
		for _, f := range stats.Failures {
			fmt.Fprintf(out, "  FAIL %s\n", f)
		}
	}
	return err
}
