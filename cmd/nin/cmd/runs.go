package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func triggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Run the pipeline once on the server",
		Long: "Asks the server to scrape, diff and notify immediately and waits\n" +
			"for the run to finish. Fails with HTTP 409 if a run is in progress.",
		Example: `  nin trigger
  nin trigger --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().TriggerRun(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(os.Stdout, res)
			}
			return printTriggerResult(os.Stdout, res)
		},
	}
}

func runsCmd() *cobra.Command {
	runsRoot := &cobra.Command{
		Use:   "runs",
		Short: "Inspect run logs",
		Long: "Each run that posts notifications writes a log keyed by the minute\n" +
			"it started, recording the notification ID of every item.",
	}

	runsRoot.AddCommand(
		runsListCmd(),
		runsGetCmd(),
	)

	return runsRoot
}

func runsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent run logs",
		Example: `  nin runs list
  nin runs list --limit 5 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := newClient().ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(os.Stdout, runs)
			}
			if len(runs) == 0 {
				fmt.Println("No run logs found.")
				return nil
			}
			return printRunsTable(os.Stdout, runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of logs (server default 20)")

	return cmd
}

func runsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <minute>",
		Short: "Show a run log",
		Args:  cobra.ExactArgs(1),
		Example: `  nin runs get 2024-01-01T1230
  nin runs get logs/2024-01-01T1230.json --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newClient().GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(os.Stdout, l)
			}
			return printRunDetail(os.Stdout, l)
		},
	}
}
