package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/new-item-notifier/internal/api/client"
)

func stateCmd() *cobra.Command {
	stateRoot := &cobra.Command{
		Use:   "state",
		Short: "Inspect stored diff state",
	}

	stateRoot.AddCommand(
		&cobra.Command{
			Use:   "snapshot",
			Short: "Show the known item IDs",
			RunE: func(cmd *cobra.Command, _ []string) error {
				snap, err := newClient().GetSnapshot(cmd.Context())
				if apiclient.IsNotFound(err) {
					fmt.Println("No snapshot has been written yet.")
					return nil
				}
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(os.Stdout, snap)
				}
				return printSnapshot(os.Stdout, snap)
			},
		},
		&cobra.Command{
			Use:   "cursor",
			Short: "Show the latest known item ID",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cur, err := newClient().GetCursor(cmd.Context())
				if apiclient.IsNotFound(err) {
					fmt.Println("No cursor has been written yet.")
					return nil
				}
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(os.Stdout, cur)
				}
				return printCursor(os.Stdout, cur)
			},
		},
	)

	return stateRoot
}
