package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// balanceCommand creates the balance command.
func (c *CLI) balanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the account balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			spinner := newSpinnerWithContext(ctx, "Fetching balance...")
			spinner.Start()

			balance, err := client.Balance(ctx)
			if err != nil {
				spinner.StopWithError("Could not fetch balance")
				return err
			}
			spinner.Stop()

			printKeyValue("Balance", StyleNumber.Render(fmt.Sprintf("%.2f", balance)))
			return nil
		},
	}
}
