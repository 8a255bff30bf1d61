package cli

import (
	"github.com/spf13/cobra"

	"github.com/getalts/getalts-go/internal/mockapi"
)

// mockCommand creates the mock API server command.
func (c *CLI) mockCommand() *cobra.Command {
	var (
		addr    string
		balance float64
		price   float64
	)

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Run a local mock API server",
		Long: `Run an in-memory imitation of the GetAlts API for development.

The mock accepts any non-empty token and speaks the same wire protocol
as the production endpoint. Point the client at it with:

  getalts --base-url http://localhost:8080 balance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mockapi.New(
				mockapi.WithBalance(balance),
				mockapi.WithPrice(price),
			)

			c.Logger.Info("mock API listening", "addr", addr)
			printInfo("Mock API on %s", addr)
			printNextStep("Try it", "getalts --base-url http://"+addr+" balance")

			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().Float64Var(&balance, "balance", 100, "starting account balance")
	cmd.Flags().Float64Var(&price, "price", 0.5, "flat per-number price")

	return cmd
}
