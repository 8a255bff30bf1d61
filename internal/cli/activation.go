package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/getalts/getalts-go/pkg/getalts"
)

// activationCommand creates the activation command with subcommands.
func (c *CLI) activationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activation",
		Short: "Inspect and transition an existing activation",
	}

	cmd.AddCommand(c.activationStatusCommand())
	cmd.AddCommand(c.activationWaitCommand())
	cmd.AddCommand(c.activationCancelCommand())
	cmd.AddCommand(c.activationEndCommand())
	cmd.AddCommand(c.activationResendCommand())

	return cmd
}

// parseActivationArg parses the activation id positional argument.
func parseActivationArg(arg string) (*getalts.Activation, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid activation id %q", arg)
	}
	return &getalts.Activation{ID: id}, nil
}

func (c *CLI) activationStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id>",
		Short: "Show the current activation state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := parseActivationArg(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			updated, err := client.ActivationStatus(ctx, act)
			if err != nil {
				return err
			}

			printKeyValue("Activation", fmt.Sprintf("%d", updated.ID))
			printKeyValue("Status", string(updated.Status))
			if updated.HasCode() {
				printKeyValue("Code", StyleNumber.Render(fmt.Sprintf("%d", updated.Code)))
			}
			return nil
		},
	}
}

func (c *CLI) activationWaitCommand() *cobra.Command {
	var maxWait time.Duration

	cmd := &cobra.Command{
		Use:   "wait <id>",
		Short: "Wait for the SMS verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := parseActivationArg(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			track := newProgress(c.Logger)
			spinner := newSpinnerWithContext(ctx, "Waiting for SMS code...")
			spinner.Start()

			got, err := client.WaitForCode(ctx, act, getalts.WaitOptions{MaxWait: maxWait})
			if err != nil {
				spinner.StopWithError("No code received")
				return err
			}
			spinner.Stop()
			track.done("Code received")

			printKeyValue("Code", StyleNumber.Render(fmt.Sprintf("%d", got.Code)))
			return nil
		},
	}

	cmd.Args = cobra.ExactArgs(1)
	cmd.Flags().DurationVar(&maxWait, "max-wait", getalts.DefaultMaxWait, "how long to wait for the code")

	return cmd
}

func (c *CLI) activationCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an activation and refund the purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := parseActivationArg(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			updated, err := client.CancelActivation(ctx, act)
			if err != nil {
				return err
			}
			printSuccess("Activation %d cancelled (%s)", updated.ID, updated.Status)
			return nil
		},
	}
}

func (c *CLI) activationEndCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "end <id>",
		Short: "Finish an activation after using its code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := parseActivationArg(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			updated, err := client.EndActivation(ctx, act)
			if err != nil {
				return err
			}
			printSuccess("Activation %d finished (%s)", updated.ID, updated.Status)
			return nil
		},
	}
}

func (c *CLI) activationResendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resend <id>",
		Short: "Request one more code for an activation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := parseActivationArg(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			updated, err := client.RequestAnotherCode(ctx, act)
			if err != nil {
				return err
			}
			printSuccess("Another code requested for activation %d (%s)", updated.ID, updated.Status)
			printNextStep("Collect it", fmt.Sprintf("getalts activation wait %d", updated.ID))
			return nil
		},
	}
}
