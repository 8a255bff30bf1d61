package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/getalts/getalts-go/pkg/getalts"
)

// buyCommand creates the buy command.
func (c *CLI) buyCommand() *cobra.Command {
	var (
		service string
		country string
		wait    bool
		maxWait time.Duration
	)

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Rent a number for a service",
		Long: `Rent an activation number for a service in a country.

When --service or --country is omitted, an interactive picker opens.
With --wait the command marks the number ready, polls until the SMS
verification code arrives, and prints it. If no code arrives in time
the activation is cancelled and the purchase refunded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, cc, err := resolveTarget(service, country)
			if err != nil {
				return err
			}

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Renting %s number in %s...", svc.Name(), cc.Name()))
			spinner.Start()

			act, err := client.BuyNumber(ctx, svc, cc)
			if err != nil {
				spinner.StopWithError("Purchase failed")
				return err
			}
			spinner.StopWithSuccess("Number rented")

			printKeyValue("Phone", StyleNumber.Render("+"+act.PhoneNumber))
			printKeyValue("Activation", fmt.Sprintf("%d", act.ID))
			printKeyValue("Status", string(act.Status))

			if !wait {
				printNewline()
				printNextStep("Collect the code", fmt.Sprintf("getalts activation wait %d", act.ID))
				return nil
			}

			return c.waitAndPrintCode(cmd, client, act, maxWait)
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "service code or name (interactive picker when omitted)")
	cmd.Flags().StringVar(&country, "country", "", "country code or name (interactive picker when omitted)")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the verification code after buying")
	cmd.Flags().DurationVar(&maxWait, "max-wait", getalts.DefaultMaxWait, "how long to wait for the code")

	return cmd
}

// resolveTarget turns flag values into a service and country, opening
// interactive pickers for whichever is missing.
func resolveTarget(service, country string) (getalts.Service, getalts.Country, error) {
	var (
		svc getalts.Service
		cc  getalts.Country
		err error
	)

	if service == "" {
		svc, err = pickService()
	} else {
		svc, err = getalts.ParseService(service)
	}
	if err != nil {
		return "", "", err
	}

	if country == "" {
		cc, err = pickCountry()
	} else {
		cc, err = getalts.ParseCountry(country)
	}
	if err != nil {
		return "", "", err
	}

	return svc, cc, nil
}

// waitAndPrintCode marks the activation ready, waits for its code, and
// prints it. On timeout the activation is cancelled for a refund.
func (c *CLI) waitAndPrintCode(cmd *cobra.Command, client *getalts.Client, act *getalts.Activation, maxWait time.Duration) error {
	ctx := cmd.Context()

	act, err := client.ReadyForCode(ctx, act)
	if err != nil {
		return err
	}

	track := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Waiting for SMS code...")
	spinner.Start()

	got, err := client.WaitForCode(ctx, act, getalts.WaitOptions{MaxWait: maxWait})
	if err != nil {
		spinner.StopWithError("No code received")
		if cancelled, cerr := client.CancelActivation(ctx, act); cerr == nil {
			printDetail("Activation %d cancelled, purchase refunded", cancelled.ID)
		} else {
			printWarning("Could not cancel activation %d: %v", act.ID, cerr)
		}
		return err
	}
	spinner.Stop()
	track.done("Code received")

	printKeyValue("Code", StyleNumber.Render(fmt.Sprintf("%d", got.Code)))
	printNewline()
	printNextStep("Finish up", fmt.Sprintf("getalts activation end %d", got.ID))
	return nil
}
