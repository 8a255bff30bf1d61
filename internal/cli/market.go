package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/getalts/getalts-go/pkg/getalts"
)

// pricesCommand creates the prices command.
func (c *CLI) pricesCommand() *cobra.Command {
	var (
		country string
		service string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Show number prices",
		Long: `Show prices per service for a country, or per country for a service.

Pass --country to list what each service costs there, or --service to
list what the service costs in each country. Results are cached; use
--refresh to force a fresh fetch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (country == "") == (service == "") {
				return fmt.Errorf("pass exactly one of --country or --service")
			}

			ctx := cmd.Context()
			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			spinner := newSpinnerWithContext(ctx, "Fetching prices...")
			spinner.Start()

			if country != "" {
				cc, err := getalts.ParseCountry(country)
				if err != nil {
					spinner.Stop()
					return err
				}
				prices, err := client.PricesByCountry(ctx, cc, refresh)
				if err != nil {
					spinner.StopWithError("Could not fetch prices")
					return err
				}
				spinner.Stop()

				printInfo("Prices in %s", cc.Name())
				printServicePriceTable(prices)
				return nil
			}

			svc, err := getalts.ParseService(service)
			if err != nil {
				spinner.Stop()
				return err
			}
			prices, err := client.PricesByService(ctx, svc, refresh)
			if err != nil {
				spinner.StopWithError("Could not fetch prices")
				return err
			}
			spinner.Stop()

			printInfo("Prices for %s", svc.Name())
			printCountryPriceTable(prices)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "country code or name")
	cmd.Flags().StringVar(&service, "service", "", "service code or name")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached prices")

	return cmd
}

// numbersCommand creates the numbers command.
func (c *CLI) numbersCommand() *cobra.Command {
	var (
		country string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "numbers",
		Short: "Show how many numbers are in stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := getalts.ParseCountry(country)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			spinner := newSpinnerWithContext(ctx, "Fetching stock...")
			spinner.Start()

			counts, err := client.AvailableNumbers(ctx, cc, refresh)
			if err != nil {
				spinner.StopWithError("Could not fetch stock")
				return err
			}
			spinner.Stop()

			printInfo("Available numbers in %s", cc.Name())
			printStockTable(counts)
			printNextStep("Rent one", fmt.Sprintf("getalts buy --country %s --service <code>", cc))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "country code or name (required)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached stock counts")
	cmd.MarkFlagRequired("country")

	return cmd
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func printServicePriceTable(prices map[getalts.Service]float64) {
	services := make([]getalts.Service, 0, len(prices))
	for svc := range prices {
		services = append(services, svc)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name() < services[j].Name() })

	t := newTable("Service", "Code", "Price")
	for _, svc := range services {
		t.Row(svc.Name(), svc.String(), fmt.Sprintf("%.2f", prices[svc]))
	}
	fmt.Println(t)
}

func printCountryPriceTable(prices map[getalts.Country]float64) {
	countries := make([]getalts.Country, 0, len(prices))
	for c := range prices {
		countries = append(countries, c)
	}
	sort.Slice(countries, func(i, j int) bool { return countries[i].Name() < countries[j].Name() })

	t := newTable("Country", "Code", "Price")
	for _, c := range countries {
		t.Row(c.Name(), c.String(), fmt.Sprintf("%.2f", prices[c]))
	}
	fmt.Println(t)
}

func printStockTable(counts map[getalts.Service]int) {
	services := make([]getalts.Service, 0, len(counts))
	for svc := range counts {
		services = append(services, svc)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name() < services[j].Name() })

	t := newTable("Service", "Code", "In stock")
	for _, svc := range services {
		t.Row(svc.Name(), svc.String(), fmt.Sprintf("%d", counts[svc]))
	}
	fmt.Println(t)
}
