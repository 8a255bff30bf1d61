package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getalts/getalts-go/pkg/credential"
	"github.com/getalts/getalts-go/pkg/getalts"
)

// authCommand creates the auth command with subcommands.
func (c *CLI) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored API tokens",
		Long: `Store and manage GetAlts API tokens.

Tokens are kept per profile in ~/.config/getalts/credentials/ with
owner-only file permissions. The default profile is used unless
--profile is given.`,
	}

	cmd.AddCommand(c.authLoginCommand())
	cmd.AddCommand(c.authLogoutCommand())
	cmd.AddCommand(c.authStatusCommand())
	cmd.AddCommand(c.authListCommand())

	return cmd
}

func (c *CLI) currentProfile() string {
	if c.profile != "" {
		return c.profile
	}
	return credential.DefaultProfile
}

func (c *CLI) authLoginCommand() *cobra.Command {
	var (
		token string
		label string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profile := c.currentProfile()

			if token == "" {
				fmt.Print("API token: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return fmt.Errorf("empty token")
			}

			// validate before storing
			client, err := getalts.New(getalts.Config{Token: token, BaseURL: c.baseURL, Logger: c.Logger})
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Verifying token...")
			spinner.Start()
			balance, err := client.Balance(ctx)
			client.Close()
			if err != nil {
				spinner.StopWithError("Token rejected")
				return err
			}
			spinner.Stop()

			store, err := credential.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open credential store: %w", err)
			}
			if err := store.Set(ctx, credential.New(profile, token, label)); err != nil {
				return err
			}

			printSuccess("Token stored for profile %q", profile)
			printDetail("Balance: %.2f", balance)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "API token (prompted when omitted)")
	cmd.Flags().StringVar(&label, "label", "", "optional label for this profile")

	return cmd
}

func (c *CLI) authLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credential.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open credential store: %w", err)
			}
			profile := c.currentProfile()
			if err := store.Delete(cmd.Context(), profile); err != nil {
				return err
			}
			printSuccess("Removed token for profile %q", profile)
			return nil
		},
	}
}

func (c *CLI) authStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored credential and verify it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profile := c.currentProfile()

			store, err := credential.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open credential store: %w", err)
			}
			cred, err := store.Get(ctx, profile)
			if err != nil {
				return fmt.Errorf("no token for profile %q (run 'getalts auth login')", profile)
			}

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			spinner := newSpinnerWithContext(ctx, "Verifying token...")
			spinner.Start()
			balance, err := client.Balance(ctx)
			if err != nil {
				spinner.StopWithError("Token invalid")
				return err
			}
			spinner.Stop()

			printSuccess("Credential OK")
			printKeyValue("Profile", cred.Profile)
			if cred.Label != "" {
				printKeyValue("Label", cred.Label)
			}
			printKeyValue("Saved", cred.SavedAt.Format("Jan 2, 2006"))
			printKeyValue("Balance", fmt.Sprintf("%.2f", balance))
			return nil
		},
	}
}

func (c *CLI) authListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored credential profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credential.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open credential store: %w", err)
			}
			profiles, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				printInfo("No stored credentials")
				return nil
			}
			for _, p := range profiles {
				marker := " "
				if p == c.currentProfile() {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, p)
			}
			return nil
		},
	}
}
