package main

import (
	"fmt"
	"os"

	"github.com/sportbook-io/sportbook-cli/cmd"
	"github.com/sportbook-io/sportbook-cli/internal/version"
	"github.com/spf13/cobra"
)

var buildVersion = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sportbook",
	Short: "Sportbook - book sports activities from your terminal",
	Long: `Sportbook is a command-line client for booking sports activities.

It lets you:
  - Browse and search the activity catalog
  - Book time slots, with or without an account
  - Manage reservations: edit, cancel, leave feedback
  - Earn loyalty points and redeem rewards

Anonymous bookings are kept on this machine and transfer to your
account when you log in.

Get started by running: sportbook browse
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Sportbook!")
		fmt.Println()
		fmt.Println("Quick Commands:")
		fmt.Println("  sportbook browse          Browse activities interactively")
		fmt.Println("  sportbook activities      List activities")
		fmt.Println("  sportbook reserve <id>    Book an activity")
		fmt.Println("  sportbook reservations    Manage your reservations")
		fmt.Println("  sportbook login           Log in to your account")
		fmt.Println("  sportbook help            Show help information")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cmd.Verbose, "verbose", "v", false, "Verbose diagnostic output on stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cmd.ActivitiesCmd)
	rootCmd.AddCommand(cmd.BrowseCmd)
	rootCmd.AddCommand(cmd.ReserveCmd)
	rootCmd.AddCommand(cmd.ReservationsCmd)
	rootCmd.AddCommand(cmd.RewardsCmd)
	rootCmd.AddCommand(cmd.CompanyCmd)
	rootCmd.AddCommand(cmd.LoginCmd)
	rootCmd.AddCommand(cmd.LogoutCmd)
	rootCmd.AddCommand(cmd.RegisterCmd)
	rootCmd.AddCommand(cmd.WhoamiCmd)

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
}

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(c *cobra.Command, args []string) error {
		fmt.Printf("sportbook version %s\n", buildVersion)
		if !versionCheck {
			return nil
		}
		available, latest, err := version.UpdateAvailable(buildVersion)
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		if available {
			fmt.Printf("A newer release is available: %s\n", latest)
		} else {
			fmt.Println("You are up to date.")
		}
		return nil
	},
}
