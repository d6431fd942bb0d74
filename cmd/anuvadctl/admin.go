package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	anuvad "github.com/anuvad-labs/anuvad-go"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin session, usage ledger and credentials",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Establish an admin session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, err := promptLine("username: ")
		if err != nil {
			return err
		}
		password, err := promptSecret("password: ")
		if err != nil {
			return err
		}

		client, err := buildClient()
		if err != nil {
			return err
		}

		report, err := client.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}

		color.Green("✓ logged in")
		printReport(report)
		return nil
	},
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored admin session",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		if err := client.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the server usage and budget snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		report, err := client.Dashboard(cmd.Context())
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

var flagResetYes bool

var adminResetUsageCmd = &cobra.Command{
	Use:   "reset-usage",
	Short: "Zero the server usage ledger (irreversible)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !flagResetYes {
			answer, err := promptLine("this permanently zeroes the server ledger; type 'yes' to continue: ")
			if err != nil {
				return err
			}
			flagResetYes = answer == "yes"
		}

		client, err := buildClient()
		if err != nil {
			return err
		}

		report, err := client.ResetUsage(cmd.Context(), flagResetYes)
		if err != nil {
			return err
		}

		color.Green("✓ usage ledger reset")
		printReport(report)
		return nil
	},
}

var adminChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Rotate the admin secret",
	Long: `Rotates the admin secret. The new secret must be at least 8 characters
with at least one letter and one digit. On success the stored session is
discarded and 'admin login' is required again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		current, err := promptSecret("current password: ")
		if err != nil {
			return err
		}
		next, err := promptSecret("new password: ")
		if err != nil {
			return err
		}
		confirm, err := promptSecret("repeat new password: ")
		if err != nil {
			return err
		}
		if next != confirm {
			return fmt.Errorf("new passwords do not match")
		}

		client, err := buildClient()
		if err != nil {
			return err
		}

		if err := client.ChangePassword(cmd.Context(), current, next); err != nil {
			return err
		}

		color.Green("✓ password changed")
		fmt.Println("the stored session was discarded; run 'anuvadctl admin login' again")
		return nil
	},
}

func printReport(r anuvad.UsageReport) {
	fmt.Printf("usage:     $%.2f of $%.2f (%.1f%%)\n",
		r.CurrentUsage, r.BudgetLimit, r.PercentageUsed)
	fmt.Printf("remaining: $%.2f\n", r.RemainingBudget)
	fmt.Printf("requests:  %d\n", r.TotalRequests)
	if len(r.Recent) > 0 {
		fmt.Println("recent:")
		for _, e := range r.Recent {
			fmt.Printf("  %s  %-12s %3d pages  $%.2f\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"), e.Operation, e.Pages, e.Cost)
		}
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func init() {
	adminResetUsageCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false,
		"skip the interactive confirmation")
	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminLogoutCmd)
	adminCmd.AddCommand(adminDashboardCmd)
	adminCmd.AddCommand(adminResetUsageCmd)
	adminCmd.AddCommand(adminChangePasswordCmd)
	rootCmd.AddCommand(adminCmd)
}
