package cmd

import (
	"fmt"

	"julius/internal/cli"

	"github.com/spf13/cobra"
)

var renewCmd = &cobra.Command{
	Use:   "renew",
	Short: "Apply the daily renewal credit if it is due",
	Long: "Credit the daily allowance if the renewal hour has passed and today's\n" +
		"credit was not applied yet. Safe to run repeatedly; useful from cron when\n" +
		"the daemon is not running.",
	RunE: runRenew,
}

func init() {
	rootCmd.AddCommand(renewCmd)
}

func runRenew(_ *cobra.Command, _ []string) error {
	svc, st, cfg, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	applied, err := svc.RenewIfDue()
	if err != nil {
		return err
	}

	b, _, err := svc.Current()
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	if applied {
		fmt.Printf("  Renewed: credited %s\n",
			cli.GainStyle.Render(cli.FormatSignedMoney(symbol, b.DailyValue())))
	} else {
		fmt.Println("  Nothing due: today's allowance is already credited.")
	}
	fmt.Printf("  Balance: %s\n", cli.FormatMoney(symbol, b.Balance()))

	return nil
}
