package cmd

import (
	"errors"
	"fmt"
	"time"

	"julius/internal/cli"
	"julius/internal/store"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current balance and projection",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	svc, st, cfg, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	// Catch up on any renewal that came due since the last run.
	if _, err := svc.RenewIfDue(); err != nil && !errors.Is(err, store.ErrNoBudget) {
		return err
	}

	status, err := svc.Status()
	if err != nil {
		if errors.Is(err, store.ErrNoBudget) {
			fmt.Println("\n  No budget yet. Run `julius setup` to get started.")
			return nil
		}
		return err
	}
	b := status.Budget

	now := time.Now()
	symbol := cfg.General.Currency

	if !flagQuiet {
		fmt.Println()
		fmt.Println(cli.RenderTitle("JULIUS  Daily Allowance"))
		fmt.Println()
	}

	rows := [][]string{
		{"Balance", cli.FormatMoney(symbol, b.Balance())},
	}

	if opd, ok := b.OPD(); ok {
		rows = append(rows, []string{"Spendable today", cli.FormatMoney(symbol, opd)})
	}
	rows = append(rows, []string{"Daily allowance", cli.FormatMoney(symbol, b.DailyValue())})

	if c, ok := b.Cycle(); ok {
		rows = append(rows,
			[]string{"Cycle", cli.FormatCycle(string(c.Frequency()), c.RenewalHour(), c.RenewalDay(), c.RenewalMonth())},
			[]string{"Next renewal", status.NextRenewal.Format("Mon Jan 02 15:04")},
			[]string{"Renews in", cli.FormatCountdown(status.NextRenewal.Sub(now))},
			[]string{"Days left in cycle", fmt.Sprintf("%d", status.DaysRemaining)},
		)
	} else {
		rows = append(rows, []string{"Cycle", "not set (run `julius cycle`)"})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if b.Balance() < 0 {
		fmt.Println("  " + cli.WarnStyle.Render("Balance is negative: today's allowance is already spent."))
		fmt.Println()
	}

	return nil
}
