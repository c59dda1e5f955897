package cmd

import (
	"fmt"
	"time"

	"julius/internal/budget"
	"julius/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagCycleHour  int
	flagCycleDay   int
	flagCycleMonth int
)

var cycleCmd = &cobra.Command{
	Use:   "cycle [FREQUENCY]",
	Short: "Show or set the budget renewal cycle",
	Long: "Set how the balance anchors to a period: daily, weekly, monthly, or yearly.\n" +
		"Weekly cycles take --day as an ISO weekday (1=Monday); monthly and yearly\n" +
		"take a day of month, and yearly additionally takes --month.\n" +
		"With no arguments, shows the current cycle.",
	Example: `  julius cycle
  julius cycle weekly --day 5 --hour 8
  julius cycle yearly --day 15 --month 6`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCycle,
}

func init() {
	cycleCmd.Flags().IntVar(&flagCycleHour, "hour", 8, "Renewal hour (0-23)")
	cycleCmd.Flags().IntVar(&flagCycleDay, "day", 1, "Renewal day anchor")
	cycleCmd.Flags().IntVar(&flagCycleMonth, "month", 0, "Renewal month (yearly only)")
	rootCmd.AddCommand(cycleCmd)
}

func runCycle(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showCycle()
	}

	freq, err := budget.ParseFrequency(args[0])
	if err != nil {
		return err
	}

	month := flagCycleMonth
	if freq == budget.Yearly && month == 0 {
		month = 1
	}

	cycle, err := budget.NewCycle(freq, flagCycleHour, flagCycleDay, month)
	if err != nil {
		return err
	}

	svc, st, cfg, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	b, err := svc.SetCycle(cycle)
	if err != nil {
		return err
	}

	now := time.Now()
	next := b.NextRenewal(now)

	fmt.Printf("  Cycle set: %s\n",
		cli.FormatCycle(string(cycle.Frequency()), cycle.RenewalHour(), cycle.RenewalDay(), cycle.RenewalMonth()))
	fmt.Printf("  Next renewal: %s (%s)\n", next.Format("Mon Jan 02 15:04"), cli.FormatCountdown(next.Sub(now)))
	if opd, ok := b.OPD(); ok {
		fmt.Printf("  Spendable today: %s\n", cli.FormatMoney(cfg.General.Currency, opd))
	}

	return nil
}

func showCycle() error {
	svc, st, _, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	status, err := svc.Status()
	if err != nil {
		return err
	}

	c, ok := status.Budget.Cycle()
	if !ok {
		fmt.Println("  No cycle set. Run `julius cycle daily|weekly|monthly|yearly`.")
		return nil
	}

	fmt.Printf("  Cycle: %s\n",
		cli.FormatCycle(string(c.Frequency()), c.RenewalHour(), c.RenewalDay(), c.RenewalMonth()))
	fmt.Printf("  Next renewal: %s (%s)\n",
		status.NextRenewal.Format("Mon Jan 02 15:04"),
		cli.FormatCountdown(time.Until(status.NextRenewal)))
	return nil
}
