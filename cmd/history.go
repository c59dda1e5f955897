package cmd

import (
	"fmt"
	"time"

	"julius/internal/cli"
	"julius/internal/service"

	"github.com/spf13/cobra"
)

var flagHistoryDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List logged expenses and income",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryDays, "days", "n", 0, "Time window in days (default from config)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	svc, st, cfg, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	days := flagHistoryDays
	if days <= 0 {
		days = cfg.General.HistoryDays
	}

	now := time.Now()
	entries, err := svc.History(now.AddDate(0, 0, -days), now)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("\n  No entries in the last %d days.\n", days)
		return nil
	}

	symbol := cfg.General.Currency

	var spent, gained float64
	rows := make([][]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]

		if e.Value < 0 {
			spent += -e.Value
		} else {
			gained += e.Value
		}

		rows = append(rows, []string{
			e.Timestamp.Format("Jan 02 15:04"),
			entryLabel(e),
			e.Category,
			cli.FormatSignedMoney(symbol, e.Value),
			shortID(e.ID),
		})
	}

	fmt.Println()
	table := cli.Table{
		Title:   fmt.Sprintf("Last %d days", days),
		Headers: []string{"When", "Name", "Category", "Amount", "ID"},
		Rows:    rows,
	}
	fmt.Print(cli.RenderTable(table))

	fmt.Printf("  Spent %s, received %s (net %s)\n\n",
		cli.FormatMoney(symbol, spent),
		cli.FormatMoney(symbol, gained),
		cli.FormatSignedMoney(symbol, gained-spent))

	return nil
}

func entryLabel(e service.Entry) string {
	if e.Name != "" {
		return e.Name
	}
	if e.Kind == "income" {
		return "(income)"
	}
	return "(expense)"
}
