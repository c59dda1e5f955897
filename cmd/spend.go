package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"julius/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagSpendCategory string
	flagSpendItems    []string
)

var spendCmd = &cobra.Command{
	Use:   "spend VALUE [NAME]",
	Short: "Log an expense against today's allowance",
	Example: `  julius spend 12.50 lunch
  julius spend 45 groceries -c food -i "apples:groceries:3x4.50" -i "tomatoes:groceries:1.2kg@9.90"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpend,
}

func init() {
	spendCmd.Flags().StringVarP(&flagSpendCategory, "category", "c", "", "Expense category")
	spendCmd.Flags().StringArrayVarP(&flagSpendItems, "item", "i", nil, "Line item (NAME:CATEGORY:PRICING, repeatable)")
	rootCmd.AddCommand(spendCmd)
}

func runSpend(_ *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parsing expense value %q: %w", args[0], err)
	}
	name := strings.Join(args[1:], " ")

	items, err := parseItems(flagSpendItems)
	if err != nil {
		return err
	}

	svc, st, cfg, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	e, err := svc.AddExpense(value, name, flagSpendCategory, items)
	if err != nil {
		return err
	}

	b, _, err := svc.Current()
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	fmt.Printf("  Logged %s", cli.LossStyle.Render(cli.FormatSignedMoney(symbol, -e.Value)))
	if e.Name != "" {
		fmt.Printf(" (%s)", e.Name)
	}
	fmt.Printf("  id %s\n", shortID(e.ID))
	fmt.Printf("  Balance: %s\n", cli.FormatMoney(symbol, b.Balance()))
	if opd, ok := b.OPD(); ok {
		fmt.Printf("  Spendable today: %s\n", cli.FormatMoney(symbol, opd))
	}

	return nil
}

// shortID trims a UUID to its first group for display. Commands accept
// either form.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
