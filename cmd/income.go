package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"julius/internal/cli"

	"github.com/spf13/cobra"
)

var incomeCmd = &cobra.Command{
	Use:     "income VALUE [NAME]",
	Short:   "Log extra income into the balance",
	Example: "  julius income 50 refund",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runIncome,
}

func init() {
	rootCmd.AddCommand(incomeCmd)
}

func runIncome(_ *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parsing income value %q: %w", args[0], err)
	}
	name := strings.Join(args[1:], " ")

	svc, st, cfg, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	in, err := svc.AddIncome(value, name)
	if err != nil {
		return err
	}

	b, _, err := svc.Current()
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	fmt.Printf("  Logged %s", cli.GainStyle.Render(cli.FormatSignedMoney(symbol, in.Value)))
	if in.Name != "" {
		fmt.Printf(" (%s)", in.Name)
	}
	fmt.Printf("  id %s\n", shortID(in.ID))
	fmt.Printf("  Balance: %s\n", cli.FormatMoney(symbol, b.Balance()))

	return nil
}
