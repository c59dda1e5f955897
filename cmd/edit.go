package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"julius/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagEditCategory string
	flagEditItems    []string
)

var editCmd = &cobra.Command{
	Use:   "edit ID VALUE [NAME]",
	Short: "Replace a ledger entry with corrected values",
	Long: "Replace an expense or income with new values. The original entry is\n" +
		"reverted through a compensating entry and a fresh one is logged, so the\n" +
		"edit itself stays visible in history.",
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&flagEditCategory, "category", "c", "", "New expense category")
	editCmd.Flags().StringArrayVarP(&flagEditItems, "item", "i", nil, "New line item (NAME:CATEGORY:PRICING, repeatable)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parsing value %q: %w", args[1], err)
	}
	name := strings.Join(args[2:], " ")

	svc, st, cfg, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	entry, err := resolveEntry(svc, args[0])
	if err != nil {
		return err
	}
	if name == "" {
		name = entry.Name
	}

	var newID string
	switch entry.Kind {
	case "income":
		in, err := svc.UpdateIncome(entry.ID, value, name)
		if err != nil {
			return err
		}
		newID = in.ID
	default:
		items, err := parseItems(flagEditItems)
		if err != nil {
			return err
		}
		category := flagEditCategory
		if category == "" {
			category = entry.Category
		}
		e, err := svc.UpdateExpense(entry.ID, value, name, category, items)
		if err != nil {
			return err
		}
		newID = e.ID
	}

	b, _, err := svc.Current()
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	fmt.Printf("  Replaced %s %s with %s\n", entry.Kind, shortID(entry.ID), shortID(newID))
	fmt.Printf("  Balance: %s\n", cli.FormatMoney(symbol, b.Balance()))

	return nil
}
