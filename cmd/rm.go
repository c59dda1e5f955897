package cmd

import (
	"fmt"
	"strings"
	"time"

	"julius/internal/cli"
	"julius/internal/service"
	"julius/internal/store"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a ledger entry, reverting its balance effect",
	Long: "Delete an expense or income by id (full or short form from `julius history`).\n" +
		"The balance effect is reverted through a compensating entry, so the ledger keeps a full trail.",
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(_ *cobra.Command, args []string) error {
	svc, st, cfg, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	entry, err := resolveEntry(svc, args[0])
	if err != nil {
		return err
	}

	switch entry.Kind {
	case "income":
		err = svc.DeleteIncome(entry.ID)
	default:
		err = svc.DeleteExpense(entry.ID)
	}
	if err != nil {
		return err
	}

	b, _, err := svc.Current()
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency
	fmt.Printf("  Deleted %s %s (%s reverted)\n",
		entry.Kind, shortID(entry.ID), cli.FormatSignedMoney(symbol, -entry.Value))
	fmt.Printf("  Balance: %s\n", cli.FormatMoney(symbol, b.Balance()))

	return nil
}

// resolveEntry finds a ledger entry by full id or unambiguous short
// prefix, searching the last year of history.
func resolveEntry(svc *service.Service, id string) (service.Entry, error) {
	now := time.Now()
	entries, err := svc.History(now.AddDate(-1, 0, 0), now)
	if err != nil {
		return service.Entry{}, err
	}

	var matches []service.Entry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return service.Entry{}, fmt.Errorf("%w: %s", store.ErrEntryNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return service.Entry{}, fmt.Errorf("id %q is ambiguous (%d matches)", id, len(matches))
	}
}
