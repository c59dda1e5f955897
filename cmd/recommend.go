package cmd

import (
	"errors"
	"fmt"

	"julius/internal/budget"
	"julius/internal/cli"
	"julius/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagRecommendIncome  float64
	flagRecommendFixed   float64
	flagRecommendSavings float64
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a daily allowance from your financial profile",
	Long: "Compute a recommended allowance from monthly income minus fixed expenses\n" +
		"and savings, rounded down to a friendly multiple of 5. Uses the stored\n" +
		"profile unless overridden with flags.",
	Example: "  julius recommend --income 5000 --fixed 2800 --savings 500",
	RunE:    runRecommend,
}

func init() {
	recommendCmd.Flags().Float64Var(&flagRecommendIncome, "income", 0, "Monthly income")
	recommendCmd.Flags().Float64Var(&flagRecommendFixed, "fixed", 0, "Fixed monthly expenses")
	recommendCmd.Flags().Float64Var(&flagRecommendSavings, "savings", 0, "Monthly savings goal")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	symbol := cfg.General.Currency

	profile := budget.Profile{}

	if cmd.Flags().Changed("income") {
		profile.MonthlyIncome = &flagRecommendIncome
	}
	if cmd.Flags().Changed("fixed") {
		profile.FixedExpenses = &flagRecommendFixed
	}
	if cmd.Flags().Changed("savings") {
		profile.MandatorySavings = &flagRecommendSavings
	}

	// No overrides: fall back to the stored profile.
	if profile.MonthlyIncome == nil && profile.FixedExpenses == nil && profile.MandatorySavings == nil {
		svc, st, _, err := openService()
		if err != nil {
			return err
		}
		defer st.Close()

		_, stored, err := svc.Current()
		if err != nil {
			if errors.Is(err, store.ErrNoBudget) {
				return errors.New("no stored profile; pass --income, --fixed, and --savings")
			}
			return err
		}
		profile = stored
	}

	if err := profile.Validate(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(budget.Frequencies))
	for _, period := range budget.Frequencies {
		value := "-"
		if r := profile.Recommended(period); r != nil {
			value = cli.FormatMoney(symbol, *r)
		}
		rows = append(rows, []string{string(period), value})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recommended daily allowance",
		Headers: []string{"Cycle", "Per day"},
		Rows:    rows,
	}))

	if profile.MonthlyIncome == nil {
		fmt.Println("  " + cli.MutedStyle.Render("Set a monthly income to get a recommendation."))
		fmt.Println()
	}

	return nil
}
