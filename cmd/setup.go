package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"julius/internal/budget"
	"julius/internal/cli"
	"julius/internal/config"
	"julius/internal/service"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Long:  "Walk through income and savings to get a recommended allowance, then create the budget.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg := loadConfigOrDefault()

	fmt.Println()
	fmt.Println("  Welcome to julius!")
	fmt.Println()

	// 1. Currency
	fmt.Println("  1. Currency symbol")
	fmt.Printf("     Current: %s\n", cfg.General.Currency)
	fmt.Print("     > ")
	if symbol := readLine(reader); symbol != "" {
		cfg.General.Currency = symbol
	}
	fmt.Println()

	// 2. Financial profile, used only to recommend an allowance
	fmt.Println("  2. Financial profile (optional, Enter to skip)")
	income, err := promptFloat(reader, "     Monthly income > ")
	if err != nil {
		return err
	}
	fixed, err := promptFloat(reader, "     Fixed monthly expenses > ")
	if err != nil {
		return err
	}
	savings, err := promptFloat(reader, "     Monthly savings goal > ")
	if err != nil {
		return err
	}
	profile := budget.Profile{
		MonthlyIncome:    income,
		FixedExpenses:    fixed,
		MandatorySavings: savings,
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	fmt.Println()

	recommended := profile.Recommended(budget.Monthly)
	if recommended != nil {
		fmt.Printf("  Recommended daily allowance: %s\n\n",
			cli.FormatMoney(cfg.General.Currency, *recommended))
	}

	// 3. Daily allowance
	fmt.Println("  3. Daily allowance")
	if recommended != nil {
		fmt.Printf("     (Enter to accept %s)\n", cli.FormatMoney(cfg.General.Currency, *recommended))
	}
	fmt.Print("     > ")
	dailyValue := 0.0
	v, err := promptFloat(reader, "")
	if err != nil {
		return err
	}
	if v != nil {
		dailyValue = *v
	} else if recommended != nil {
		dailyValue = *recommended
	}
	if dailyValue <= 0 {
		return fmt.Errorf("daily allowance must be greater than zero")
	}
	fmt.Println()

	// 4. Renewal hour
	fmt.Println("  4. Renewal hour (0-23, Enter for 8)")
	fmt.Print("     > ")
	hour := 8
	if s := readLine(reader); s != "" {
		h, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("parsing renewal hour: %w", err)
		}
		hour = h
	}
	fmt.Println()

	// 5. Budget cycle
	fmt.Println("  5. Budget cycle")
	fmt.Println("     (1) daily [default]")
	fmt.Println("     (2) weekly")
	fmt.Println("     (3) monthly")
	fmt.Println("     (4) yearly")
	fmt.Print("     > ")
	freq := budget.Daily
	switch readLine(reader) {
	case "2":
		freq = budget.Weekly
	case "3":
		freq = budget.Monthly
	case "4":
		freq = budget.Yearly
	}

	day, month := 1, 0
	switch freq {
	case budget.Weekly:
		fmt.Print("     Weekday (1=Monday .. 7=Sunday) > ")
		day = readInt(reader, 1)
	case budget.Monthly:
		fmt.Print("     Day of month (1-31) > ")
		day = readInt(reader, 1)
	case budget.Yearly:
		fmt.Print("     Day of month (1-31) > ")
		day = readInt(reader, 1)
		fmt.Print("     Month (1-12) > ")
		month = readInt(reader, 1)
	}

	cycle, err := budget.NewCycle(freq, hour, day, month)
	if err != nil {
		return err
	}
	fmt.Println()

	// 6. Starting balance
	fmt.Println("  6. Starting balance (Enter to start with one day's allowance)")
	fmt.Print("     > ")
	initialBalance, err := promptFloat(reader, "")
	if err != nil {
		return err
	}

	svc, st, _, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	b, err := svc.Initialize(service.InitParams{
		DailyValue:     dailyValue,
		RenewalHour:    hour,
		Cycle:          &cycle,
		Profile:        profile,
		InitialBalance: initialBalance,
	})
	if err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Budget created: %s balance, %s per day.\n",
		cli.FormatMoney(cfg.General.Currency, b.Balance()),
		cli.FormatMoney(cfg.General.Currency, b.DailyValue()))
	fmt.Printf("  Config saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `julius` anytime to see where you stand.")
	fmt.Println()

	return nil
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptFloat prints the prompt, reads a line, and parses it as a
// float. A blank line returns nil.
func promptFloat(r *bufio.Reader, prompt string) (*float64, error) {
	if prompt != "" {
		fmt.Print(prompt)
	}
	s := readLine(r)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %q as a number: %w", s, err)
	}
	return &v, nil
}

func readInt(r *bufio.Reader, fallback int) int {
	s := readLine(r)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
