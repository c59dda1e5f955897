package tui

import (
	"fmt"
	"strconv"
	"strings"

	"julius/internal/budget"
	"julius/internal/service"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run form inputs before parsing.
type setupValues struct {
	dailyValue string
	hour       string
	frequency  string
	anchorDay  string
	balance    string
}

func newSetupForm(vals *setupValues) *huh.Form {
	vals.frequency = string(budget.Daily)
	vals.hour = "8"

	freqOptions := make([]huh.Option[string], 0, len(budget.Frequencies))
	for _, f := range budget.Frequencies {
		freqOptions = append(freqOptions, huh.NewOption(string(f), string(f)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daily allowance").
				Description("How much you want to spend per day.").
				Validate(validatePositiveFloat).
				Value(&vals.dailyValue),
			huh.NewInput().
				Title("Renewal hour (0-23)").
				Description("The hour each day when the allowance is credited.").
				Validate(validateHour).
				Value(&vals.hour),
			huh.NewSelect[string]().
				Title("Budget cycle").
				Description("How often the balance anchors to a fresh period.").
				Options(freqOptions...).
				Value(&vals.frequency),
			huh.NewInput().
				Title("Anchor day").
				Description("Weekday 1-7 for weekly, day of month for monthly/yearly. Leave blank for daily.").
				Validate(validateOptionalInt).
				Value(&vals.anchorDay),
			huh.NewInput().
				Title("Starting balance").
				Description("Leave blank to start with one day's allowance.").
				Validate(validateOptionalFloat).
				Value(&vals.balance),
		),
	)
}

// initParams parses the form inputs into service parameters.
func (v setupValues) initParams() (service.InitParams, error) {
	daily, err := strconv.ParseFloat(strings.TrimSpace(v.dailyValue), 64)
	if err != nil {
		return service.InitParams{}, fmt.Errorf("parsing daily allowance: %w", err)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(v.hour))
	if err != nil {
		return service.InitParams{}, fmt.Errorf("parsing renewal hour: %w", err)
	}

	params := service.InitParams{
		DailyValue:  daily,
		RenewalHour: hour,
	}

	freq, err := budget.ParseFrequency(strings.TrimSpace(v.frequency))
	if err != nil {
		return service.InitParams{}, err
	}

	day := 1
	if s := strings.TrimSpace(v.anchorDay); s != "" {
		day, err = strconv.Atoi(s)
		if err != nil {
			return service.InitParams{}, fmt.Errorf("parsing anchor day: %w", err)
		}
	}
	month := 0
	if freq == budget.Yearly {
		month = 1
	}

	cycle, err := budget.NewCycle(freq, hour, day, month)
	if err != nil {
		return service.InitParams{}, err
	}
	params.Cycle = &cycle

	if s := strings.TrimSpace(v.balance); s != "" {
		bal, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return service.InitParams{}, fmt.Errorf("parsing starting balance: %w", err)
		}
		params.InitialBalance = &bal
	}

	return params, nil
}

func validatePositiveFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateOptionalFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a number or leave blank")
	}
	return nil
}

func validateOptionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number or leave blank")
	}
	return nil
}

func validateHour(s string) error {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || h < 0 || h > 23 {
		return fmt.Errorf("enter an hour between 0 and 23")
	}
	return nil
}
