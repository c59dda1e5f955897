// Package tui provides the interactive Bubble Tea dashboard.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"julius/internal/budget"
	"julius/internal/cli"
	"julius/internal/service"
	"julius/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dataMsg is sent when a budget refresh completes.
type dataMsg struct {
	budget  *budget.Budget
	profile budget.Profile
	entries []service.Entry
	err     error
}

// tickMsg drives the periodic refresh.
type tickMsg time.Time

const (
	minTerminalWidth = 60
	maxContentWidth  = 100
	refreshInterval  = 30 * time.Second
	historyRows      = 12
)

// App is the root Bubble Tea model.
type App struct {
	svc         *service.Service
	currency    string
	historyDays int

	// Data
	loaded  bool
	loadErr error
	budget  *budget.Budget
	entries []service.Entry

	lastRefresh time.Time

	// First-run setup (huh form)
	needSetup bool
	setupForm *huh.Form
	setupVals setupValues

	// UI state
	width   int
	height  int
	spinner spinner.Model
}

// NewApp creates a new dashboard model over the given service.
func NewApp(svc *service.Service, currency string, historyDays int) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	if historyDays < 1 {
		historyDays = 30
	}

	return App{
		svc:         svc,
		currency:    currency,
		historyDays: historyDays,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		refreshCmd(a.svc, a.historyDays),
		tickCmd(),
	)
}

func refreshCmd(svc *service.Service, historyDays int) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.RenewIfDue(); err != nil && !errors.Is(err, store.ErrNoBudget) {
			return dataMsg{err: err}
		}

		b, profile, err := svc.Current()
		if err != nil {
			return dataMsg{err: err}
		}

		now := time.Now()
		entries, err := svc.History(now.AddDate(0, 0, -historyDays), now)
		if err != nil {
			return dataMsg{err: err}
		}
		return dataMsg{budget: b, profile: profile, entries: entries}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width)
		}
		return a, nil

	case tea.KeyMsg:
		if a.needSetup && a.setupForm != nil {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a.updateSetupForm(msg)
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		case "r":
			return a, refreshCmd(a.svc, a.historyDays)
		}
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tickMsg:
		return a, tea.Batch(refreshCmd(a.svc, a.historyDays), tickCmd())

	case dataMsg:
		if errors.Is(msg.err, store.ErrNoBudget) {
			a.needSetup = true
			if a.setupForm == nil {
				a.setupForm = newSetupForm(&a.setupVals)
				if a.width > 0 {
					a.setupForm = a.setupForm.WithWidth(a.width)
				}
				return a, a.setupForm.Init()
			}
			return a, nil
		}
		if msg.err != nil {
			a.loadErr = msg.err
			a.loaded = true
			return a, nil
		}
		a.loaded = true
		a.loadErr = nil
		a.budget = msg.budget
		a.entries = msg.entries
		a.lastRefresh = time.Now()
		return a, nil
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		params, err := a.setupVals.initParams()
		if err == nil {
			_, err = a.svc.Initialize(params)
		}
		if err != nil {
			a.loadErr = err
			a.loaded = true
		}
		a.needSetup = false
		a.setupForm = nil
		return a, refreshCmd(a.svc, a.historyDays)
	}

	if a.setupForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return fmt.Sprintf(
			"\n  Terminal too narrow (%d cols)\n\n  The dashboard needs at least %d columns.\n",
			a.width, minTerminalWidth,
		)
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil {
		return "\n  " + cli.WarnStyle.Render("Error: "+a.loadErr.Error()) + "\n\n  Press q to quit.\n"
	}

	return a.viewMain()
}

func (a App) viewLoading() string {
	titleStyle := lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString("  " + titleStyle.Render("◈ julius"))
	b.WriteString(cli.MutedStyle.Render(" · Daily Allowance"))
	b.WriteString("\n\n  ")
	b.WriteString(a.spinner.View())
	b.WriteString(cli.MutedStyle.Render(" Loading budget"))
	b.WriteString("\n")
	return b.String()
}

func (a App) viewMain() string {
	now := time.Now()
	cw := a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(titleStyle.Render("◈ julius"))
	b.WriteString(cli.MutedStyle.Render(" · Daily Allowance"))
	b.WriteString("\n")

	b.WriteString(a.renderMetrics(now, cw))
	b.WriteString("\n")
	b.WriteString(a.renderHistory(cw))
	b.WriteString("\n")

	ago := ""
	if !a.lastRefresh.IsZero() {
		ago = cli.FormatCountdown(now.Sub(a.lastRefresh))
		if ago != "now" {
			ago += " ago"
		}
	}
	b.WriteString(RenderStatusBar(cw, ago))

	return b.String()
}

func (a App) renderMetrics(now time.Time, cw int) string {
	balance := cli.FormatMoney(a.currency, a.budget.Balance())
	balanceDetail := ""
	if a.budget.Balance() < 0 {
		balanceDetail = "overspent"
	}

	today := "-"
	todayDetail := "no cycle set"
	if opd, ok := a.budget.OPD(); ok {
		today = cli.FormatMoney(a.currency, opd)
		todayDetail = "spendable today"
	}

	next := a.budget.NextRenewal(now)
	renews := cli.FormatCountdown(next.Sub(now))
	renewsDetail := ""
	if c, ok := a.budget.Cycle(); ok {
		renewsDetail = cli.FormatCycle(string(c.Frequency()), c.RenewalHour(), c.RenewalDay(), c.RenewalMonth())
	}

	metrics := []Metric{
		{Label: "Balance", Value: balance, Detail: balanceDetail},
		{Label: "Today", Value: today, Detail: todayDetail},
		{Label: "Per day", Value: cli.FormatMoney(a.currency, a.budget.DailyValue()), Detail: "renews daily"},
		{Label: "Renews in", Value: renews, Detail: renewsDetail},
	}
	return MetricCardRow(metrics, cw)
}

func (a App) renderHistory(cw int) string {
	inner := CardInnerWidth(cw)

	if len(a.entries) == 0 {
		return ContentCard("Recent activity", cli.MutedStyle.Render("No entries yet."), cw)
	}

	// Newest first, capped to what fits on one screen.
	entries := a.entries
	if len(entries) > historyRows {
		entries = entries[len(entries)-historyRows:]
	}

	var rows []string
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]

		amount := cli.FormatSignedMoney(a.currency, e.Value)
		style := cli.LossStyle
		if e.Value >= 0 {
			style = cli.GainStyle
		}

		name := e.Name
		if name == "" {
			name = "(unnamed)"
		}
		if e.Category != "" {
			name += " " + cli.MutedStyle.Render("["+e.Category+"]")
		}

		when := cli.MutedStyle.Render(e.Timestamp.Format("Jan 02 15:04"))
		padding := inner - lipgloss.Width(when) - lipgloss.Width(name) - lipgloss.Width(amount) - 2
		if padding < 1 {
			padding = 1
		}

		rows = append(rows, when+" "+name+strings.Repeat(" ", padding)+style.Render(amount))
	}

	return ContentCard("Recent activity", strings.Join(rows, "\n"), cw)
}
