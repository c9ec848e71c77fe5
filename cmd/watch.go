package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgrude/clashtrack/internal/application"
	"github.com/mgrude/clashtrack/internal/domain"
	"github.com/spf13/cobra"
)

// The countdown re-renders on a single owned tick whose period adapts:
// coarse while the nearest finish is at least a minute away, fine inside
// the last minute. Every update schedules exactly one next tick, so a
// period switch replaces the schedule instead of stacking timers.
type watchPeriod int

const (
	watchCoarse watchPeriod = iota
	watchFine
)

const (
	watchCoarseInterval = 30 * time.Second
	watchFineInterval   = time.Second
)

func (p watchPeriod) interval() time.Duration {
	if p == watchFine {
		return watchFineInterval
	}

	return watchCoarseInterval
}

// periodFor selects the refresh period from the nearest remaining time.
// A nil remaining (no active timers) keeps the coarse period.
func periodFor(remaining *time.Duration) watchPeriod {
	if remaining != nil && *remaining < time.Minute {
		return watchFine
	}

	return watchCoarse
}

func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <id>",
		Short: "Watch one account's timers live",
		Long:  "Shows an account's builders and labs with live countdowns. Press c to clear completed upgrades, q to quit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(
				newWatchModel(app, domain.AccountID(args[0])),
				tea.WithOutput(cmd.OutOrStdout()),
			)

			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			if m, ok := finalModel.(watchModel); ok && m.err != nil {
				return m.err
			}
			return nil
		},
	}
}

type accountLoadedMsg struct {
	account domain.Account
	err     error
}

type watchTickMsg time.Time

type watchModel struct {
	app       *app
	accountID domain.AccountID
	account   domain.Account
	loading   bool
	spinner   spinner.Model
	period    watchPeriod
	now       time.Time
	err       error
	styles    watchStyles
}

type watchStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	name    lipgloss.Style
	running lipgloss.Style
	ready   lipgloss.Style
	idle    lipgloss.Style
	help    lipgloss.Style
}

func newWatchStyles() watchStyles {
	return watchStyles{
		title:   lipgloss.NewStyle().Bold(true),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		running: lipgloss.NewStyle().Foreground(lipgloss.Color("118")),
		ready:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		idle:    lipgloss.NewStyle().Faint(true),
		help:    lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}

func newWatchModel(app *app, id domain.AccountID) watchModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return watchModel{
		app:       app,
		accountID: id,
		loading:   true,
		spinner:   s,
		now:       app.now(),
		styles:    newWatchStyles(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadAccount())
}

func (m watchModel) loadAccount() tea.Cmd {
	return func() tea.Msg {
		account, err := m.app.service.GetAccount(context.Background(), m.accountID)
		return accountLoadedMsg{account: account, err: err}
	}
}

func (m watchModel) clearCompleted() tea.Cmd {
	return func() tea.Msg {
		account, _, err := m.app.service.ClearCompleted(context.Background(), m.accountID)
		return accountLoadedMsg{account: account, err: err}
	}
}

func (m watchModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.period.interval(), func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case accountLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.account = msg.account
		m.now = m.app.now()
		m.period = periodFor(m.nearestRemaining())
		return m, m.scheduleTick()

	case watchTickMsg:
		m.now = m.app.now()
		m.period = periodFor(m.nearestRemaining())
		return m, m.scheduleTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			return m, m.clearCompleted()
		}
	}

	return m, nil
}

// nearestRemaining returns the time left on the soonest future completion,
// or nil when no timer is pending.
func (m watchModel) nearestRemaining() *time.Duration {
	summary := application.Summarize(m.account, m.now)
	if summary.NextCompletion == nil {
		return nil
	}

	remaining := summary.NextCompletion.Sub(m.now)
	return &remaining
}

func (m watchModel) View() string {
	if m.loading {
		return fmt.Sprintf("%s loading account...\n", m.spinner.View())
	}
	if m.err != nil {
		return ""
	}

	s := m.styles
	lines := []string{
		s.title.Render(m.account.Name),
		s.section.Render("Main Village"),
	}
	for _, b := range m.account.MainVillageBuilders {
		lines = append(lines, m.upgraderLine(b.Name, b.EndTime, b.InUse))
	}
	if m.account.Config.HasMainVillageLab {
		lines = append(lines, m.upgraderLine("Laboratory", m.account.MainVillageLab.EndTime, m.account.MainVillageLab.InUse))
	}

	lines = append(lines, s.section.Render("Builder Base"))
	for _, b := range m.account.BuilderBaseBuilders {
		lines = append(lines, m.upgraderLine(b.Name, b.EndTime, b.InUse))
	}
	if m.account.Config.HasBuilderBaseLab {
		lines = append(lines, m.upgraderLine("Laboratory", m.account.BuilderBaseLab.EndTime, m.account.BuilderBaseLab.InUse))
	}

	lines = append(lines, s.help.Render("c: clear completed  q: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m watchModel) upgraderLine(name string, end *time.Time, inUse bool) string {
	s := m.styles
	label := s.name.Render(name)

	if !inUse {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.idle.Render("Available"))
	}

	remaining := domain.FormatRemainingTime(end, m.now)
	style := s.running
	if remaining == "Complete" {
		style = s.ready
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", style.Render(remaining))
}
