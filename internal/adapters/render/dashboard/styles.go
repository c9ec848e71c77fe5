package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mgrude/clashtrack/internal/domain"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	account  lipgloss.Style
	ready    lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	statKey  lipgloss.Style
	statMeta lipgloss.Style
	nextUp   lipgloss.Style
}

func newStyles(theme domain.Theme) styles {
	if theme == domain.ThemeLight {
		return styles{
			title:    lipgloss.NewStyle().Bold(true),
			header:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
			account:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
			ready:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("166")),
			section:  lipgloss.NewStyle().MarginTop(1),
			empty:    lipgloss.NewStyle().Faint(true),
			statKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			statMeta: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
			nextUp:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28")),
		}
	}

	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		ready:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		statKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		statMeta: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		nextUp:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("118")),
	}
}
