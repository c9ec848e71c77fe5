package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgrude/clashtrack/internal/application"
	"github.com/mgrude/clashtrack/internal/domain"
)

type RenderOptions struct {
	Now   time.Time
	Theme domain.Theme
}

func renderView(summaries []application.Summary, next []application.Completion, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Upgrade Tracker"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(summaries))),
	}

	if len(summaries) == 0 {
		lines = append(lines, s.empty.Render("No accounts yet. Add one with: ct account add <name>"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if line := nextUpLine(next, opts, s); line != "" {
		lines = append(lines, line)
	}

	for _, summary := range summaries {
		lines = append(lines, s.section.Render(renderAccount(summary, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func nextUpLine(next []application.Completion, opts RenderOptions, s styles) string {
	if len(next) == 0 {
		return ""
	}

	first := next[0]
	return s.nextUp.Render(fmt.Sprintf("Next up: %s in %s finishes in %s",
		first.Category.Label(),
		first.AccountName,
		domain.FormatRemainingTime(&first.EndTime, opts.Now),
	))
}

func renderAccount(summary application.Summary, s styles) string {
	parts := []string{
		s.account.Render(fmt.Sprintf("%s (%s)", summary.Account.Name, summary.Account.ID)),
		statLine(s, "builders:", fmt.Sprintf("%d / %d active", summary.ActiveBuilders, summary.TotalBuilders)),
		statLine(s, "labs:", fmt.Sprintf("%d / %d active", summary.ActiveLabs, summary.EnabledLabs)),
		statLine(s, "next completion:", nextCompletionLabel(summary)),
	}

	if summary.ReadyToClear > 0 {
		parts = append(parts, s.ready.Render(fmt.Sprintf("ready to clear: %d", summary.ReadyToClear)))
	}

	if available := availableLabel(summary.Availability); available != "" {
		parts = append(parts, statLine(s, "available:", available))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func statLine(s styles, key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.statKey.Render(key), " ", s.statMeta.Render(value))
}

func nextCompletionLabel(summary application.Summary) string {
	if summary.NextCompletion == nil {
		return "none"
	}

	return summary.NextCompletionIn
}

func availableLabel(a application.Availability) string {
	labels := make([]string, 0, 4)
	if a.MainBuilders {
		labels = append(labels, "main builders")
	}
	if a.MainLab {
		labels = append(labels, "main lab")
	}
	if a.BuilderBaseBuilders {
		labels = append(labels, "builder base builders")
	}
	if a.BuilderBaseLab {
		labels = append(labels, "builder base lab")
	}

	return strings.Join(labels, ", ")
}
