package terminal

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgrude/clashtrack/internal/ports"
)

// Notifier writes completion alerts to the terminal. Sound renders as the
// terminal bell.
type Notifier struct {
	out   io.Writer
	title lipgloss.Style
	body  lipgloss.Style
}

var _ ports.Notifier = (*Notifier)(nil)

func New(out io.Writer) *Notifier {
	return &Notifier{
		out:   out,
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		body:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

func (n *Notifier) Notify(ctx context.Context, title, body string, sound bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line := n.title.Render(title) + " " + n.body.Render(body)
	if sound {
		line += "\a"
	}

	if _, err := fmt.Fprintln(n.out, line); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}

	return nil
}
