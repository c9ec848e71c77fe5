package dashboard

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgrude/clashtrack/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	summaries []application.Summary
	next      []application.Completion
	opts      RenderOptions
	styles    styles
	output    string
}

func newModel(summaries []application.Summary, next []application.Completion, opts RenderOptions) model {
	return model{
		summaries: summaries,
		next:      next,
		opts:      opts,
		styles:    newStyles(opts.Theme),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.summaries, m.next, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func Render(summaries []application.Summary, next []application.Completion, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(summaries, next, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
