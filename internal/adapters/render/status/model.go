package status

import (
	"errors"
	"io"

	"github.com/bnema/concierge/internal/application"
	"github.com/bnema/concierge/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	overview application.Overview
	session  domain.Session
	opts     RenderOptions
	styles   styles
	output   string
}

func newModel(overview application.Overview, session domain.Session, opts RenderOptions) model {
	return model{
		overview: overview,
		session:  session,
		opts:     opts.withDefaults(),
		styles:   newStyles(),
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
		m.output = renderView(m.overview, m.session, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the mission status overview of one session.
func Render(overview application.Overview, session domain.Session, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(overview, session, opts),
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

// View renders the overview without a bubbletea program, for callers that
// already own one.
func View(overview application.Overview, session domain.Session, opts RenderOptions) string {
	return renderView(overview, session, opts.withDefaults(), newStyles())
}
