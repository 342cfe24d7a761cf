package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	statusadapter "github.com/bnema/concierge/internal/adapters/render/status"
	"github.com/bnema/concierge/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const consoleTranscriptLines = 8

type sessionChangedMsg struct{}

var (
	consoleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("179"))
	consoleFaint  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	consoleAlert  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	consoleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	consoleBanner = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("203")).Padding(0, 1)
)

type consoleModel struct {
	session *session
	spinner spinner.Model
	input   textinput.Model
	changes <-chan struct{}
	view    domain.Session
	err     error
}

func newConsoleModel(s *session) consoleModel {
	changes := make(chan struct{}, 1)
	s.director.Subscribe(func(domain.Event) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = s.resolver.Resolve("home.typePlaceholder")

	return consoleModel{
		session: s,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		input:   input,
		changes: changes,
		view:    s.director.Snapshot(),
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return sessionChangedMsg{}
	}
}

func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForChange(m.changes))
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		m.view = m.session.director.Snapshot()
		return m, waitForChange(m.changes)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m consoleModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.session.director.PostUserMessage(m.input.Value())
		m.input.Reset()
		m.input.Blur()
		m.view = m.session.director.Snapshot()
		return m, nil
	case tea.KeyEsc:
		m.input.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m consoleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.session.director
	m.err = nil

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		m.err = d.StartPlanning()
	case "v":
		m.err = d.StartVoiceDemo()
	case "l":
		d.ToggleLocale()
		m.input.Placeholder = m.session.resolver.Resolve("home.typePlaceholder")
	case "a", "r":
		if len(m.view.Pending) == 0 {
			break
		}
		id := m.view.Pending[0].ID
		if msg.String() == "a" {
			d.AcceptMemory(id)
		} else {
			d.RejectMemory(id)
		}
	case "o":
		d.ShowOverview(!m.view.View.ShowOverview)
	case "x":
		d.DismissAlert()
	case "i":
		m.view = d.Snapshot()
		return m, m.input.Focus()
	}

	m.view = d.Snapshot()
	return m, nil
}

func (m consoleModel) View() string {
	t := m.session.resolver.Resolve
	s := m.view

	lines := []string{
		consoleTitle.Render(t("app.concierge")) + " " + consoleFaint.Render(fmt.Sprintf("%s | %s, %s", s.Locale, s.Form.Destination, s.Form.Duration)),
	}

	if s.View.ShowAlert {
		lines = append(lines, consoleBanner.Render(consoleAlert.Render(t("alert.title"))+"\n"+t("alert.flightChange")))
	}

	if s.View.ShowOverview {
		lines = append(lines, statusadapter.View(m.session.director.Overview(), s, statusadapter.RenderOptions{T: t}))
	} else {
		lines = append(lines, "", statusadapter.RenderTranscript(lastMessages(s.Messages, consoleTranscriptLines)), "")
		for _, agent := range s.Agents {
			lines = append(lines, fmt.Sprintf("%-22s %-8s %s", t("agents."+string(agent.ID)), agent.Status, consoleFaint.Render(agent.Log)))
		}
	}

	if len(s.Pending) > 0 {
		memory := s.Pending[0]
		lines = append(lines, "", fmt.Sprintf("%s: %s (%s)", t("modal.pendingInsights"), memory.Content, t("agents."+string(memory.SourceAgent))))
	}

	switch {
	case s.View.Listening:
		lines = append(lines, "", m.spinner.View()+" "+t("home.listening"))
	case s.View.Processing:
		lines = append(lines, "", m.spinner.View()+" "+t("demo.readingMemory"))
	}

	if m.err != nil {
		lines = append(lines, consoleError.Render(m.err.Error()))
	}

	if m.input.Focused() {
		lines = append(lines, "", m.input.View())
	} else {
		lines = append(lines, "", consoleFaint.Render("p plan  v voice  i type  a/r accept/reject  o overview  x dismiss  l "+t("langSwitch.label")+"  q quit"))
	}

	return strings.Join(lines, "\n")
}

func lastMessages(messages []domain.Message, n int) []domain.Message {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

func newConsoleCmd(app *app) *cobra.Command {
	var opts sessionOptions

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive concierge console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(opts)
			if err != nil {
				return err
			}
			return runConsole(cmd.Context(), cmd, s)
		},
	}

	cmd.Flags().StringVar(&opts.locale, "locale", "", "Locale (zh or en); defaults to the configured locale")
	cmd.Flags().Float64Var(&opts.speed, "speed", 0, "Divide every scripted delay by this factor")

	return cmd
}

// runConsole runs the TUI and the real-time driver side by side. Quitting
// the TUI stops the driver.
func runConsole(ctx context.Context, cmd *cobra.Command, s *session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.director.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()

		p := tea.NewProgram(
			newConsoleModel(s),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
			tea.WithContext(gctx),
			tea.WithAltScreen(),
		)
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run console: %w", err)
		}
		return nil
	})

	return g.Wait()
}
