package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/concierge/internal/application"
	"github.com/bnema/concierge/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 24

type RenderOptions struct {
	Now time.Time
	// T resolves a catalog key. Keys are printed as-is when nil.
	T func(key string) string
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.T == nil {
		o.T = func(key string) string { return key }
	}
	return o
}

func renderView(overview application.Overview, session domain.Session, opts RenderOptions, s styles) string {
	t := opts.T
	lines := []string{
		s.title.Render(t("status.title")),
		s.header.Render(t("status.subtitle")),
		s.detail.Render(fmt.Sprintf("%s: %s  %s: %s",
			t("status.destination"), overview.Destination,
			t("status.duration"), overview.Duration,
		)),
	}

	if session.View.ShowAlert {
		lines = append(lines, s.alert.Render(fmt.Sprintf("! %s: %s", t("alert.title"), t("alert.flightChange"))))
	}

	lines = append(lines,
		s.section.Render(progressLine(overview, t, s)),
		countsLine(overview.Counts, t, s),
	)

	for _, agent := range overview.Agents {
		lines = append(lines, s.section.Render(renderAgent(agent, t, s)))
	}

	lines = append(lines, s.section.Render(memoryLine(overview, t, s)))

	if !opts.Now.IsZero() {
		lines = append(lines, s.meta.Render(fmt.Sprintf("%s %s", t("status.generatedAt"), opts.Now.Format("15:04:05"))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func progressLine(overview application.Overview, t func(string) string, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(t("status.overallProgress")+":"),
		" ",
		renderProgressBar(overview.ProgressPercent, progressWidth, s),
		" ",
		s.detail.Render(fmt.Sprintf("%3d%%", overview.ProgressPercent)),
		" ",
		s.meta.Render(fmt.Sprintf("(%d/%d %s)", overview.CompletedTasks, overview.TotalTasks, t("status.tasksCompleted"))),
	)
}

func countsLine(counts domain.StatusCounts, t func(string) string, s styles) string {
	return strings.Join([]string{
		s.done.Render(fmt.Sprintf("%s %d", t("status.completed"), counts.Done)),
		s.working.Render(fmt.Sprintf("%s %d", t("status.working"), counts.Working)),
		s.idle.Render(fmt.Sprintf("%s %d", t("status.idle"), counts.Idle)),
	}, "  ")
}

func renderAgent(agent application.AgentOverview, t func(string) string, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.agent.Render(agent.Name),
			" ",
			statusBadge(agent.Status, t, s),
		),
		s.meta.Render("  " + agent.Log),
	}

	if len(agent.Tasks) == 0 {
		parts = append(parts, s.empty.Render("  "+t("status.noTasks")))
	}
	for _, item := range agent.Tasks {
		parts = append(parts, s.detail.Render("  "+taskLine(item)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func statusBadge(status domain.AgentStatus, t func(string) string, s styles) string {
	switch status {
	case domain.AgentWorking:
		return s.working.Render("[" + t("status.working") + "]")
	case domain.AgentDone:
		return s.done.Render("[" + t("status.completed") + "]")
	default:
		return s.idle.Render("[" + t("status.idle") + "]")
	}
}

func taskLine(item domain.TaskItem) string {
	mark := "[ ]"
	switch {
	case item.Kind == domain.TaskAlert:
		mark = "[!]"
	case item.Checked:
		mark = "[x]"
	}
	return mark + " " + item.Label
}

func memoryLine(overview application.Overview, t func(string) string, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(t("status.memoryBank")+":"),
		" ",
		s.detail.Render(fmt.Sprintf("%d %s", overview.MemoriesActive, t("status.memoriesActive"))),
		s.meta.Render(", "),
		s.detail.Render(fmt.Sprintf("%d %s", overview.PendingReview, t("status.pendingReview"))),
	)
}

func renderProgressBar(percent int, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(clampPercent(percent)) / 100))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RenderTranscript formats messages as one role-tagged line each.
func RenderTranscript(messages []domain.Message) string {
	s := newStyles()
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, roleStyle(msg.Role, s).Render(roleTag(msg.Role))+" "+msg.Text)
	}
	return strings.Join(lines, "\n")
}

func roleTag(role domain.Role) string {
	switch role {
	case domain.RoleUser:
		return "you>"
	case domain.RoleSystem:
		return "sys>"
	default:
		return "concierge>"
	}
}

func roleStyle(role domain.Role, s styles) lipgloss.Style {
	switch role {
	case domain.RoleUser:
		return s.roleUser
	case domain.RoleSystem:
		return s.roleSystem
	default:
		return s.roleAI
	}
}
