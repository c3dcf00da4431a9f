package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/propdrill/internal/model"
	"github.com/verte-zerg/propdrill/internal/session"
	"github.com/verte-zerg/propdrill/internal/stats"
)

const (
	title          = "Exercises on Invariant Property"
	minFractionBar = 3
	histogramBar   = 24
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#66CC00")).Bold(true)
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E65942")).Bold(true)
	enteredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#99CCFF"))
	lineStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	inputStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.snap.Phase {
	case session.PhaseStart:
		content = titleStyle.Render(title)
	case session.PhaseExercising:
		content = m.renderProblem()
	case session.PhaseResult:
		content = lipgloss.JoinVertical(lipgloss.Center,
			m.renderProblem(),
			"",
			enteredStyle.Render(fmt.Sprintf("Inserted: %d", m.snap.Entered)),
		)
	case session.PhaseFinalEvaluation:
		content = renderFinal(stats.Summarize(m.snap.TotalAnswered, m.snap.TotalErrors, m.snap.Histogram))
	}
	content = lipgloss.JoinVertical(lipgloss.Center, content, "", m.help.View(m.keys))

	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderProblem() string {
	p := m.snap.Problem
	left := renderFraction(m.cell(model.SlotNumA, p.NumA), m.cell(model.SlotDenA, p.DenA))
	right := renderFraction(m.cell(model.SlotNumB, p.NumB), m.cell(model.SlotDenB, p.DenB))
	equals := valueStyle.Render("   =   ")
	return lipgloss.JoinHorizontal(lipgloss.Center, left, equals, right)
}

// cell renders one fraction value. The hidden slot shows the input while
// exercising and the colored answer on the result screen.
func (m *Model) cell(slot model.Slot, value int) string {
	text := strconv.Itoa(value)
	if slot != m.snap.Problem.Hidden {
		return valueStyle.Render(text)
	}
	switch m.snap.Phase {
	case session.PhaseExercising:
		return inputStyle.Render(m.input.View())
	case session.PhaseResult:
		if m.snap.LastAnswerWrong {
			return incorrectStyle.Render(text)
		}
		return correctStyle.Render(text)
	default:
		return valueStyle.Render(text)
	}
}

func renderFraction(num, den string) string {
	width := lipgloss.Width(num)
	if w := lipgloss.Width(den); w > width {
		width = w
	}
	if width < minFractionBar {
		width = minFractionBar
	}
	bar := lineStyle.Render(strings.Repeat("─", width+2))
	return lipgloss.JoinVertical(lipgloss.Center, num, bar, den)
}

func renderFinal(s stats.Summary) string {
	labels := labelStyle.Render("Correct:\nErrors:\nAccuracy:")
	values := valueStyle.Render(fmt.Sprintf("%d\n%d\n%s", s.Correct, s.Errors, s.FormatAccuracy()))
	block := lipgloss.JoinHorizontal(lipgloss.Top, labels, "  ", lipgloss.NewStyle().Align(lipgloss.Right).Render(values))

	parts := []string{titleStyle.Render("Final evaluation"), "", block}
	if hint := s.FocusHint(); hint != "" {
		parts = append(parts, "", hintStyle.Render(hint))
	}
	if bars := renderHistogram(s); bars != "" {
		parts = append(parts, "", bars)
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func renderHistogram(s stats.Summary) string {
	if s.Histogram.Total() == 0 {
		return ""
	}
	lines := make([]string, 0, model.MaxFactor)
	for f := model.MinFactor; f <= model.MaxFactor; f++ {
		c := s.Histogram.Count(f)
		if c == 0 {
			continue
		}
		bar := stats.Bar(c, s.DominantCount, histogramBar)
		style := lineStyle
		if f == s.DominantFactor && s.HasRepeatedError {
			style = hintStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			labelStyle.Render(fmt.Sprintf("%2d×", f)),
			style.Render(runewidth.FillRight(bar, histogramBar)),
			labelStyle.Render(strconv.Itoa(c)),
		))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	phase := m.snap.Phase
	if phase != session.PhaseExercising && phase != session.PhaseResult {
		return ""
	}
	current := m.snap.TotalAnswered
	if phase == session.PhaseExercising {
		current++
	}
	segments := []string{
		fmt.Sprintf("Exercise %d/%d", current, m.rounds),
		fmt.Sprintf("Errors %d", m.snap.TotalErrors),
	}
	if acc, ok := stats.Accuracy(m.snap.TotalAnswered-m.snap.TotalErrors, m.snap.TotalAnswered); ok {
		segments = append(segments, fmt.Sprintf("Accuracy %.1f%%", acc))
	}
	footer := strings.Join(segments, "  ·  ")
	if m.width > 0 {
		footer = runewidth.Truncate(footer, m.width, "…")
	}
	return footerStyle.Render(footer)
}
