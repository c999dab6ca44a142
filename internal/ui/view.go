package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/coolctl/internal/logtail"
	"github.com/five82/coolctl/internal/state"
)

// chromeLines is the header, preset bar, command line and log title.
const chromeLines = 4

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPresetBar())
	b.WriteString("\n")
	b.WriteString(m.renderCommandLine())
	if m.logPaneHeight() > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogTitle())
		b.WriteString("\n")
		b.WriteString(m.logViewport.View())
	}
	return b.String()
}

// renderHeader shows the logo, the connectivity badge and when it was last
// updated.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	label, color := m.theme.StatusBadge(m.snapshot.Status)
	parts := []string{
		bg.Render("coolctl", styles.Logo),
		m.theme.Styles().Badge(label, color),
	}

	if failed, ok := m.snapshot.Status.(state.Failed); ok {
		parts = append(parts, bg.Render(DescribeError(failed.Err), styles.DangerText))
		if n := m.snapshot.ConsecutiveFailures; n > 1 {
			parts = append(parts, bg.Render(fmt.Sprintf("×%d", n), styles.MutedText))
		}
	}
	if !m.snapshot.UpdatedAt.IsZero() {
		parts = append(parts, bg.Render("updated "+m.snapshot.UpdatedAt.Format("15:04:05"), styles.MutedText))
	}
	if m.apiURL != "" && m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render(truncateMiddle(m.apiURL, 40), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, 2))
}

// renderPresetBar lists the command keys, k9s style.
func (m Model) renderPresetBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := make([]string, 0, len(m.presets)+2)
	for _, p := range m.presets {
		parts = append(parts, bg.Render("<"+p.Key+">", styles.AccentText)+bg.Spaces(1)+bg.Render(p.Label, styles.Text))
	}
	parts = append(parts,
		bg.Render("<?>", styles.AccentText)+bg.Spaces(1)+bg.Render("Help", styles.MutedText),
		bg.Render("<q>", styles.AccentText)+bg.Spaces(1)+bg.Render("Quit", styles.MutedText),
	)
	return styles.Footer.Width(m.width).Render(bg.Join(parts, 3))
}

// renderCommandLine reports the in-flight command or the last result.
func (m Model) renderCommandLine() string {
	styles := m.theme.Styles()
	line := styles.FaintText.Render("Press a command key to send a schedule.")
	switch {
	case m.pending != "":
		line = styles.WarningText.Render("Sending " + m.pending + "…")
	case m.lastResult != nil && m.lastResult.err != nil:
		line = styles.DangerText.Render(fmt.Sprintf("✗ %s failed: %s", m.lastResult.label, DescribeError(m.lastResult.err))) +
			" " + styles.MutedText.Render(m.lastResult.at.Format("15:04:05"))
	case m.lastResult != nil:
		line = styles.SuccessText.Render(fmt.Sprintf("✓ %s sent", m.lastResult.label)) +
			" " + styles.MutedText.Render(m.lastResult.at.Format("15:04:05"))
	}
	return lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(line)
}

func (m Model) renderLogTitle() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Log")
	hint := styles.FaintText.Render(truncateMiddle(m.logPath, 60))
	if m.logErr != nil {
		hint = styles.DangerText.Render(m.logErr.Error())
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Width(m.width).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Render(title + "  " + hint)
}

func (m Model) logPaneHeight() int {
	if m.hideLog || m.logPath == "" {
		return 0
	}
	// The log title's top border takes a line of its own.
	h := m.height - chromeLines - 1
	if h < MinLogPaneHeight {
		return 0
	}
	return h
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = m.width
	m.logViewport.Height = m.logPaneHeight()
	m.updateLogViewport()
}

// updateLogViewport re-renders the tail, staying pinned to the bottom unless
// the operator has scrolled up.
func (m *Model) updateLogViewport() {
	follow := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	lines := make([]string, 0, len(m.logLines))
	for _, line := range m.logLines {
		lines = append(lines, m.formatLogLine(line))
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) formatLogLine(line string) string {
	entry := logtail.Parse(line)
	width := m.width - 2
	if entry.Level == "" {
		return " " + m.theme.Styles().MutedText.Render(truncateRight(entry.Message, width))
	}

	ts := entry.Time
	if len(ts) >= 19 {
		// 2006-01-02T15:04:05Z07:00 → 15:04:05
		ts = ts[11:19]
	}
	text := fmt.Sprintf("%s %-5s %s", ts, entry.Level, entry.Message)
	if entry.Fields != "" {
		text += " " + entry.Fields
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.LevelColor(entry.Level)))
	return " " + style.Render(truncateRight(text, width))
}
