package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	commands := make([]helpItem, 0, len(m.presets))
	for _, p := range m.presets {
		commands = append(commands, helpItem{key: p.Key, desc: p.Label})
	}

	sections := []helpSection{
		{title: "Commands", items: commands},
		{title: "Log", items: bindingItems(m.keys.ScrollUp, m.keys.ScrollDown, m.keys.PageUp, m.keys.PageDown, m.keys.Bottom, m.keys.ToggleLog)},
		{title: "General", items: bindingItems(m.keys.CycleTheme, m.keys.Help, m.keys.Quit)},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(10)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("theme: " + m.theme.Name))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40).
		Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func bindingItems(bindings ...key.Binding) []helpItem {
	items := make([]helpItem, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, helpItem{key: h.Key, desc: h.Desc})
	}
	return items
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
