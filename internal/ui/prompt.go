package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompter asks for the credential through a modal in the running program.
// It implements auth.Prompter. Calls made before Run has started block until
// the program is up or ctx ends.
type Prompter struct {
	ready chan struct{}
	once  sync.Once
	send  func(tea.Msg)
}

// NewPrompter returns a Prompter that is not yet attached to a program.
func NewPrompter() *Prompter {
	return &Prompter{ready: make(chan struct{})}
}

func (p *Prompter) bind(send func(tea.Msg)) {
	p.once.Do(func() {
		p.send = send
		close(p.ready)
	})
}

// PromptCredential shows the modal and waits for the operator. Cancelling the
// modal returns an empty string.
func (p *Prompter) PromptCredential(ctx context.Context) (string, error) {
	select {
	case <-p.ready:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	reply := make(chan string, 1)
	p.send(promptRequestMsg{reply: reply})

	select {
	case answer := <-reply:
		return answer, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type promptRequestMsg struct {
	reply chan<- string
}

// credentialModal is the open prompt. reply is buffered so answering never
// blocks the update loop.
type credentialModal struct {
	input textinput.Model
	reply chan<- string
}

func newCredentialModal(reply chan<- string) *credentialModal {
	ti := textinput.New()
	ti.Placeholder = "password"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Width = 32
	ti.Focus()
	return &credentialModal{input: ti, reply: reply}
}

func (c *credentialModal) answer(value string) {
	c.reply <- strings.TrimSpace(value)
}

// handlePromptKey routes keys to the open modal.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.prompt.answer("")
		m.prompt = nil
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm):
		m.prompt.answer(m.prompt.input.Value())
		m.prompt = nil
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.prompt.answer("")
		m.prompt = nil
		m.log.Infow("credential prompt dismissed")
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m Model) renderPrompt() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Device credential"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 36)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Password for the admin user."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("You will only be asked once."))
	b.WriteString("\n\n")
	b.WriteString(m.prompt.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter submit · esc cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44).
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
