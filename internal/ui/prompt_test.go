package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	value string
	err   error
}

// startPrompt binds p to a channel and calls PromptCredential in the
// background, returning the request message the program would receive.
func startPrompt(t *testing.T, p *Prompter) (promptRequestMsg, <-chan promptResult) {
	t.Helper()
	msgs := make(chan tea.Msg, 1)
	p.bind(func(msg tea.Msg) { msgs <- msg })

	done := make(chan promptResult, 1)
	go func() {
		v, err := p.PromptCredential(context.Background())
		done <- promptResult{v, err}
	}()

	select {
	case msg := <-msgs:
		req, ok := msg.(promptRequestMsg)
		if !ok {
			t.Fatalf("sent %T, want promptRequestMsg", msg)
		}
		return req, done
	case <-time.After(2 * time.Second):
		t.Fatalf("prompter never sent a request")
	}
	return promptRequestMsg{}, nil
}

func waitResult(t *testing.T, done <-chan promptResult) promptResult {
	t.Helper()
	select {
	case r := <-done:
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("PromptCredential did not return")
	}
	return promptResult{}
}

func TestPrompter_ModalRoundTrip(t *testing.T) {
	p := NewPrompter()
	req, done := startPrompt(t, p)

	m := sized(t, New(Options{}))
	next, _ := m.Update(req)
	m = next.(Model)
	if got := m.View(); !strings.Contains(got, "Device credential") {
		t.Fatalf("prompt view missing title:\n%s", got)
	}
	if strings.Contains(m.View(), "tok") {
		t.Fatalf("prompt view echoes input")
	}

	next, _ = m.Update(runes("tok"))
	m = next.(Model)
	if strings.Contains(m.View(), "tok") {
		t.Fatalf("prompt view echoes the typed credential")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if r := waitResult(t, done); r.err != nil || r.value != "tok" {
		t.Fatalf("PromptCredential = (%q, %v), want tok", r.value, r.err)
	}
	if m.prompt != nil {
		t.Fatalf("modal still open after enter")
	}
}

func TestPrompter_EscapeDeclines(t *testing.T) {
	p := NewPrompter()
	req, done := startPrompt(t, p)

	m := sized(t, New(Options{}))
	next, _ := m.Update(req)
	m = next.(Model)
	next, _ = m.Update(runes("c"))
	m = next.(Model)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if r := waitResult(t, done); r.err != nil || r.value != "" {
		t.Fatalf("PromptCredential = (%q, %v), want empty answer", r.value, r.err)
	}
}

func TestPrompter_PresetKeysGoToModal(t *testing.T) {
	cmdr := &fakeCommander{}
	p := NewPrompter()
	req, done := startPrompt(t, p)

	m := sized(t, New(Options{Commander: cmdr}))
	next, _ := m.Update(req)
	m = next.(Model)
	next, _ = m.Update(runes("c"))
	m = next.(Model)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if r := waitResult(t, done); r.value != "c" {
		t.Fatalf("PromptCredential = %q, want the typed c", r.value)
	}
	if len(cmdr.sent) != 0 {
		t.Fatalf("typing into the modal sent %d commands", len(cmdr.sent))
	}
}

func TestPrompter_CtrlCAnswersAndQuits(t *testing.T) {
	p := NewPrompter()
	req, done := startPrompt(t, p)

	m := sized(t, New(Options{}))
	next, _ := m.Update(req)
	m = next.(Model)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit")
	}
	if r := waitResult(t, done); r.value != "" {
		t.Fatalf("PromptCredential = %q, want empty", r.value)
	}
}

func TestPrompter_SecondRequestDeclined(t *testing.T) {
	m := sized(t, New(Options{}))
	first := make(chan string, 1)
	second := make(chan string, 1)

	next, _ := m.Update(promptRequestMsg{reply: first})
	m = next.(Model)
	m.Update(promptRequestMsg{reply: second})

	select {
	case v := <-second:
		if v != "" {
			t.Fatalf("second reply = %q, want empty", v)
		}
	default:
		t.Fatalf("second request was not answered")
	}
	if len(first) != 0 {
		t.Fatalf("first request answered early")
	}
}

func TestPrompter_UnboundHonorsContext(t *testing.T) {
	p := NewPrompter()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := p.PromptCredential(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("PromptCredential err = %v, want deadline exceeded", err)
	}
}
