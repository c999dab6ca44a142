package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/coolctl/internal/auth"
	"github.com/five82/coolctl/internal/config"
	"github.com/five82/coolctl/internal/prefs"
	"github.com/five82/coolctl/internal/remote"
	"github.com/five82/coolctl/internal/state"
)

type fakeCommander struct {
	mu    sync.Mutex
	sent  []remote.Intervals
	reply error
}

func (f *fakeCommander) SendCommand(_ context.Context, intervals remote.Intervals) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, intervals)
	if f.reply != nil {
		return nil, f.reply
	}
	return json.RawMessage(`{"status":"ok"}`), nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func TestView_StatusBadgeFollowsSnapshot(t *testing.T) {
	m := sized(t, New(Options{}))

	if got := m.View(); !strings.Contains(got, "CHECKING") {
		t.Fatalf("initial view missing CHECKING:\n%s", got)
	}

	next, _ := m.Update(snapshotMsg{Status: state.Reported{Online: true}, UpdatedAt: time.Now()})
	m = next.(Model)
	if got := m.View(); !strings.Contains(got, "ONLINE") {
		t.Fatalf("view missing ONLINE:\n%s", got)
	}

	next, _ = m.Update(snapshotMsg{Status: state.Failed{Err: &remote.AuthRejectedError{Path: "/status"}}, ConsecutiveFailures: 3})
	m = next.(Model)
	got := m.View()
	if !strings.Contains(got, "OFFLINE") || !strings.Contains(got, "rejected") {
		t.Fatalf("failed view = %q, want OFFLINE with rejection reason", got)
	}
}

func TestView_NotReadyBeforeWindowSize(t *testing.T) {
	if got := New(Options{}).View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
}

func TestPresetKey_SendsScheduleOnce(t *testing.T) {
	cmdr := &fakeCommander{}
	m := sized(t, New(Options{Commander: cmdr}))

	next, cmd := m.Update(runes("c"))
	m = next.(Model)
	if cmd == nil || m.pending != "Cool 22°C" {
		t.Fatalf("pending = %q, cmd nil = %v; want Cool 22°C in flight", m.pending, cmd == nil)
	}

	// A second key while in flight is ignored.
	if _, again := m.Update(runes("o")); again != nil {
		t.Fatalf("second preset while pending returned a command")
	}

	msg := cmd()
	result, ok := msg.(commandResultMsg)
	if !ok || result.err != nil {
		t.Fatalf("cmd() = %#v, want successful commandResultMsg", msg)
	}
	if len(cmdr.sent) != 1 || cmdr.sent[0]["mode"] != "cooling" || cmdr.sent[0]["setpoint"] != 22 {
		t.Fatalf("sent = %#v, want one cooling 22 schedule", cmdr.sent)
	}

	next, _ = m.Update(result)
	m = next.(Model)
	if m.pending != "" {
		t.Fatalf("pending = %q after result, want idle", m.pending)
	}
	if got := m.View(); !strings.Contains(got, "sent") {
		t.Fatalf("view missing success line:\n%s", got)
	}
}

func TestPresetKey_ReportsFailureLabel(t *testing.T) {
	cmdr := &fakeCommander{reply: &remote.HTTPError{StatusCode: 500, Path: "/command", Body: "device offline"}}
	m := sized(t, New(Options{Commander: cmdr}))

	next, cmd := m.Update(runes("o"))
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)

	got := m.View()
	if !strings.Contains(got, "failed") || !strings.Contains(got, "HTTP 500") {
		t.Fatalf("view = %q, want failure with HTTP 500", got)
	}
	if len(cmdr.sent) != 1 || len(cmdr.sent[0]) != 0 {
		t.Fatalf("sent = %#v, want one empty schedule", cmdr.sent)
	}
}

func TestPresetKey_UsesConfiguredPresets(t *testing.T) {
	cmdr := &fakeCommander{}
	presets := []config.Preset{{Key: "h", Label: "Heat", Intervals: remote.Intervals{"mode": "heating"}}}
	m := sized(t, New(Options{Commander: cmdr, Presets: presets}))

	if _, cmd := m.Update(runes("c")); cmd != nil {
		t.Fatalf("default preset key should not be bound when presets are configured")
	}
	_, cmd := m.Update(runes("h"))
	if cmd == nil {
		t.Fatalf("configured preset h returned no command")
	}
	cmd()
	if len(cmdr.sent) != 1 || cmdr.sent[0]["mode"] != "heating" {
		t.Fatalf("sent = %#v, want heating schedule", cmdr.sent)
	}
}

func TestQuitKey(t *testing.T) {
	m := sized(t, New(Options{}))
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q command did not quit")
	}
}

func TestHelpToggle(t *testing.T) {
	m := sized(t, New(Options{}))
	next, _ := m.Update(runes("?"))
	m = next.(Model)
	if got := m.View(); !strings.Contains(got, "Keyboard Shortcuts") {
		t.Fatalf("help view missing title:\n%s", got)
	}
	next, _ = m.Update(runes("x"))
	m = next.(Model)
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
}

func TestThemeCycle_PersistsPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := sized(t, New(Options{PrefsPath: path, ThemeName: "Nightfox"}))

	next, _ := m.Update(runes("T"))
	m = next.(Model)
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(path); got.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got.Theme)
	}

	next, _ = m.Update(runes("L"))
	m = next.(Model)
	if got := prefs.Load(path); !got.HideLog || !m.hideLog {
		t.Fatalf("HideLog saved = %v, model = %v; want true", got.HideLog, m.hideLog)
	}
}

func TestPresetKeys_AvoidGlobalBindings(t *testing.T) {
	km := defaultKeyMap()
	for _, k := range config.ReservedKeys {
		msg := runes(k)
		bound := false
		for _, b := range []interface{ Keys() []string }{km.Quit, km.Help, km.CycleTheme, km.ToggleLog, km.ScrollUp, km.ScrollDown, km.Bottom} {
			for _, bk := range b.Keys() {
				if bk == msg.String() {
					bound = true
				}
			}
		}
		if !bound {
			t.Fatalf("reserved key %q is not bound to anything", k)
		}
	}
}

func TestFormatLogLine(t *testing.T) {
	m := sized(t, New(Options{}))
	got := m.formatLogLine("2026-10-17T09:30:01+02:00\tWARN\tstatus request failed\t{\"error\": \"boom\"}")
	if !strings.Contains(got, "09:30:01 WARN  status request failed") {
		t.Fatalf("formatLogLine = %q", got)
	}
	if got := m.formatLogLine("plain text"); !strings.Contains(got, "plain text") {
		t.Fatalf("formatLogLine plain = %q", got)
	}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"missing", &auth.MissingCredentialError{Prompted: true}, "credential missing"},
		{"wrapped", fmt.Errorf("poll: %w", &remote.AuthRejectedError{Path: "/status"}), "credential rejected"},
		{"other", errors.New("boom"), "boom"},
		{"rejected", &remote.AuthRejectedError{Path: "/status"}, "credential rejected"},
		{"http", &remote.HTTPError{StatusCode: 503, Path: "/status"}, "HTTP 503"},
		{"network", &remote.NetworkError{Path: "/status", Err: errors.New("connection refused")}, "unreachable"},
		{"timeout", &remote.NetworkError{Path: "/status", Err: context.DeadlineExceeded}, "unreachable (timeout)"},
		{"decode", &remote.DecodeError{Path: "/status", Err: errors.New("bad")}, "bad response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeError(tt.err); got != tt.want {
				t.Fatalf("DescribeError = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThemeLookups(t *testing.T) {
	if got := GetTheme("missing").Name; got != "Nightfox" {
		t.Fatalf("GetTheme fallback = %q, want Nightfox", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := len(ThemeNames()); got != 3 {
		t.Fatalf("ThemeNames = %d, want 3", got)
	}
	th := GetTheme("Slate")
	if label, color := th.StatusBadge(state.Reported{Online: false}); label != "OFFLINE" || color != th.Danger {
		t.Fatalf("StatusBadge offline = %q %q", label, color)
	}
	if label, _ := th.StatusBadge(state.Checking{}); label != "CHECKING" {
		t.Fatalf("StatusBadge checking = %q", label)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	if got := truncateMiddle("abcdefghij", 7); got != "abc…hij" {
		t.Fatalf("truncateMiddle = %q, want abc…hij", got)
	}
}
