package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/coolctl/internal/config"
	"github.com/five82/coolctl/internal/logging"
	"github.com/five82/coolctl/internal/logtail"
	"github.com/five82/coolctl/internal/prefs"
	"github.com/five82/coolctl/internal/remote"
	"github.com/five82/coolctl/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Commander remote.Commander
	Presets   []config.Preset
	Prompter  *Prompter
	Log       *logging.Logger

	APIURL    string
	LogPath   string
	ThemeName string
	HideLog   bool
	PrefsPath string

	RefreshTick time.Duration
}

// commandResult is the outcome of the last preset sent.
type commandResult struct {
	label string
	err   error
	at    time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	commander remote.Commander
	presets   []config.Preset
	log       *logging.Logger
	keys      keyMap

	apiURL    string
	logPath   string
	prefsPath string
	refresh   time.Duration

	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	hideLog  bool

	snapshot state.Snapshot

	// pending is the label of the command in flight; empty when idle.
	pending    string
	lastResult *commandResult

	logViewport viewport.Model
	logLines    []string
	logErr      error

	prompt *credentialModal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refresh := opts.RefreshTick
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	presets := opts.Presets
	if presets == nil {
		presets = config.DefaultPresets()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		commander: opts.Commander,
		presets:   presets,
		log:       log,
		keys:      defaultKeyMap(),
		apiURL:    opts.APIURL,
		logPath:   opts.LogPath,
		prefsPath: opts.PrefsPath,
		refresh:   refresh,
		theme:     GetTheme(themeName),
		hideLog:   opts.HideLog,
		snapshot:  state.Snapshot{Status: state.Checking{}},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refresh)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if cmd := m.readLogCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(msg.Width, m.logPaneHeight())
		}
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case logLinesMsg:
		m.logErr = msg.err
		if msg.err == nil {
			m.logLines = msg.lines
			m.updateLogViewport()
		}
		return m, nil

	case commandResultMsg:
		m.pending = ""
		m.lastResult = &commandResult{label: msg.label, err: msg.err, at: msg.at}
		return m, nil

	case promptRequestMsg:
		if m.prompt != nil {
			// Only one prompt can be open; a second request is declined.
			msg.reply <- ""
			return m, nil
		}
		m.prompt = newCredentialModal(msg.reply)
		m.showHelp = false
		return m, textinput.Blink
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.prompt != nil {
		return m.renderPrompt()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLog):
		m.hideLog = !m.hideLog
		m.savePrefs()
		m.resizeLogViewport()
		if !m.hideLog {
			return m, m.readLogCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.logViewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.logViewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.ViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.ViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}
	preset, ok := m.presetFor(string(msg.Runes))
	if !ok {
		return m, nil
	}
	return m.startCommand(preset)
}

func (m Model) presetFor(k string) (config.Preset, bool) {
	for _, p := range m.presets {
		if p.Key == k {
			return p, true
		}
	}
	return config.Preset{}, false
}

// startCommand dispatches preset unless another command is still in flight.
func (m Model) startCommand(preset config.Preset) (tea.Model, tea.Cmd) {
	if m.commander == nil {
		return m, nil
	}
	if m.pending != "" {
		m.log.Debugw("command ignored while another is in flight", "preset", preset.Label, "pending", m.pending)
		return m, nil
	}
	m.pending = preset.Label
	m.log.Infow("sending command", "preset", preset.Label)
	return m, sendCommandCmd(m.ctx, m.commander, m.log, preset)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.refresh)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if cmd := m.readLogCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, HideLog: m.hideLog}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warnw("save preferences failed", "err", err)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logLinesMsg struct {
	lines []string
	err   error
}

type commandResultMsg struct {
	label string
	err   error
	at    time.Time
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) readLogCmd() tea.Cmd {
	if m.hideLog || m.logPath == "" {
		return nil
	}
	path := m.logPath
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func sendCommandCmd(ctx context.Context, commander remote.Commander, log *logging.Logger, preset config.Preset) tea.Cmd {
	intervals := preset.Intervals.Clone()
	return func() tea.Msg {
		_, err := commander.SendCommand(ctx, intervals)
		if err != nil {
			log.Warnw("command failed", "preset", preset.Label, "err", err)
		} else {
			log.Infow("command accepted", "preset", preset.Label)
		}
		return commandResultMsg{label: preset.Label, err: err, at: time.Now()}
	}
}

// Run starts the Bubble Tea program and binds the prompter to it. It returns
// when the operator quits or ctx is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Prompter != nil {
		opts.Prompter.bind(p.Send)
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
