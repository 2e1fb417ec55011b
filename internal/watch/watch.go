// Package watch runs the status line as a live view: the same single line
// the host would show, re-rendered on a ticker so animated themes actually
// move, with desktop notifications when usage crosses the critical
// threshold.
package watch

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
	"github.com/mrukavishnikov/claude-pulse/internal/logger"
	"github.com/mrukavishnikov/claude-pulse/internal/statusline"
	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

const (
	frameInterval = 300 * time.Millisecond

	// criticalPct triggers a one-time notification per crossing.
	criticalPct = 95.0
)

type frameMsg time.Time

type configChangedMsg struct{}

type watchErrMsg struct{ err error }

// Model is the bubbletea model for the live status line.
type Model struct {
	app     *statusline.App
	spinner spinner.Model
	line    string
	ready   bool

	watcher *fsnotify.Watcher

	lastSessionPct float64
	notified       bool
}

// New builds the watch model around an invocation app.
func New(app *statusline.App) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{app: app, spinner: sp}
}

// Run starts the live view and blocks until quit.
func Run(app *statusline.App) error {
	m := New(app)
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

// Init kicks off the frame ticker, the spinner, and the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), m.spinner.Tick, m.watchConfig())
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// watchConfig subscribes to settings file changes so theme switches made in
// another terminal show up without restarting.
func (m Model) watchConfig() tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return watchErrMsg{err: err}
		}
		if err := watcher.Add(m.app.StateDir); err != nil {
			_ = watcher.Close()
			return watchErrMsg{err: err}
		}
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != filepath.Base(config.Path()) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					_ = watcher.Close()
					return configChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}
}

// Update drives one frame per tick and re-loads settings on config changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case frameMsg:
		m.renderFrame()
		return m, frameTick()

	case configChangedMsg:
		m.app.Settings = config.Load()
		store.DropCache(m.app.CachePath())
		return m, m.watchConfig()

	case watchErrMsg:
		logger.Warn("config watching disabled", "error", msg.err)
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// renderFrame runs the normal invocation pipeline into a buffer. The cache
// keeps this cheap: the API is only hit when the TTL lapses.
func (m *Model) renderFrame() {
	var buf bytes.Buffer
	m.app.Run(nil, &buf)
	m.line = strings.TrimRight(buf.String(), "\n")
	m.ready = true
	m.checkNotification()
}

// checkNotification fires a desktop notification the first time the session
// window crosses the critical threshold, and re-arms after it drops back.
func (m *Model) checkNotification() {
	ttl := time.Duration(m.app.Settings.CacheTTLSeconds) * time.Second
	cached := store.ReadCache(m.app.CachePath(), ttl, time.Now())
	if cached == nil || cached.Usage == nil {
		return
	}
	pct := cached.Usage.SessionPct()
	defer func() { m.lastSessionPct = pct }()

	if pct >= criticalPct && m.lastSessionPct < criticalPct && !m.notified {
		m.notified = true
		_ = beeep.Notify("Claude Pulse",
			"Session usage is at the limit", "")
	}
	if pct < criticalPct {
		m.notified = false
	}
}

// View shows a spinner until the first frame, then the raw status line.
func (m Model) View() string {
	if !m.ready {
		return m.spinner.View() + " fetching usage…\n"
	}
	return m.line + "\n  q to quit\n"
}
