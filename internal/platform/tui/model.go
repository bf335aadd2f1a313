package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-voyager/internal/config"
	"github.com/vovakirdan/space-voyager/internal/core"
	"github.com/vovakirdan/space-voyager/internal/session"
	"github.com/vovakirdan/space-voyager/internal/storage"
)

// Options configure a game model.
type Options struct {
	Config  config.VoyagerConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil keeps the high score in memory
	Player  string         // Recorded with each run
	Logger  *log.Logger    // nil discards
}

// Model is the Bubble Tea model hosting one voyager session.
type Model struct {
	sess       *session.Session
	pres       *presenter
	screen     *core.Screen
	view       Viewport
	keys       GameKeyMap
	help       help.Model
	scores     ScoreboardModel
	opts       Options
	lastTick   time.Time
	paused     bool
	input      core.InputFrame // Actions waiting for the next tick
	showScores bool
	quitting   bool
}

// NewModel builds the session and its presenter. The model starts in the
// Menu state.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	rt := opts.Runtime
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	opts.Runtime = rt

	pres := &presenter{
		store:  opts.Store,
		logger: opts.Logger,
		player: opts.Player,
		preset: string(opts.Config.Difficulty.Preset),
	}

	var hs session.HighScoreStore = session.NewMemoryStore(0)
	if opts.Store != nil {
		hs = opts.Store.HighScores(GameID)
	}

	view := NewViewport(rt.ScreenW, rt.ScreenH, opts.Config.Playfield.HalfHeight)
	sess, err := session.FromConfig(opts.Config, view.Playfield(), rt.Seed, pres, hs, opts.Logger)
	if err != nil {
		return Model{}, err
	}
	pres.elapsed = sess.Elapsed

	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		sess:   sess,
		pres:   pres,
		screen: core.NewScreen(rt.ScreenW, rt.ScreenH-helpRows),
		view:   view,
		keys:   DefaultGameKeyMap(),
		help:   h,
		input:  core.NewInputFrame(),
		scores: NewScoreboardModel(opts.Store, rt.ScreenW, rt.ScreenH, false),
		opts:   opts,
	}, nil
}

// Session exposes the hosted session.
func (m Model) Session() *session.Session {
	return m.sess
}

// Paused reports whether ticks are withheld from the session.
func (m Model) Paused() bool {
	return m.paused
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScores(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input on the game screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Scores):
		if !m.sess.Active() {
			m.scores.goingBack = false
			m.scores.Reload()
			m.showScores = true
		}
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionActivate:
		if m.sess.Active() {
			if !m.paused {
				m.input.Set(core.ActionActivate)
			}
			return m, nil
		}
		m.startRun()

	case core.ActionPause, core.ActionBack:
		if m.sess.Active() {
			m.paused = !m.paused
		}
	}

	return m, nil
}

// startRun seeds the obstacle RNG and starts a new run. A fixed seed
// replays the same voyage every time.
func (m *Model) startRun() {
	seed := m.opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.sess.Reseed(seed)
	m.pres.seed = seed

	if err := m.sess.StartGame(); err != nil {
		m.opts.Logger.Error("could not start run", "error", err)
		return
	}
	m.paused = false
	m.input.Clear()
}

// updateScores forwards keys to the embedded scoreboard.
func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.showScores = false
	}
	return m, cmd
}

// handleResize fits the playfield to the new window.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.view = NewViewport(msg.Width, msg.Height, m.opts.Config.Playfield.HalfHeight)
	m.sess.SetPlayfield(m.view.Playfield())
	m.help.Width = msg.Width

	next, _ := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}
	return m, nil
}

// handleTick converts the frame interval into a session tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	if !m.paused {
		m.sess.Tick(dt, m.input.Has(core.ActionActivate))
	}
	m.input.Clear()

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.sess.Snapshot(), m.view, m.paused)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".voyager", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot failed", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", GameID, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scores.View()
	}

	DrawFrame(m.screen, m.sess.Snapshot(), m.view, m.paused)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
