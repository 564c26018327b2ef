// ============================================================================
// vmel - Script Engine
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model of the interactive vmel mode
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/vmel/foundation/vmel"
	"github.com/msto63/vmel/internal/tui/theme"
	"github.com/msto63/vmel/pkg/core/version"
)

// Config holds REPL configuration
type Config struct {
	Prompt      string
	HistorySize int
	HistoryFile string // empty keeps history in memory only
	ShowTimings bool
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Prompt:      "vmel> ",
		HistorySize: 100,
	}
}

// Model is the Bubbletea model of the REPL. Each submitted line runs
// synchronously against the session; vmel has no loops, so a line always
// finishes.
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	quitting bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Session state
	session    *vmel.Session
	transcript []string
	lastRun    time.Duration

	// Input history
	history      []string
	historyIndex int // -1 while editing a new line
	currentInput string

	config Config
}

// New creates a REPL model on top of session
func New(session *vmel.Session, cfg Config) Model {
	defaults := DefaultConfig()
	if cfg.Prompt == "" {
		cfg.Prompt = defaults.Prompt
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaults.HistorySize
	}

	ti := textinput.New()
	ti.Prompt = theme.PromptStyle.Render(cfg.Prompt)
	ti.Placeholder = "vmel statement or :help"
	ti.CharLimit = session.Engine().Options().MaxSourceLength
	ti.Focus()

	m := Model{
		input:        ti,
		session:      session,
		history:      LoadHistory(cfg.HistoryFile, cfg.HistorySize),
		historyIndex: -1,
		config:       cfg,
	}
	m.appendLines(theme.TitleStyle.Render("vmel "+version.Version),
		theme.MutedStyle.Render("Type :help for commands, :quit to leave."))
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		footerHeight := 3 // input, status bar, help
		viewportHeight := msg.Height - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 1
		m.syncViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return m.quit()

	case tea.KeyCtrlL:
		m.transcript = nil
		m.syncViewport()
		return m, nil

	case tea.KeyEnter:
		line := m.input.Value()
		m.input.Reset()
		m.historyIndex = -1
		m.currentInput = ""
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		m.remember(line)
		return m.submit(line)

	case tea.KeyUp:
		if len(m.history) > 0 {
			if m.historyIndex == -1 {
				m.currentInput = m.input.Value()
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.history[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.input.SetValue(m.history[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue(m.currentInput)
			}
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.HalfViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs a meta-command or a line of source
func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	m.appendLines(theme.EchoStyle.Render(m.config.Prompt + line))

	if cmd := strings.TrimSpace(line); strings.HasPrefix(cmd, ":") {
		return m.meta(cmd)
	}

	result, err := m.session.Exec(context.Background(), line)
	if err != nil {
		m.appendLines(theme.ErrorStyle.Render("error: " + err.Error()))
		return m, nil
	}

	if text := result.Text(); text != "" {
		for _, l := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
			m.appendLines(theme.OutputStyle.Render(l))
		}
	}
	engine := m.session.Engine()
	for i, msg := range engine.Messages(result) {
		m.appendLines(theme.RenderDiagnostic(result.Diagnostics[i], msg))
	}
	if result.Dropped > 0 {
		m.appendLines(theme.MutedStyle.Render(fmt.Sprintf("%d more diagnostics dropped, error list is full (:reset clears it)", result.Dropped)))
	}

	m.lastRun = result.Duration
	if m.config.ShowTimings {
		m.appendLines(theme.MutedStyle.Render(fmt.Sprintf("(%s)", result.Duration.Round(time.Microsecond))))
	}
	return m, nil
}

func (m Model) meta(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case ":quit", ":q", ":exit":
		return m.quit()

	case ":symbols":
		symbols := m.session.Symbols()
		if len(symbols) == 0 {
			m.appendLines(theme.MutedStyle.Render("no symbols"))
		}
		for _, sym := range symbols {
			m.appendLines(theme.RenderSymbol(sym))
		}

	case ":errors":
		diagnostics := m.session.Diagnostics()
		if len(diagnostics) == 0 {
			m.appendLines(theme.MutedStyle.Render("no diagnostics"))
		}
		engine := m.session.Engine()
		for _, d := range diagnostics {
			m.appendLines(theme.RenderDiagnostic(d, engine.Render(d)))
		}
		if dropped := m.session.Dropped(); dropped > 0 {
			m.appendLines(theme.MutedStyle.Render(fmt.Sprintf("%d dropped", dropped)))
		}

	case ":reset":
		m.session.Reset()
		m.appendLines(theme.MutedStyle.Render("session reset"))

	case ":help":
		m.appendLines(helpLines()...)

	default:
		m.appendLines(theme.ErrorStyle.Render("unknown command " + cmd + ", try :help"))
	}
	return m, nil
}

func helpLines() []string {
	commands := []struct{ name, desc string }{
		{":symbols", "list declared variables and groups"},
		{":errors", "list the diagnostics of this session"},
		{":reset", "clear symbols and diagnostics"},
		{":help", "show this help"},
		{":quit", "leave the REPL"},
	}
	lines := make([]string, len(commands))
	for i, c := range commands {
		lines[i] = theme.RenderKeyHint(fmt.Sprintf("%-9s", c.name), c.desc)
	}
	return lines
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	_ = SaveHistory(m.config.HistoryFile, m.history)
	return m, tea.Quit
}

// remember appends line to the history, skipping direct repeats
func (m *Model) remember(line string) {
	if n := len(m.history); n > 0 && m.history[n-1] == line {
		return
	}
	m.history = append(m.history, line)
	if over := len(m.history) - m.config.HistorySize; over > 0 {
		m.history = m.history[over:]
	}
}

func (m *Model) appendLines(lines ...string) {
	m.transcript = append(m.transcript, lines...)
	m.syncViewport()
}

func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return strings.Join(m.transcript, "\n") + "\n" + m.input.View()
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(theme.HelpDescStyle.Render(strings.Join([]string{
		theme.RenderKeyHint("Enter", "run"),
		theme.RenderKeyHint("↑/↓", "history"),
		theme.RenderKeyHint("PgUp/PgDn", "scroll"),
		theme.RenderKeyHint("Ctrl+L", "clear"),
		theme.RenderKeyHint("Ctrl+D", "quit"),
	}, "  ")))
	return b.String()
}

func (m Model) renderStatusBar() string {
	symbols := len(m.session.Symbols())
	diagnostics := len(m.session.Diagnostics())
	dropped := m.session.Dropped()

	left := fmt.Sprintf("symbols: %d  diagnostics: %d", symbols, diagnostics)
	if dropped > 0 {
		left += fmt.Sprintf(" (+%d dropped)", dropped)
	}
	right := "locale " + m.session.Engine().Locale()
	if m.lastRun > 0 {
		right = fmt.Sprintf("%s  last %s", right, m.lastRun.Round(time.Microsecond))
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return theme.StatusBarStyle.Render(left + strings.Repeat(" ", padding) + right)
}

// Transcript returns the lines shown so far
func (m Model) Transcript() []string {
	return append([]string(nil), m.transcript...)
}

// Run starts the REPL on the terminal and blocks until it quits
func Run(session *vmel.Session, cfg Config) error {
	p := tea.NewProgram(New(session, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
