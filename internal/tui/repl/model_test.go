package repl

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/foundation/vmel"
)

func newTestModel(t *testing.T, cfg Config) Model {
	t.Helper()
	engine, err := vmel.NewEngine(vmel.Options{
		Logger: mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelError, Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	m := New(engine.NewSession(), cfg)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

// typeLine enters line and presses Enter
func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func transcriptContains(m Model, want string) bool {
	for _, line := range m.Transcript() {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}

func TestModel_Exec(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = typeLine(t, m, "$n = 6 * 7")
	m, _ = typeLine(t, m, "println `n is $n`")

	if !transcriptContains(m, "n is 42") {
		t.Errorf("transcript = %q, want output 'n is 42'", m.Transcript())
	}
	if got := len(m.session.Symbols()); got != 1 {
		t.Errorf("session has %d symbols, want 1", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q after submit, want empty", m.input.Value())
	}
}

func TestModel_Diagnostics(t *testing.T) {
	m := newTestModel(t, Config{})

	m, _ = typeLine(t, m, "$lonely")
	if !transcriptContains(m, "[syntax]") {
		t.Errorf("transcript = %q, want a syntax diagnostic", m.Transcript())
	}

	m, _ = typeLine(t, m, ":errors")
	if got := len(m.session.Diagnostics()); got != 1 {
		t.Errorf("session has %d diagnostics, want 1", got)
	}
}

func TestModel_MetaCommands(t *testing.T) {
	tests := []struct {
		name    string
		setup   []string
		command string
		want    string
	}{
		{"symbols empty", nil, ":symbols", "no symbols"},
		{"symbols", []string{"$a = 1"}, ":symbols", "a"},
		{"errors empty", nil, ":errors", "no diagnostics"},
		{"reset", []string{"$a = 1"}, ":reset", "session reset"},
		{"help", nil, ":help", ":quit"},
		{"unknown", nil, ":frobnicate", "unknown command :frobnicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, Config{})
			for _, line := range tt.setup {
				m, _ = typeLine(t, m, line)
			}
			m, _ = typeLine(t, m, tt.command)
			if !transcriptContains(m, tt.want) {
				t.Errorf("transcript = %q, want %q", m.Transcript(), tt.want)
			}
		})
	}
}

func TestModel_ResetClearsSession(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeLine(t, m, "$a = 1")
	m, _ = typeLine(t, m, ":reset")

	if got := len(m.session.Symbols()); got != 0 {
		t.Errorf("session has %d symbols after reset, want 0", got)
	}
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		line string
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, ""},
		{"ctrl+d", tea.KeyMsg{Type: tea.KeyCtrlD}, ""},
		{":quit", tea.KeyMsg{Type: tea.KeyEnter}, ":quit"},
		{":q", tea.KeyMsg{Type: tea.KeyEnter}, ":q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, Config{})
			m.input.SetValue(tt.line)
			updated, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			if !updated.(Model).quitting {
				t.Error("model not marked as quitting")
			}
			if updated.View() != "" {
				t.Error("View() should be empty after quitting")
			}
		})
	}
}

func TestModel_History(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeLine(t, m, "$a = 1")
	m, _ = typeLine(t, m, "$b = 2")
	m, _ = typeLine(t, m, "$b = 2")

	if len(m.history) != 2 {
		t.Fatalf("history = %q, want 2 entries", m.history)
	}

	m.input.SetValue("draft")
	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "$b = 2"},
		{tea.KeyUp, "$a = 1"},
		{tea.KeyUp, "$a = 1"},
		{tea.KeyDown, "$b = 2"},
		{tea.KeyDown, "draft"},
	}
	for i, step := range steps {
		updated, _ := m.Update(tea.KeyMsg{Type: step.key})
		m = updated.(Model)
		if got := m.input.Value(); got != step.want {
			t.Errorf("step %d: input = %q, want %q", i, got, step.want)
		}
	}
}

func TestModel_HistorySize(t *testing.T) {
	m := newTestModel(t, Config{HistorySize: 2})
	for _, line := range []string{"$a = 1", "$b = 2", "$c = 3"} {
		m, _ = typeLine(t, m, line)
	}
	if len(m.history) != 2 || m.history[0] != "$b = 2" {
		t.Errorf("history = %q, want the 2 most recent lines", m.history)
	}
}

func TestModel_ClearScreen(t *testing.T) {
	m := newTestModel(t, Config{})
	m, _ = typeLine(t, m, "println 1")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if got := len(updated.(Model).Transcript()); got != 0 {
		t.Errorf("transcript has %d lines after clear, want 0", got)
	}
}

func TestModel_Timings(t *testing.T) {
	m := newTestModel(t, Config{ShowTimings: true})
	m, _ = typeLine(t, m, "println 1")
	last := m.Transcript()[len(m.Transcript())-1]
	if !strings.Contains(last, "(") {
		t.Errorf("last line = %q, want a timing", last)
	}
	if !strings.Contains(m.View(), "last ") {
		t.Error("status bar should show the last run time")
	}
}

func TestModel_EmptyLineIgnored(t *testing.T) {
	m := newTestModel(t, Config{})
	before := len(m.Transcript())
	m, _ = typeLine(t, m, "   ")
	if len(m.Transcript()) != before || len(m.history) != 0 {
		t.Error("blank input should neither echo nor enter the history")
	}
}

func TestHistoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	if got := LoadHistory(path, 10); len(got) != 0 {
		t.Errorf("LoadHistory() on missing file = %q, want empty", got)
	}
	if err := SaveHistory(path, []string{"$a = 1", "", "$b = 2", "$c = 3"}); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}

	got := LoadHistory(path, 2)
	if len(got) != 2 || got[0] != "$b = 2" || got[1] != "$c = 3" {
		t.Errorf("LoadHistory() = %q, want the last 2 non-empty lines", got)
	}

	m := newTestModel(t, Config{HistoryFile: path})
	if len(m.history) != 3 {
		t.Errorf("model history = %q, want 3 entries loaded", m.history)
	}
	m, _ = typeLine(t, m, "$d = 4")
	m.quit()
	if got := LoadHistory(path, 0); len(got) != 4 {
		t.Errorf("saved history = %q, want 4 entries", got)
	}
}
