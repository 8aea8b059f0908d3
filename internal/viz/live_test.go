package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fixedstep/internal/config"
	"github.com/san-kum/fixedstep/internal/sim"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.GetPreset("drop")
	m, err := NewModel(func() (sim.Session, error) { return sim.Open(cfg) })
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	t.Cleanup(func() { m.session.Close() })
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelAdvancesWithWallClock(t *testing.T) {
	m := newTestModel(t)
	start := time.Unix(1000, 0)

	m = send(m, TickMsg(start))
	if m.session.Elapsed() != 0 {
		t.Fatal("first tick advanced the world")
	}

	m = send(m, TickMsg(start.Add(100*time.Millisecond)))
	if m.lastN == 0 || m.session.Elapsed() == 0 {
		t.Fatalf("tick ran %d sub-steps, elapsed %v", m.lastN, m.session.Elapsed())
	}
	if m.frames != 1 || len(m.history) != 1 {
		t.Errorf("frames = %d, history = %d", m.frames, len(m.history))
	}
}

func TestModelPauseAndStep(t *testing.T) {
	m := newTestModel(t)
	start := time.Unix(1000, 0)

	m = send(m, key(" "))
	if m.running {
		t.Fatal("space did not pause")
	}
	m = send(m, TickMsg(start))
	m = send(m, TickMsg(start.Add(time.Second)))
	if m.session.Elapsed() != 0 {
		t.Fatal("paused model advanced")
	}

	m = send(m, key("."))
	if m.lastN != 1 {
		t.Errorf("step ran %d sub-steps, want 1", m.lastN)
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel(t)
	start := time.Unix(1000, 0)
	m = send(m, TickMsg(start))
	m = send(m, TickMsg(start.Add(200*time.Millisecond)))
	old := m.session

	m = send(m, key("r"))
	if m.session == old {
		t.Error("reset kept the old session")
	}
	if m.session.Elapsed() != 0 || m.frames != 0 || len(m.history) != 0 {
		t.Errorf("reset left state behind: elapsed %v, frames %d", m.session.Elapsed(), m.frames)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"DROP", "float32", "RUNNING", "ball"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(m, key("t"))
	if m.theme != 1 {
		t.Errorf("theme = %d", m.theme)
	}
}
