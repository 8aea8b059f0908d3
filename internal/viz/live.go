package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fixedstep/internal/sim"
)

const (
	canvasWidth     = 70
	canvasHeight    = 22
	historyCapacity = 300
	tickRate        = time.Second / 60
)

type TickMsg time.Time

// Opener builds a fresh session. It is called at start and on reset.
type Opener func() (sim.Session, error)

// Model drives a session with the wall clock time between ticks.
type Model struct {
	open    Opener
	session sim.Session
	err     error

	canvas *Canvas
	camera *Camera
	wire   *Wireframe
	theme  int
	styles styles

	running bool
	last    time.Time
	lastDt  float64
	lastN   int
	frames  int

	bodies  []sim.BodyState
	tracked int
	history []float64
}

func NewModel(open Opener) (Model, error) {
	m := Model{
		open:    open,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
		wire:    NewWireframe(),
		styles:  newStyles(Themes[0]),
		running: true,
		history: make([]float64, 0, historyCapacity),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.session.Close()
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case ".":
			if !m.running {
				m.advance(m.session.Timestep())
			}
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "tab":
			if len(m.bodies) > 0 {
				m.tracked = (m.tracked + 1) % len(m.bodies)
				m.history = m.history[:0]
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "left", "h":
			m.camera.Orbit(-0.1, 0)
		case "right", "l":
			m.camera.Orbit(0.1, 0)
		case "up", "k":
			m.camera.Orbit(0, 0.1)
		case "down", "j":
			m.camera.Orbit(0, -0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-50)
		h := max(8, msg.Height-4)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		now := time.Time(msg)
		if m.running && !m.last.IsZero() {
			m.advance(now.Sub(m.last).Seconds())
		}
		m.last = now
		return m, tick()
	}
	return m, nil
}

// Err reports why the program stopped, if it stopped on an error.
func (m Model) Err() error { return m.err }

func (m *Model) advance(dt float64) {
	m.lastN = m.session.Advance(dt)
	m.lastDt = dt
	m.frames++
	m.bodies = m.session.Bodies()

	if m.tracked < len(m.bodies) {
		m.history = append(m.history, m.bodies[m.tracked].Position[1])
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
}

// reset reopens the scene and points the camera at it.
func (m *Model) reset() error {
	s, err := m.open()
	if err != nil {
		return err
	}
	if m.session != nil {
		m.session.Close()
	}
	m.session = s
	m.bodies = s.Bodies()
	m.history = m.history[:0]
	m.frames, m.lastN, m.lastDt = 0, 0, 0
	m.last = time.Time{}
	if m.tracked >= len(m.bodies) {
		m.tracked = 0
	}
	frame(m.camera, m.bodies)
	return nil
}

// frame centres the camera on the active bodies.
func frame(c *Camera, bodies []sim.BodyState) {
	var lo, hi mgl64.Vec3
	first := true
	for _, b := range bodies {
		if !b.Active {
			continue
		}
		p := mgl64.Vec3(b.Position)
		if first {
			lo, hi, first = p, p, false
			continue
		}
		for i := range 3 {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	c.Target = lo.Add(hi).Mul(0.5)
	c.Distance = max(20, 1.5*hi.Sub(lo).Len())
}

func (m Model) View() string {
	m.draw()
	canvasView := m.styles.canvas.Render(m.canvas.String())

	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.session.Scene())) + "\n")
	if m.running {
		s.WriteString(st.status.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.history) > 1 && m.tracked < len(m.bodies) {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption(m.bodies[m.tracked].Name+".y"),
		)
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.row("Repr", m.session.Repr().String()))
	s.WriteString(st.row("Time", fmt.Sprintf("%.3fs", m.session.Elapsed())))
	s.WriteString(st.row("Timestep", fmt.Sprintf("%.2fms", m.session.Timestep()*1000)))
	s.WriteString(st.row("Frame", fmt.Sprintf("#%d  %.2fms", m.frames, m.lastDt*1000)))
	s.WriteString(st.row("Sub-steps", fmt.Sprintf("%d", m.lastN)))
	s.WriteString(st.row("Alpha", ProgressBar(m.session.Alpha(), 10)+fmt.Sprintf(" %.2f", m.session.Alpha())))

	active := 0
	for _, b := range m.bodies {
		if b.Active {
			active++
		}
	}
	s.WriteString(st.row("Bodies", fmt.Sprintf("%d/%d active", active, len(m.bodies))))
	if m.tracked < len(m.bodies) {
		b := m.bodies[m.tracked]
		s.WriteString(st.row("Tracking", b.Name))
		s.WriteString(st.row("Position", fmt.Sprintf("%.2f %.2f %.2f", b.Position[0], b.Position[1], b.Position[2])))
	}

	s.WriteString(st.help.Render("SPC:Pause .:Step R:Reset Q:Quit\nTAB:Track T:Theme ←↑↓→:Orbit +-:Zoom"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.wire.Clear()
	m.wire.AddAxes(2)
	m.wire.AddBodies(m.bodies)
	Render(m.canvas, m.wire, m.camera)

	if m.tracked < len(m.bodies) && m.bodies[m.tracked].Active {
		w, h := m.canvas.Dots()
		if x, y, ok := m.camera.Project(mgl64.Vec3(m.bodies[m.tracked].Position), w, h); ok {
			m.canvas.DrawRing(x, y, 4, 4)
		}
	}
}

// Run shows the scene until the user quits.
func Run(open Opener) error {
	m, err := NewModel(open)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
