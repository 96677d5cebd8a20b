package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/trajgen/internal/trajectory"
	"github.com/san-kum/trajgen/internal/waypoint"
)

func tracer() tracing.Trace {
	return tracing.Select("trajgen.viz")
}

const (
	width           = 60
	height          = 18
	historyCapacity = 300
	frameRate       = 30
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model samples an evaluator on its internal clock once per frame.
type Model struct {
	title   string
	ev      *trajectory.Evaluator
	path    []waypoint.Vector
	end     float64
	ref     trajectory.Reference
	status  trajectory.Status
	err     error
	axes    [2]int
	canvas  *Canvas
	trail   [][2]float64
	history []float64
	speed   []float64
	running bool
}

func NewModel(title string, ev *trajectory.Evaluator) Model {
	m := Model{
		title:   title,
		ev:      ev,
		canvas:  NewCanvas(width, height),
		history: make([]float64, 0, historyCapacity),
		speed:   make([]float64, 0, historyCapacity),
		running: true,
		status:  trajectory.StatusOK,
	}
	m.axes = [2]int{0, 1}
	if wps, _, err := ev.Waypoints(); err == nil {
		for _, w := range wps.Waypoints() {
			m.path = append(m.path, w.Get(false))
		}
		m.end = wps.LastTime()
		m.ref = trajectory.NewReference(wps.Dimension())
	}
	m.fitView()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.ev.Rearm()
			m.trail = m.trail[:0]
			tracer().Debugf("re-armed by user")
		case "tab":
			m.cycleAxes()
		}
	case TickMsg:
		if m.running {
			m.sample()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) sample() {
	st, err := m.ev.Evaluate(&m.ref, trajectory.UseInternalClock)
	m.status, m.err = st, err
	if err != nil {
		return
	}
	x, y := m.project(m.ref.Position)
	m.trail = append(m.trail, [2]float64{x, y})
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
	m.history = appendCapped(m.history, m.ref.Position[m.axes[0]])
	m.speed = appendCapped(m.speed, m.ref.Velocity.Norm())
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

// cycleAxes steps through the axis pairs of the waypoint dimension.
func (m *Model) cycleAxes() {
	n := len(m.ref.Position)
	if n < 3 {
		return
	}
	m.axes[1]++
	if m.axes[1] >= n {
		m.axes[0] = (m.axes[0] + 1) % (n - 1)
		m.axes[1] = m.axes[0] + 1
	}
	m.trail = m.trail[:0]
	m.history = m.history[:0]
	m.fitView()
}

// project picks the plotted pair. One-dimensional paths plot against time.
func (m *Model) project(v waypoint.Vector) (float64, float64) {
	if len(v) == 1 {
		return m.ev.LastTime(), v[0]
	}
	return v[m.axes[0]], v[m.axes[1]]
}

func (m *Model) fitView() {
	if len(m.path) == 0 {
		return
	}
	var b Bounds
	for i, p := range m.path {
		var x, y float64
		if len(p) == 1 {
			x, y = m.end*float64(i)/float64(max(len(m.path)-1, 1)), p[0]
		} else {
			x, y = p[m.axes[0]], p[m.axes[1]]
		}
		if i == 0 {
			b = Bounds{MinX: x, MaxX: x, MinY: y, MaxY: y}
		}
		b.Expand(x, y)
	}
	b.Pad(0.1)
	m.canvas.View = b
}

func (m *Model) draw() {
	m.canvas.Clear()
	if len(m.path) > 0 && len(m.path[0]) > 1 {
		for i := 1; i < len(m.path); i++ {
			a, b := m.path[i-1], m.path[i]
			m.canvas.Line(a[m.axes[0]], a[m.axes[1]], b[m.axes[0]], b[m.axes[1]])
		}
		for _, p := range m.path {
			m.canvas.Marker(p[m.axes[0]], p[m.axes[1]])
		}
	}
	for _, pt := range m.trail {
		m.canvas.Plot(pt[0], pt[1])
	}
	if len(m.trail) > 0 {
		last := m.trail[len(m.trail)-1]
		m.canvas.Marker(last[0], last[1])
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(StatusBadge(m.status) + "  " + m.ev.State().String())
	if !m.running {
		s.WriteString("  (paused)")
	}
	s.WriteString("\n\n")

	t := m.ev.LastTime()
	progress := 0.0
	if m.end > 0 {
		progress = t / m.end
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f / %.2fs", t, m.end)) + "\n")
	s.WriteString(labelStyle.Render("Progress") + ProgressBar(progress, 20) + "\n")
	s.WriteString(labelStyle.Render("Axes") + valueStyle.Render(fmt.Sprintf("%d, %d", m.axes[0], m.axes[1])) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(m.ref.Position.String()) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(m.ref.Velocity.String()) + "\n")
	s.WriteString(labelStyle.Render("Speed") + Sparkline(m.speed, 20) + "\n")
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30),
			asciigraph.Caption(fmt.Sprintf("axis %d", m.axes[0])))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Re-arm TAB:Axes Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run blocks until the user quits.
func Run(title string, ev *trajectory.Evaluator) error {
	p := tea.NewProgram(NewModel(title, ev))
	_, err := p.Run()
	return err
}
