// Package viz hosts the sketches: a bubbletea frame driver that owns
// timing, canvas size, quality and pointer input, and a braille canvas
// the frames are rasterized onto. The simulators never schedule
// themselves; everything is pulled from here once per tick.
package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sketchlab/internal/attractor"
	"github.com/san-kum/sketchlab/internal/field"
	"github.com/san-kum/sketchlab/internal/sketch"
	"github.com/san-kum/sketchlab/internal/waves"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	statsWidth      = 38
	historyCapacity = 240
	pointerStep     = 0.03
	edgeThreshold   = 0.04
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth + 6)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives one sketch at a fixed frame rate.
type Model struct {
	sk      sketch.Sketch
	quality sketch.Quality
	fps     int

	canvas        *Canvas
	width, height int

	pointer sketch.Pointer
	orbit   bool
	theta   float64

	running   bool
	frames    int
	history   []float64
	statLabel string

	paramKeys []string
	selected  int
}

func NewModel(sk sketch.Sketch, q sketch.Quality, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	m := Model{
		sk:      sk,
		quality: q,
		fps:     fps,
		width:   defaultWidth,
		height:  defaultHeight,
		canvas:  NewCanvas(defaultWidth, defaultHeight),
		pointer: sketch.Pointer{X: 0.5, Y: 0.5},
		orbit:   true,
		running: true,
		history: make([]float64, 0, historyCapacity),
	}
	for k := range sk.Params() {
		m.paramKeys = append(m.paramKeys, k)
	}
	sort.Strings(m.paramKeys)

	pw, ph := m.canvas.PixelSize()
	m.sk.Reinitialize(pw, ph, m.quality)
	return m
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Resize is the only moment state is rebuilt; it runs in the same
		// update loop as the ticks, so it never overlaps an Advance.
		w := msg.Width - statsWidth - 10
		h := msg.Height - 3
		if w < 20 {
			w = 20
		}
		if h < 10 {
			h = 10
		}
		m.width, m.height = w, h
		m.canvas = NewCanvas(w, h)
		pw, ph := m.canvas.PixelSize()
		m.sk.Reinitialize(pw, ph, m.quality)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			pw, ph := m.canvas.PixelSize()
			m.sk.Reinitialize(pw, ph, m.quality)
			m.history = m.history[:0]
		case "a":
			m.orbit = !m.orbit
		case "p":
			if m.quality == sketch.Full {
				m.quality = sketch.Preview
			} else {
				m.quality = sketch.Full
			}
			pw, ph := m.canvas.PixelSize()
			m.sk.Reinitialize(pw, ph, m.quality)
		case "left", "h":
			m.nudgePointer(-pointerStep, 0)
		case "right", "l":
			m.nudgePointer(pointerStep, 0)
		case "up", "k":
			m.nudgePointer(0, -pointerStep)
		case "down", "j":
			m.nudgePointer(0, pointerStep)
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case "+", "=":
			m.adjustParam(1.05)
		case "-", "_":
			m.adjustParam(0.95)
		}

	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// nudgePointer moves the manual pointer and disables the orbit. The host
// clamps here; the simulators never do.
func (m *Model) nudgePointer(dx, dy float64) {
	m.orbit = false
	m.pointer.X = clamp01(m.pointer.X + dx)
	m.pointer.Y = clamp01(m.pointer.Y + dy)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.sk.Params()[key]
	if val == 0 {
		val = 0.01
	}
	m.sk.SetParam(key, val*factor)
}

func (m *Model) step() {
	m.frames++
	if m.orbit {
		m.theta += 0.01
		m.pointer = sketch.Pointer{
			X: 0.5 + 0.35*math.Cos(m.theta),
			Y: 0.5 + 0.35*math.Sin(m.theta),
		}
	}

	frame := m.sk.Advance(m.pointer, m.quality)
	m.canvas.Clear()
	m.canvas.DrawFrame(frame, edgeThreshold)

	stat, label := m.stat()
	m.statLabel = label
	m.history = append(m.history, stat)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// stat picks a one-number health signal per sketch for the history strip.
func (m *Model) stat() (float64, string) {
	switch s := m.sk.(type) {
	case *waves.Grid:
		return s.Energy(), "Energy"
	case *attractor.Integrator:
		return s.Speed(), "Speed"
	case *field.Field:
		lo, hi := s.Range()
		return hi - lo, "Range"
	default:
		return 0, "Stat"
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sk.Name())) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(4), asciigraph.Width(statsWidth-8), asciigraph.Caption(m.statLabel))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.frames)) + "\n")
	s.WriteString(labelStyle.Render("Quality") + valueStyle.Render(m.quality.String()) + "\n")
	pointerMode := "orbit"
	if !m.orbit {
		pointerMode = "manual"
	}
	s.WriteString(labelStyle.Render("Pointer") + valueStyle.Render(
		fmt.Sprintf("%.2f, %.2f (%s)", m.pointer.X, m.pointer.Y, pointerMode)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	params := m.sk.Params()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-18s %.4g", k, params[k])
		if i == m.selected {
			s.WriteString(activeStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset A:Orbit P:Quality\n←↓↑→:Pointer Tab:Param +/-:Tune Q:Quit"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// RunLive blocks inside the bubbletea program until the user quits.
func RunLive(sk sketch.Sketch, q sketch.Quality, fps int) error {
	p := tea.NewProgram(NewModel(sk, q, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
