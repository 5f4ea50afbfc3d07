package tui

import (
	"fmt"
	"log"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
	"github.com/iburimskiy/fireworks/internal/sound"
)

const (
	// Scale is the number of simulation pixels per raster pixel. The physics
	// works in screen pixels, so the terminal shows a downscaled sky.
	Scale     = 6
	frameRate = 60
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	white       = fireworks.Color{R: 255, G: 255, B: 255}
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model runs a show in the terminal.
type Model struct {
	show   *fireworks.Show
	sound  *sound.Player
	raster *Raster
	cols   int
	rows   int
}

func NewModel(show *fireworks.Show, player *sound.Player) *Model {
	return &Model{
		show:   show,
		sound:  player,
		raster: NewRaster(0, 0),
	}
}

func (m *Model) Init() tea.Cmd {
	m.show.Start()
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.toggle()
		case "m":
			m.sound.SetMuted(!m.sound.Muted())
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.frame()
		return m, tick()
	}
	return m, nil
}

// resize keeps one line for the status bar below the sky.
func (m *Model) resize(width, height int) {
	m.cols, m.rows = width, max(height-1, 0)
	m.raster.Resize(m.cols, m.rows)
	m.show.Resize(m.cols*Scale, m.rows*2*Scale)
}

func (m *Model) toggle() {
	if m.show.Active() {
		m.show.Stop()
		m.raster.Clear()
		log.Printf("[Fireworks] Stopped")
		return
	}
	m.show.Start()
	log.Printf("[Fireworks] Started")
}

func (m *Model) frame() {
	if !m.show.Active() {
		return
	}
	f := m.show.Advance(time.Second / frameRate)
	for range f.Launched {
		m.sound.Launch()
	}
	for _, b := range f.Bursts {
		m.sound.Burst(b.Particles)
	}
	paint(m.raster, m.show)
}

// paint draws one frame of the show onto the raster.
func paint(r *Raster, show *fireworks.Show) {
	r.Fade(config.FadeAlpha)
	for _, rk := range show.Rockets() {
		x, y := toRaster(rk.X), toRaster(rk.Y)
		r.VLine(x, y+1, toRaster(rk.Y+config.TailLength), white, 0.6)
		r.Plot(x, y, rk.Color, 1)
	}
	for _, p := range show.Particles() {
		// Glow fades out with the particle; the largest sparks get a white core.
		a := math.Min(1, p.Size/2)
		r.Plot(toRaster(p.X), toRaster(p.Y), p.Color, a*float64(config.GlowAlpha)/255)
		if p.Size > 2.5 {
			r.Plot(toRaster(p.X), toRaster(p.Y), white, config.CoreAlpha*0.5)
		}
	}
}

func toRaster(v float64) int {
	return int(math.Floor(v / Scale))
}

func (m *Model) View() string {
	if m.cols == 0 {
		return "starting..."
	}
	return m.raster.Render() + "\n" + m.statusLine()
}

func (m *Model) statusLine() string {
	state := pausedStyle.Render("stopped")
	if m.show.Active() {
		state = activeStyle.Render("running")
	}
	st := m.show.Stats()
	audio := "off"
	if m.sound.Enabled() {
		audio = "on"
		if m.sound.Muted() {
			audio = "muted"
		}
	}
	return state + statusStyle.Render(fmt.Sprintf(" rockets %d  particles %d  bursts %d  sound %s  [space] start/stop [m] mute [q] quit",
		st.Rockets, st.Particles, st.Bursts, audio))
}

// Run blocks until the user quits.
func Run(show *fireworks.Show, player *sound.Player) error {
	p := tea.NewProgram(NewModel(show, player), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
