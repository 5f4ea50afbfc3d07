package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
)

const (
	flashGain    = 3.0
	flashMax     = 0.25
	flashRelease = 0.85
)

var (
	tailColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	fadeColor = color.NRGBA{A: alpha8(config.FadeAlpha)}
)

// drawSky paints one frame onto the persistent sky layer: the translucent
// overlay that leaves the afterimage, then rockets, then particles.
func drawSky(sky *ebiten.Image, show *fireworks.Show) {
	b := sky.Bounds()
	vector.DrawFilledRect(sky, 0, 0, float32(b.Dx()), float32(b.Dy()), fadeColor, false)

	for _, r := range show.Rockets() {
		drawRocket(sky, r)
	}
	for _, p := range show.Particles() {
		drawParticle(sky, p)
	}
}

func drawRocket(dst *ebiten.Image, r fireworks.Rocket) {
	x, y := float32(r.X), float32(r.Y)
	vector.DrawFilledCircle(dst, x, y, float32(r.Size), r.Color, true)
	vector.StrokeLine(dst, x, y+float32(r.Size), x, y+config.TailLength, 1, tailColor, false)
}

func drawParticle(dst *ebiten.Image, p fireworks.Particle) {
	for _, l := range glowLayers(p) {
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), l.radius, l.color, true)
	}
}

type glowLayer struct {
	radius float32
	color  color.NRGBA
}

// glowLayers approximates the particle's radial gradient (white core, color
// at half radius, transparent rim) with concentric discs drawn outside in.
func glowLayers(p fireworks.Particle) []glowLayer {
	c := color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B}
	rim, mid := c, c
	rim.A = config.GlowAlpha / 3
	mid.A = config.GlowAlpha
	return []glowLayer{
		{radius: float32(p.Size), color: rim},
		{radius: float32(p.Size * 0.5), color: mid},
		{radius: float32(p.Size * 0.2), color: color.NRGBA{R: 255, G: 255, B: 255, A: alpha8(config.CoreAlpha)}},
	}
}

// nextFlash follows the audio level up immediately and releases slowly.
func nextFlash(prev, level float64) float64 {
	target := clamp01(level*flashGain) * flashMax
	return math.Max(target, prev*flashRelease)
}

func drawFlash(screen *ebiten.Image, flash float64) {
	a := alpha8(flash)
	if a == 0 {
		return
	}
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.NRGBA{R: 255, G: 240, B: 220, A: a}, false)
}

type hudState struct {
	Stats   fireworks.Stats
	Active  bool
	Audio   bool
	Muted   bool
	FPS     float64
	Running time.Duration
	Status  string
}

func hudLine(s hudState) string {
	state := "Stopped - Space to start"
	if s.Active {
		state = "Running " + formatDuration(s.Running) + " - Space to stop"
	}
	audio := "off"
	if s.Audio {
		audio = "on"
		if s.Muted {
			audio = "muted"
		}
	}
	line := fmt.Sprintf("%s | rockets %d particles %d bursts %d | sound %s | %.0f fps",
		state, s.Stats.Rockets, s.Stats.Particles, s.Stats.Bursts, audio, s.FPS)
	if s.Status != "" {
		line += " | " + s.Status
	}
	return line
}

func drawHUD(screen *ebiten.Image, line string) {
	ebitenutil.DebugPrintAt(screen, line, 12, 12)
	ebitenutil.DebugPrintAt(screen, "S: save  M: mute  F: fullscreen  H: hide  Esc/Q: quit", 12, 28)
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}
