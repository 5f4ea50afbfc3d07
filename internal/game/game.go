package game

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/fireworks/internal/config"
	"github.com/iburimskiy/fireworks/internal/fireworks"
	"github.com/iburimskiy/fireworks/internal/sound"
)

type Game struct {
	settings *config.Settings
	show     *fireworks.Show
	sound    *sound.Player
	capture  *capturer

	// surface
	sky           *ebiten.Image
	width, height int
	skyCleared    bool
	skyFrames     int
	skyClears     int

	// viz
	flash   float64
	running time.Duration

	// input edge detection
	prevKey map[ebiten.Key]bool

	hud bool
}

func New(s *config.Settings, show *fireworks.Show, player *sound.Player) *Game {
	return &Game{
		settings: s,
		show:     show,
		sound:    player,
		capture:  newCapturer(),
		width:    s.Window.Width,
		height:   s.Window.Height,
		prevKey:  map[ebiten.Key]bool{},
		hud:      s.HUD,
	}
}

// Run opens the window and blocks until the player quits.
func Run(s *config.Settings, show *fireworks.Show, player *sound.Player) error {
	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)
	if s.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(s.Window.Fullscreen)

	g := New(s, show, player)
	show.Start()
	log.Printf("[Fireworks] Show started on a %dx%d surface", s.Window.Width, s.Window.Height)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	st := show.Stats()
	log.Printf("[Fireworks] Show ended after %s with %d bursts", formatDuration(g.running), st.Bursts)
	return nil
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeySpace) {
		g.toggle()
	}
	if justPressed(ebiten.KeyM) {
		g.sound.SetMuted(!g.sound.Muted())
	}
	if justPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if justPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if justPressed(ebiten.KeyS) {
		g.saveCapture()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.step(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// step advances the show by one tick and paints exactly one frame onto the
// sky. The fade belongs to the physics step, never to a display refresh.
func (g *Game) step(tick time.Duration) {
	frame := g.show.Advance(tick)
	for range frame.Launched {
		g.sound.Launch()
	}
	for _, b := range frame.Bursts {
		g.sound.Burst(b.Particles)
	}
	if g.show.Active() {
		g.running += tick
	}
	g.flash = nextFlash(g.flash, g.sound.Level())
	g.paintSky()
}

func (g *Game) paintSky() {
	g.ensureSky()
	switch {
	case g.show.Active():
		drawSky(g.sky, g.show)
		g.skyFrames++
	case !g.skyCleared:
		g.sky.Fill(color.Black)
		g.skyCleared = true
		g.skyClears++
	}
}

func (g *Game) toggle() {
	if g.show.Active() {
		g.show.Stop()
		g.skyCleared = false
		log.Printf("[Fireworks] Stopped")
		return
	}
	g.show.Start()
	log.Printf("[Fireworks] Started")
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw may run several times per tick; it only presents the sky.
	g.ensureSky()
	screen.DrawImage(g.sky, &ebiten.DrawImageOptions{})
	drawFlash(screen, g.flash)

	if g.hud {
		drawHUD(screen, g.hudLine())
	}
}

// ensureSky (re)allocates the persistent sky layer when the surface size
// changes. Like a resized canvas, the new layer starts black.
func (g *Game) ensureSky() {
	if g.sky != nil {
		b := g.sky.Bounds()
		if b.Dx() == g.width && b.Dy() == g.height {
			return
		}
		g.sky.Deallocate()
	}
	g.sky = ebiten.NewImage(g.width, g.height)
	g.sky.Fill(color.Black)
}

// Layout follows the window so the drawing surface always fills it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
		g.show.Resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

func (g *Game) hudLine() string {
	return hudLine(hudState{
		Stats:   g.show.Stats(),
		Active:  g.show.Active(),
		Audio:   g.sound.Enabled(),
		Muted:   g.sound.Muted(),
		FPS:     ebiten.ActualFPS(),
		Running: g.running,
		Status:  g.capture.status(),
	})
}
