package game

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ncruces/zenity"
)

// capturer saves sky snapshots through a native save dialog. The dialog runs
// off the game loop so the show keeps animating while it is open.
type capturer struct {
	mu      sync.Mutex
	busy    bool
	message string

	// pick asks the user for a destination; tests replace it.
	pick func(suggested string) (string, error)
}

func newCapturer() *capturer {
	return &capturer{pick: pickCapturePath}
}

func pickCapturePath(suggested string) (string, error) {
	return zenity.SelectFileSave(
		zenity.Title("Save Fireworks Capture"),
		zenity.Filename(suggested),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
}

func (g *Game) saveCapture() {
	if g.sky == nil {
		return
	}
	b := g.sky.Bounds()
	img := image.NewRGBA(b)
	g.sky.ReadPixels(img.Pix)
	g.capture.start(img, time.Now())
}

// start launches a save unless one is already in progress. It reports
// whether a save was started.
func (c *capturer) start(img image.Image, now time.Time) bool {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return false
	}
	c.busy = true
	c.message = ""
	c.mu.Unlock()

	go func() {
		msg := ""
		path, err := c.save(img, captureName(now))
		switch {
		case err != nil:
			log.Printf("[Capture] Error: %v", err)
			msg = "Capture failed: " + err.Error()
		case path != "":
			log.Printf("[Capture] Saved %s", path)
			msg = "Saved " + path
		}
		c.mu.Lock()
		c.busy = false
		c.message = msg
		c.mu.Unlock()
	}()
	return true
}

// save returns an empty path when the user cancels the dialog.
func (c *capturer) save(img image.Image, suggested string) (string, error) {
	path, err := c.pick(suggested)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("select file: %w", err)
	}
	path = withPNGExt(path)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func (c *capturer) status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return "Saving capture..."
	}
	return c.message
}
