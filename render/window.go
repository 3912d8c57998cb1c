package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

var debugBoxColor = withAlpha(colornames.Lime, 200)

// Window is the companion's render surface: it places and sizes the OS window
// and holds the frame that Draw blits.
type Window struct {
	move   func(x, y int)
	resize func(w, h int)

	frame image.Image
	cache map[image.Image]*ebiten.Image
	x, y  int
	w, h  int
}

func NewWindow() *Window {
	return &Window{
		move:   ebiten.SetWindowPosition,
		resize: ebiten.SetWindowSize,
		cache:  make(map[image.Image]*ebiten.Image),
	}
}

func (w *Window) SetPosition(x, y int) {
	w.x, w.y = x, y
	w.move(x, y)
}

func (w *Window) SetDimensions(width, height int) {
	w.w, w.h = width, height
	w.resize(width, height)
}

func (w *Window) DrawFrame(frame image.Image) {
	w.frame = frame
}

func (w *Window) Position() (int, int) {
	return w.x, w.y
}

func (w *Window) Dimensions() (int, int) {
	return w.w, w.h
}

func (w *Window) Frame() image.Image {
	return w.frame
}

// Draw blits the current frame. Frames are converted to GPU images once and
// reused, since every animation cycles through the same handful of frames.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Clear()
	if w.frame == nil {
		return
	}
	img, ok := w.cache[w.frame]
	if !ok {
		img = ebiten.NewImageFromImage(w.frame)
		w.cache[w.frame] = img
	}

	op := &ebiten.DrawImageOptions{}
	b := img.Bounds()
	if b.Dx() > 0 && b.Dy() > 0 && (b.Dx() != w.w || b.Dy() != w.h) {
		op.GeoM.Scale(float64(w.w)/float64(b.Dx()), float64(w.h)/float64(b.Dy()))
	}
	screen.DrawImage(img, op)
}

// DrawDebug outlines the window bounds and prints the mode and position.
func (w *Window) DrawDebug(screen *ebiten.Image, mode string) {
	vector.StrokeRect(screen, 0.5, 0.5, float32(w.w)-1, float32(w.h)-1, 1, debugBoxColor, false)
	ebitenutil.DebugPrintAt(screen, DebugLabel(mode, w.x, w.y), 2, 2)
}

func DebugLabel(mode string, x, y int) string {
	return fmt.Sprintf("%s\n%d,%d", mode, x, y)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
