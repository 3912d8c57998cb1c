package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/deskpet/assets"
	"github.com/milk9111/deskpet/companion"
	"github.com/milk9111/deskpet/prefabs"
	"github.com/milk9111/deskpet/sprite"
)

const canvasSize = 256

type previewGame struct {
	names    []string
	frames   map[string][]*ebiten.Image
	interval time.Duration
	player   frameTicker
	anim     int
}

// frameTicker steps through a sequence of count frames, one every
// ticksPerFrm updates.
type frameTicker struct {
	count       int
	current     int
	tick        int
	ticksPerFrm int
}

func newFrameTicker(count int, interval time.Duration, tps int) frameTicker {
	ticks := 1
	if tps > 0 {
		ticks = int(interval * time.Duration(tps) / time.Second)
		if ticks < 1 {
			ticks = 1
		}
	}
	return frameTicker{count: count, ticksPerFrm: ticks}
}

func (f *frameTicker) Update() {
	if f.count <= 1 {
		return
	}
	f.tick++
	if f.tick >= f.ticksPerFrm {
		f.tick = 0
		f.current = (f.current + 1) % f.count
	}
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.selectAnim(g.anim + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.selectAnim(g.anim - 1)
	}
	g.player.Update()
	return nil
}

func (g *previewGame) selectAnim(i int) {
	n := len(g.names)
	g.anim = ((i % n) + n) % n
	g.player = newFrameTicker(len(g.frames[g.names[g.anim]]), g.interval, ebiten.TPS())
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	name := g.names[g.anim]
	frames := g.frames[name]
	if len(frames) == 0 {
		return
	}
	fw := frames[0].Bounds().Dx()
	fh := frames[0].Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64((canvasSize-fw)/2), float64((canvasSize-fh)/2))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frames[g.player.current], op)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s %d/%d  (<- ->)", name, g.player.current+1, len(frames)))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return canvasSize, canvasSize
}

func main() {
	configPath := flag.String("config", "", "companion config yaml (empty uses the embedded defaults)")
	size := flag.Int("size", 0, "preview size in pixels (0 uses base_size)")
	flag.Parse()

	spec, err := prefabs.LoadCompanionSpec(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	side := spec.BaseSize
	if *size > 0 {
		side = *size
	}

	reg, err := sprite.LoadRegistry(assets.Load, spec.Sprites, companion.Size{W: side, H: side})
	if err != nil {
		log.Fatalf("sprites: %v", err)
	}

	g := &previewGame{
		frames:   make(map[string][]*ebiten.Image),
		interval: spec.Timing.FrameInterval,
	}
	for name := range spec.Sprites {
		frames, ok := reg.Frames(name)
		if !ok {
			continue
		}
		imgs := make([]*ebiten.Image, 0, len(frames))
		for _, f := range frames {
			imgs = append(imgs, ebiten.NewImageFromImage(f))
		}
		g.names = append(g.names, name)
		g.frames[name] = imgs
	}
	sort.Strings(g.names)
	g.selectAnim(0)

	ebiten.SetWindowSize(canvasSize*2, canvasSize*2)
	ebiten.SetWindowTitle("deskpet preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
