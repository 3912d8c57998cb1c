package main

import (
	"flag"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/deskpet/assets"
	"github.com/milk9111/deskpet/companion"
	"github.com/milk9111/deskpet/prefabs"
	"github.com/milk9111/deskpet/render"
	"github.com/milk9111/deskpet/scheduler"
	"github.com/milk9111/deskpet/sprite"
)

func main() {
	configPath := flag.String("config", "", "companion config yaml (empty uses the embedded defaults)")
	debug := flag.Bool("debug", false, "enable debug overlay and tracing")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	seed := flag.Uint64("seed", 0, "random seed (0 seeds from the clock)")
	flag.Parse()

	logger := log.New(io.Discard, "", log.Lmicroseconds)
	if *debug {
		logger.SetOutput(os.Stderr)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	spec, err := prefabs.LoadCompanionSpec(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	nudger, err := loadNudger(spec)
	if err != nil {
		log.Fatalf("wander script: %v", err)
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(s, s>>1))

	size := companion.RollSize(rng, spec.BaseSize, spec.Scale.Min, spec.Scale.Max)
	frames, err := sprite.LoadRegistry(assets.Load, spec.Sprites, size)
	if err != nil {
		log.Fatalf("sprites: %v", err)
	}

	ebiten.SetWindowTitle("deskpet")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	screenW, screenH := ebiten.Monitor().Size()

	window := render.NewWindow()
	c, err := companion.New(frames, window, scheduler.NewScheduler(), companion.Options{
		Screen: companion.Size{W: screenW, H: screenH},
		Size:   size,
		Step:   spec.Step,
		Timing: spec.CompanionTiming(),
		Sleep:  spec.SleepPolicy(),
		Nudger: nudger,
		Rand:   rng,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("companion: %v", err)
	}
	logger.Printf("companion: seed %d, size %dx%d, screen %dx%d", s, size.W, size.H, screenW, screenH)

	game, err := NewGame(c, window, spec, *configPath, *debug, logger)
	if err != nil {
		log.Fatalf("input: %v", err)
	}
	defer game.Close()

	c.Start()
	if err := ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{ScreenTransparent: true}); err != nil {
		log.Fatal(err)
	}
}
