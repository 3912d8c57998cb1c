package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/deskpet/companion"
	"github.com/milk9111/deskpet/input"
	"github.com/milk9111/deskpet/prefabs"
	"github.com/milk9111/deskpet/render"
)

type Game struct {
	companion *companion.Companion
	window    *render.Window
	poller    *input.Poller
	watcher   *prefabs.Watcher

	configPath string
	debug      bool
	log        *log.Logger
}

func NewGame(c *companion.Companion, window *render.Window, spec *prefabs.CompanionSpec, configPath string, debug bool, logger *log.Logger) (*Game, error) {
	reaction, err := input.ParseBinding(spec.Keys.Reaction)
	if err != nil {
		return nil, err
	}
	closeCombo, err := input.ParseBinding(spec.Keys.Close)
	if err != nil {
		return nil, err
	}

	g := &Game{
		companion:  c,
		window:     window,
		poller:     input.NewPoller(reaction, closeCombo, window.Position),
		configPath: configPath,
		debug:      debug,
		log:        logger,
	}

	if dirs := watchDirs(configPath, spec.Wander.Script); len(dirs) > 0 {
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("config hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// watchDirs lists the directories holding user-supplied config and script
// files. Embedded defaults have nothing to watch.
func watchDirs(configPath, script string) []string {
	var dirs []string
	if configPath != "" {
		dirs = append(dirs, filepath.Dir(configPath))
	}
	if script != "" {
		dirs = append(dirs, filepath.Dir(script))
	}
	return dirs
}

func (g *Game) Update() error {
	g.reload()

	g.poller.Update(g.companion.Input())
	g.companion.Update(time.Second / time.Duration(ebiten.TPS()))

	if g.companion.Closed() {
		g.Close()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}

	changed := false
	for {
		name, ok := g.watcher.Poll()
		if !ok {
			break
		}
		g.log.Printf("companion: %s changed", name)
		changed = true
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("config watcher: %v", err)
	default:
	}
	if !changed {
		return
	}

	spec, err := prefabs.LoadCompanionSpec(g.configPath)
	if err != nil {
		log.Printf("reload %s: %v", g.configPath, err)
		return
	}
	if err := g.apply(spec); err != nil {
		log.Printf("reload %s: %v", g.configPath, err)
	}
}

// apply pushes the reloadable parts of spec into the running companion. Size,
// step and sprites stay as they were at startup.
func (g *Game) apply(spec *prefabs.CompanionSpec) error {
	reaction, err := input.ParseBinding(spec.Keys.Reaction)
	if err != nil {
		return err
	}
	closeCombo, err := input.ParseBinding(spec.Keys.Close)
	if err != nil {
		return err
	}
	nudger, err := loadNudger(spec)
	if err != nil {
		return err
	}

	g.companion.ApplyTiming(spec.CompanionTiming())
	g.companion.ApplySleep(spec.SleepPolicy())
	g.companion.SetNudger(nudger)
	g.poller.Reaction = reaction
	g.poller.Close = closeCombo
	g.log.Printf("companion: config reloaded")
	return nil
}

// loadNudger returns the scripted wander policy named by spec, or nil for the
// built-in random one.
func loadNudger(spec *prefabs.CompanionSpec) (companion.Nudger, error) {
	if spec.Wander.Script == "" {
		return nil, nil
	}
	src, err := prefabs.LoadScript(spec.Wander.Script)
	if err != nil {
		return nil, err
	}
	n, err := companion.NewScriptNudger(spec.Wander.Script, src)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.window.Draw(screen)
	if g.debug {
		g.window.DrawDebug(screen, g.companion.State().Mode().String())
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.window.Dimensions()
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
