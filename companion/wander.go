package companion

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Nudger picks the offset applied to the target on each retarget. The result
// is clamped to the screen afterwards, so it may return anything.
type Nudger interface {
	Nudge(st *State, rng *rand.Rand, maxOffset int) (dx, dy int, err error)
}

// RandomNudger draws each axis independently from [-maxOffset, maxOffset].
type RandomNudger struct{}

func (RandomNudger) Nudge(_ *State, rng *rand.Rand, maxOffset int) (int, int, error) {
	return roll(rng, maxOffset), roll(rng, maxOffset), nil
}

func roll(rng *rand.Rand, maxOffset int) int {
	if maxOffset <= 0 {
		return 0
	}
	return rng.IntN(2*maxOffset+1) - maxOffset
}

var scriptGlobals = []string{
	"x", "y", "target_x", "target_y",
	"width", "height", "screen_w", "screen_h",
	"max_offset", "roll_x", "roll_y",
	"dx", "dy",
}

// ScriptNudger runs a tengo script to pick the offset. The script sees the
// companion's position, target, size, screen, max_offset and a pre-rolled
// random offset (roll_x, roll_y), and assigns dx and dy.
type ScriptNudger struct {
	name     string
	compiled *tengo.Compiled
}

func NewScriptNudger(name string, src []byte) (*ScriptNudger, error) {
	script := tengo.NewScript(src)
	for _, g := range scriptGlobals {
		if err := script.Add(g, 0); err != nil {
			return nil, fmt.Errorf("companion: wander script %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("companion: compile wander script %s: %w", name, err)
	}
	return &ScriptNudger{name: name, compiled: compiled}, nil
}

func (n *ScriptNudger) Name() string {
	return n.name
}

func (n *ScriptNudger) Nudge(st *State, rng *rand.Rand, maxOffset int) (int, int, error) {
	inputs := map[string]int{
		"x":          st.Pos.X,
		"y":          st.Pos.Y,
		"target_x":   st.Target.X,
		"target_y":   st.Target.Y,
		"width":      st.Size.W,
		"height":     st.Size.H,
		"screen_w":   st.Screen.W,
		"screen_h":   st.Screen.H,
		"max_offset": maxOffset,
		"roll_x":     roll(rng, maxOffset),
		"roll_y":     roll(rng, maxOffset),
		"dx":         0,
		"dy":         0,
	}
	for name, v := range inputs {
		if err := n.compiled.Set(name, v); err != nil {
			return 0, 0, fmt.Errorf("companion: wander script %s: set %s: %w", n.name, name, err)
		}
	}
	if err := n.compiled.RunContext(context.Background()); err != nil {
		return 0, 0, fmt.Errorf("companion: wander script %s: %w", n.name, err)
	}
	return n.compiled.Get("dx").Int(), n.compiled.Get("dy").Int(), nil
}
