package companion

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/milk9111/deskpet/scheduler"
)

// Planner steps the companion toward its target at a fixed cadence and picks
// the walk cycle from the direction of travel.
type Planner struct {
	st     *State
	surf   Surface
	frames *Registry
	anim   *Animator
	rng    *rand.Rand
	timing *Timing

	// Step is the largest distance covered on each axis per tick.
	Step int

	task      *scheduler.Task
	walkCycle int
	lastWalk  string

	// OnWalk runs on the tick a walk starts.
	OnWalk func()
}

// LastWalk returns the walk animation most recently chosen, or "" before the
// first horizontal move.
func (p *Planner) LastWalk() string {
	return p.lastWalk
}

// Tick advances one step and returns the delay before the next tick.
func (p *Planner) Tick() time.Duration {
	if p.st.Dragging {
		return p.timing.MoveInterval
	}

	dx := p.st.Target.X - p.st.Pos.X
	dy := p.st.Target.Y - p.st.Pos.Y

	if abs(dx) > p.Step || abs(dy) > p.Step {
		p.walk(dx, dy)
		return p.timing.MoveInterval
	}

	p.settle()
	return p.timing.SettleDwell.pick(p.rng)
}

func (p *Planner) walk(dx, dy int) {
	st := p.st
	st.Pos.X = stepToward(st.Pos.X, st.Target.X, dx, p.Step)
	st.Pos.Y = stepToward(st.Pos.Y, st.Target.Y, dy, p.Step)
	p.surf.SetPosition(st.Pos.X, st.Pos.Y)

	prev := st.Mode()
	st.Machine.Fire(EventStep)
	if prev != ModeWalking {
		if prev != ModeIdle {
			// Movement wins: whatever was showing is dropped for the last
			// animation seen, which keeps cycling once the walk ends.
			restore := p.lastWalk
			if restore == "" {
				restore = AnimIdle
			}
			p.anim.Play(restore, nil)
			p.walkCycle = 0
		}
		if p.OnWalk != nil {
			p.OnWalk()
		}
	}

	// Vertical-only movement keeps the previous facing.
	switch {
	case dx > 0:
		p.lastWalk = AnimWalkRight
	case dx < 0:
		p.lastWalk = AnimWalkLeft
	}

	if p.lastWalk == "" {
		p.surf.DrawFrame(p.frames.first(AnimIdle))
		return
	}
	frames, _ := p.frames.Frames(p.lastWalk)
	p.surf.DrawFrame(frames[p.walkCycle%len(frames)])
	p.walkCycle++
}

func (p *Planner) settle() {
	st := p.st
	if st.Pos != st.Target {
		st.Pos = st.Target
		p.surf.SetPosition(st.Pos.X, st.Pos.Y)
	}

	switch st.Mode() {
	case ModeWalking:
		st.Machine.Fire(EventSettle)
		p.surf.DrawFrame(p.frames.first(AnimIdle))
		if !p.anim.InIdleLoop() {
			p.anim.StartIdleLoop()
		}
	case ModeIdle:
		p.surf.DrawFrame(p.frames.first(AnimIdle))
	}
}

// stepToward moves v one step toward target, snapping when the remaining
// distance d is within a step.
func stepToward(v, target, d, step int) int {
	switch {
	case abs(d) <= step:
		return target
	case d > 0:
		return v + step
	default:
		return v - step
	}
}

// Wanderer re-randomizes the target on its own timer, whether or not the
// current target has been reached.
type Wanderer struct {
	st     *State
	rng    *rand.Rand
	timing *Timing
	nudger Nudger
	log    *log.Logger

	task *scheduler.Task
}

// SetNudger swaps the policy that picks each offset.
func (w *Wanderer) SetNudger(n Nudger) {
	if n == nil {
		n = RandomNudger{}
	}
	w.nudger = n
}

// Retarget nudges and clamps the target, returning the delay before the next
// retarget. The timer keeps running in every mode, but while dozing or
// sleeping the target is left alone, so with WakeAfterCycles of zero a
// sleeping companion stays put until a drag or the reaction key wakes it.
func (w *Wanderer) Retarget() time.Duration {
	next := w.timing.RetargetInterval.pick(w.rng)
	if w.st.IsResting() {
		return next
	}

	dx, dy, err := w.nudger.Nudge(w.st, w.rng, w.timing.RetargetOffset)
	if err != nil {
		w.log.Printf("companion: wander policy failed, using random offset: %v", err)
		dx, dy, _ = RandomNudger{}.Nudge(w.st, w.rng, w.timing.RetargetOffset)
	}

	w.st.Target.X += dx
	w.st.Target.Y += dy
	w.st.ClampTarget()
	w.log.Printf("companion: target (%d,%d) next in %v", w.st.Target.X, w.st.Target.Y, next)
	return next
}
