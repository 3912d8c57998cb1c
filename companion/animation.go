package companion

import (
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/milk9111/deskpet/scheduler"
)

type playback struct {
	name       string
	frames     []image.Image
	onComplete func()
	// dwell holds frame 0 for a random LoopDwell before onComplete runs;
	// without it onComplete follows the last frame at frame cadence.
	dwell bool
	idle  bool
}

// Animator owns the displayed animation, its cycle index and its completion
// policy. It only draws while the companion is not walking; the motion
// planner owns the frame during a walk.
type Animator struct {
	st     *State
	surf   Surface
	frames *Registry
	rng    *rand.Rand
	timing *Timing

	task    *scheduler.Task
	current playback
	cycle   int
	pending func()

	// OnIdleLoop runs each time the idle loop finishes a cycle and its dwell.
	// It defaults to restarting the idle loop.
	OnIdleLoop func()
}

func newAnimator(st *State, surf Surface, frames *Registry, rng *rand.Rand, timing *Timing) *Animator {
	a := &Animator{st: st, surf: surf, frames: frames, rng: rng, timing: timing}
	a.OnIdleLoop = a.StartIdleLoop
	return a
}

// Current returns the name of the animation being played.
func (a *Animator) Current() string {
	return a.current.name
}

// Cycle returns the index of the next frame to show.
func (a *Animator) Cycle() int {
	return a.cycle
}

// Play starts name from its first frame. With onComplete the sequence plays
// once, rests on frame 0 for a random dwell and then calls onComplete; without
// it the sequence loops at frame cadence.
func (a *Animator) Play(name string, onComplete func()) {
	a.start(playback{name: name, onComplete: onComplete, dwell: onComplete != nil})
}

// PlayOnce plays name a single time and calls then right after its last frame.
func (a *Animator) PlayOnce(name string, then func()) {
	a.start(playback{name: name, onComplete: then})
}

// StartIdleLoop restarts the resting idle loop.
func (a *Animator) StartIdleLoop() {
	a.start(playback{name: AnimIdle, onComplete: a.idleLoopDone, dwell: true, idle: true})
}

// InIdleLoop reports whether the idle loop is what is playing.
func (a *Animator) InIdleLoop() bool {
	return a.current.idle
}

func (a *Animator) idleLoopDone() {
	if a.OnIdleLoop != nil {
		a.OnIdleLoop()
		return
	}
	a.StartIdleLoop()
}

func (a *Animator) start(pb playback) {
	frames, ok := a.frames.Frames(pb.name)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownAnimation, pb.name))
	}
	pb.frames = frames
	a.current = pb
	a.cycle = 0
	a.pending = nil

	d := a.Advance()
	if a.task != nil {
		a.task.Reschedule(d)
	}
}

// Advance shows the current frame, moves the cycle index on and returns the
// delay before the next call. A wrap with a completion callback arms that
// callback instead of looping.
func (a *Animator) Advance() time.Duration {
	pb := a.current
	if len(pb.frames) == 0 {
		return a.timing.FrameInterval
	}

	a.draw(pb.frames[a.cycle])
	a.cycle = (a.cycle + 1) % len(pb.frames)

	if a.cycle != 0 || pb.onComplete == nil {
		return a.timing.FrameInterval
	}

	a.pending = pb.onComplete
	if !pb.dwell {
		return a.timing.FrameInterval
	}
	a.draw(pb.frames[0])
	return a.timing.LoopDwell.pick(a.rng)
}

// run is the animation task body.
func (a *Animator) run() time.Duration {
	if cb := a.pending; cb != nil {
		a.pending = nil
		cb()
		return a.timing.FrameInterval
	}
	return a.Advance()
}

func (a *Animator) draw(frame image.Image) {
	if a.st.IsWalking() {
		return
	}
	a.surf.DrawFrame(frame)
}
