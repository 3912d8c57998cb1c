package companion

import (
	"fmt"
	"image"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/milk9111/deskpet/scheduler"
)

// Task priorities. A motion tick due at the same instant as an animation frame
// runs first so movement always pre-empts.
const (
	priorityRetarget  = 0
	priorityAnimation = 1
	priorityMotion    = 2
)

// Surface is where the companion is placed and drawn.
type Surface interface {
	SetPosition(x, y int)
	SetDimensions(w, h int)
	DrawFrame(frame image.Image)
}

// Options configures a companion. Zero values fall back to the reference
// behaviour.
type Options struct {
	Screen Size
	Size   Size
	Step   int
	Timing Timing
	Sleep  SleepPolicy
	Nudger Nudger
	Rand   *rand.Rand
	Logger *log.Logger
}

// Companion wires the state machine, planners and animator to one state and
// one scheduler.
type Companion struct {
	st     State
	timing Timing
	sleep  SleepPolicy
	frames *Registry
	surf   Surface
	sched  *scheduler.Scheduler
	rng    *rand.Rand
	log    *log.Logger

	anim      *Animator
	motion    *Planner
	wander    *Wanderer
	reactions *Reactions
	drowse    *Drowse
	input     *Interaction
	started   bool
}

// New validates the frame registry, seals it and builds a companion centred
// on the screen with its target on its position.
func New(frames *Registry, surf Surface, sched *scheduler.Scheduler, opts Options) (*Companion, error) {
	if frames == nil || surf == nil || sched == nil {
		return nil, fmt.Errorf("companion: frames, surface and scheduler are required")
	}
	if err := frames.Require(RequiredAnimations...); err != nil {
		return nil, err
	}
	if opts.Size.W <= 0 || opts.Size.H <= 0 {
		return nil, fmt.Errorf("companion: invalid size %dx%d", opts.Size.W, opts.Size.H)
	}
	if opts.Step <= 0 {
		opts.Step = 10
	}
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	frames.seal()

	c := &Companion{
		timing: opts.Timing,
		sleep:  opts.Sleep,
		frames: frames,
		surf:   surf,
		sched:  sched,
		rng:    opts.Rand,
		log:    opts.Logger,
	}

	st := &c.st
	st.Size = opts.Size
	st.Screen = opts.Screen
	st.Pos = Point{X: (opts.Screen.W - opts.Size.W) / 2, Y: (opts.Screen.H - opts.Size.H) / 2}
	st.Target = st.Pos
	st.Machine.OnTransition = func(from, to Mode, ev Event) {
		c.log.Printf("companion: %s -> %s (%s)", from, to, ev)
	}

	c.anim = newAnimator(st, surf, frames, c.rng, &c.timing)
	c.drowse = &Drowse{st: st, anim: c.anim, frames: frames, policy: &c.sleep}
	c.anim.OnIdleLoop = c.drowse.idleLoopDone
	c.motion = &Planner{
		st:     st,
		surf:   surf,
		frames: frames,
		anim:   c.anim,
		rng:    c.rng,
		timing: &c.timing,
		Step:   opts.Step,
		OnWalk: c.drowse.Reset,
	}
	c.wander = &Wanderer{st: st, rng: c.rng, timing: &c.timing, log: c.log}
	c.wander.SetNudger(opts.Nudger)
	c.reactions = &Reactions{st: st, anim: c.anim, drowse: c.drowse}
	c.input = &Interaction{st: st, surf: surf, reactions: c.reactions, drowse: c.drowse, log: c.log}
	return c, nil
}

// Start places the window and arms the idle loop, retarget and motion tasks in
// that order. It is a no-op after the first call.
func (c *Companion) Start() {
	if c.started {
		return
	}
	c.started = true

	c.surf.SetDimensions(c.st.Size.W, c.st.Size.H)
	c.surf.SetPosition(c.st.Pos.X, c.st.Pos.Y)

	c.anim.task = c.sched.Add("animation", priorityAnimation, 0, c.anim.run)
	c.anim.StartIdleLoop()

	d := c.wander.Retarget()
	c.wander.task = c.sched.Add("retarget", priorityRetarget, d, c.wander.Retarget)

	d = c.motion.Tick()
	c.motion.task = c.sched.Add("motion", priorityMotion, d, c.motion.Tick)
}

// Update runs every task that comes due within d.
func (c *Companion) Update(d time.Duration) {
	c.sched.Advance(d)
}

// State exposes the shared state for inspection. Callers must not mutate it.
func (c *Companion) State() *State {
	return &c.st
}

func (c *Companion) Animator() *Animator {
	return c.anim
}

func (c *Companion) Motion() *Planner {
	return c.motion
}

func (c *Companion) Wanderer() *Wanderer {
	return c.wander
}

func (c *Companion) Reactions() *Reactions {
	return c.reactions
}

func (c *Companion) Drowse() *Drowse {
	return c.drowse
}

// Input returns the handler the input collaborator dispatches to.
func (c *Companion) Input() *Interaction {
	return c.input
}

func (c *Companion) Closed() bool {
	return c.input.Closed()
}

// ApplyTiming replaces cadences and dwells. Already armed tasks keep their
// next fire time.
func (c *Companion) ApplyTiming(t Timing) {
	c.timing = t
}

func (c *Companion) ApplySleep(p SleepPolicy) {
	c.sleep = p
}

func (c *Companion) SetNudger(n Nudger) {
	c.wander.SetNudger(n)
}
