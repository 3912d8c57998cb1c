package companion

import (
	"math"
	"testing"
	"time"
)

func TestTickConverges(t *testing.T) {
	cases := []struct {
		name   string
		start  Point
		target Point
	}{
		{"right", Point{350, 250}, Point{390, 250}},
		{"left_up", Point{350, 250}, Point{120, 40}},
		{"diagonal_uneven", Point{0, 0}, Point{25, 137}},
		{"within_step", Point{100, 100}, Point{105, 93}},
		{"vertical_only", Point{200, 400}, Point{200, 0}},
		{"already_there", Point{10, 10}, Point{10, 10}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			comp, surf := newTestCompanion(t, Options{}, false)
			st := comp.State()
			st.Pos = c.start
			st.Target = c.target

			maxD := max(abs(c.target.X-c.start.X), abs(c.target.Y-c.start.Y))
			bound := int(math.Ceil(float64(maxD) / 10))

			ticks := 0
			for st.Pos != st.Target {
				comp.Motion().Tick()
				ticks++
				if ticks > bound {
					t.Fatalf("not converged after %d ticks (bound %d), at %+v", ticks, bound, st.Pos)
				}
			}
			if surf.x != c.target.X || surf.y != c.target.Y {
				if maxD > 0 {
					t.Fatalf("surface at (%d,%d), expected target %+v", surf.x, surf.y, c.target)
				}
			}

			comp.Motion().Tick()
			if st.Mode() != ModeIdle {
				t.Fatalf("expected idle once at target, got %s", st.Mode())
			}
		})
	}
}

func TestTickCadence(t *testing.T) {
	c, _ := newTestCompanion(t, Options{}, false)
	st := c.State()
	st.Target = Point{X: st.Pos.X + 100, Y: st.Pos.Y}

	if d := c.Motion().Tick(); d != 50*time.Millisecond {
		t.Fatalf("expected 50ms while walking, got %v", d)
	}

	st.Target = st.Pos
	for i := 0; i < 100; i++ {
		d := c.Motion().Tick()
		if d < 500*time.Millisecond || d > 2000*time.Millisecond {
			t.Fatalf("settled dwell %v outside [500ms,2s]", d)
		}
	}
}

func TestVerticalMoveKeepsFacing(t *testing.T) {
	c, surf := newTestCompanion(t, Options{}, false)
	st := c.State()

	st.Target = Point{X: st.Pos.X - 30, Y: st.Pos.Y}
	c.Motion().Tick()
	if c.Motion().LastWalk() != AnimWalkLeft {
		t.Fatalf("expected walk-left, got %q", c.Motion().LastWalk())
	}

	st.Target = Point{X: st.Pos.X, Y: st.Pos.Y + 50}
	c.Motion().Tick()
	if c.Motion().LastWalk() != AnimWalkLeft {
		t.Fatalf("vertical move changed facing to %q", c.Motion().LastWalk())
	}
	if surf.frame != frames(c, AnimWalkLeft)[1] {
		t.Fatalf("expected the next walk-left frame")
	}
}

func TestVerticalMoveBeforeAnyFacingShowsIdle(t *testing.T) {
	c, surf := newTestCompanion(t, Options{}, false)
	st := c.State()
	st.Target = Point{X: st.Pos.X, Y: st.Pos.Y - 80}

	c.Motion().Tick()
	if c.Motion().LastWalk() != "" {
		t.Fatalf("expected no facing yet, got %q", c.Motion().LastWalk())
	}
	if surf.frame != frames(c, AnimIdle)[0] {
		t.Fatalf("expected first idle frame")
	}
	if !st.IsWalking() {
		t.Fatalf("expected walking, got %s", st.Mode())
	}
}

func TestSettledTickDoesNotAdvanceWalkCycle(t *testing.T) {
	c, surf := newTestCompanion(t, Options{}, false)
	st := c.State()
	st.Target = Point{X: st.Pos.X + 30, Y: st.Pos.Y}

	c.Motion().Tick() // walk frame 0
	c.Motion().Tick() // walk frame 1
	c.Motion().Tick() // snap, settle
	if surf.frame != frames(c, AnimIdle)[0] {
		t.Fatalf("expected idle frame after settling")
	}

	st.Target = Point{X: st.Pos.X + 30, Y: st.Pos.Y}
	c.Motion().Tick()
	if surf.frame != frames(c, AnimWalkRight)[2] {
		t.Fatalf("expected walk cycle to resume at frame 2")
	}
}

func TestAnimatorDoesNotDrawWhileWalking(t *testing.T) {
	c, surf := newTestCompanion(t, Options{Nudger: fixedNudger{}}, false)
	st := c.State()
	st.Target = Point{X: st.Pos.X + 200, Y: st.Pos.Y}
	c.Start()

	if !st.IsWalking() {
		t.Fatalf("expected walking, got %s", st.Mode())
	}
	walk := frames(c, AnimWalkRight)
	for i := 0; i < 5; i++ {
		c.Update(50 * time.Millisecond)
		if surf.frame != walk[0] && surf.frame != walk[1] && surf.frame != walk[2] {
			t.Fatalf("non-walk frame shown while walking")
		}
	}
}

func TestTickSuspendedWhileDragging(t *testing.T) {
	c, _ := newTestCompanion(t, Options{}, false)
	st := c.State()
	st.Target = Point{X: 0, Y: 0}

	c.Input().DragStart(st.Pos.X, st.Pos.Y)
	before := st.Pos
	if d := c.Motion().Tick(); d != 50*time.Millisecond {
		t.Fatalf("expected move cadence while dragging, got %v", d)
	}
	if st.Pos != before {
		t.Fatalf("tick moved a dragged companion to %+v", st.Pos)
	}

	c.Input().DragEnd()
	c.Motion().Tick()
	if st.Pos == before {
		t.Fatalf("expected movement to resume after drop")
	}
}
