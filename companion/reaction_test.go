package companion

import (
	"testing"
	"time"
)

func TestTriggerWhileWalkingIsDropped(t *testing.T) {
	c, surf := newTestCompanion(t, Options{}, false)
	st := c.State()
	st.Target = Point{X: st.Pos.X + 100, Y: st.Pos.Y}
	c.Motion().Tick()

	current := c.Animator().Current()
	shown := surf.frame
	if c.Reactions().Trigger() {
		t.Fatalf("reaction started while walking")
	}
	if st.IsReacting() {
		t.Fatalf("isReacting set while walking")
	}
	if c.Animator().Current() != current {
		t.Fatalf("animation changed from %q to %q", current, c.Animator().Current())
	}
	if surf.frame != shown {
		t.Fatalf("displayed frame changed")
	}
}

func TestTriggerWhileReactingIsDropped(t *testing.T) {
	c, _ := newTestCompanion(t, Options{}, false)
	if !c.Reactions().Trigger() {
		t.Fatalf("expected first trigger to start")
	}
	cycle := c.Animator().Cycle()
	if c.Reactions().Trigger() {
		t.Fatalf("second trigger restarted the reaction")
	}
	if c.Animator().Cycle() != cycle {
		t.Fatalf("cycle reset by a dropped trigger")
	}
}

func TestReactionReturnsToIdleLoop(t *testing.T) {
	c, surf := newTestCompanion(t, Options{Nudger: fixedNudger{}}, false)
	c.Start()
	st := c.State()

	if !c.Reactions().Trigger() {
		t.Fatalf("expected reaction to start from idle")
	}
	if surf.frame != frames(c, AnimReaction)[0] {
		t.Fatalf("expected first reaction frame")
	}

	// Five frames at 100ms, then a dwell of at most 10s.
	for i := 0; i < 120 && st.IsReacting(); i++ {
		c.Update(100 * time.Millisecond)
	}
	if st.Mode() != ModeIdle {
		t.Fatalf("expected idle after reaction, got %s", st.Mode())
	}
	if !c.Animator().InIdleLoop() {
		t.Fatalf("expected idle loop after reaction, playing %q", c.Animator().Current())
	}
}

func TestMotionPreemptsReaction(t *testing.T) {
	cases := []struct {
		name        string
		walkFirst   bool
		wantRestore string
	}{
		{"no_previous_walk", false, AnimIdle},
		{"after_walk_right", true, AnimWalkRight},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, surf := newTestCompanion(t, Options{}, false)
			st := c.State()
			if tc.walkFirst {
				st.Target = Point{X: st.Pos.X + 30, Y: st.Pos.Y}
				for i := 0; i < 4; i++ {
					c.Motion().Tick()
				}
				if st.Mode() != ModeIdle {
					t.Fatalf("expected to settle, got %s", st.Mode())
				}
			}

			if !c.Reactions().Trigger() {
				t.Fatalf("expected reaction to start")
			}
			st.Target = Point{X: st.Pos.X + 100, Y: st.Pos.Y}
			c.Motion().Tick()

			if st.IsReacting() {
				t.Fatalf("reaction survived a motion tick")
			}
			if !st.IsWalking() {
				t.Fatalf("expected walking, got %s", st.Mode())
			}
			if got := c.Animator().Current(); got != tc.wantRestore {
				t.Fatalf("expected %q restored, got %q", tc.wantRestore, got)
			}
			if surf.frame == frames(c, AnimReaction)[0] {
				t.Fatalf("reaction frame still shown")
			}

			for i := 0; i < 20 && st.IsWalking(); i++ {
				c.Motion().Tick()
			}
			if !c.Animator().InIdleLoop() {
				t.Fatalf("expected idle loop after settling, playing %q", c.Animator().Current())
			}
		})
	}
}

func TestSettledTickKeepsReactionFrame(t *testing.T) {
	c, surf := newTestCompanion(t, Options{Nudger: fixedNudger{}}, false)
	c.Start()
	st := c.State()

	if !c.Reactions().Trigger() {
		t.Fatalf("expected reaction to start from idle")
	}
	shown := surf.frame
	if shown != frames(c, AnimReaction)[0] {
		t.Fatalf("expected first reaction frame")
	}

	if st.Pos != st.Target {
		t.Fatalf("expected a settled companion, pos %v target %v", st.Pos, st.Target)
	}
	c.Motion().Tick()

	if surf.frame != shown {
		t.Fatalf("settled tick replaced the reaction frame")
	}
	if !st.IsReacting() {
		t.Fatalf("settled tick ended the reaction, mode %s", st.Mode())
	}
}
