package companion

import "testing"

func TestScriptNudgerResultIsClamped(t *testing.T) {
	n, err := NewScriptNudger("push", []byte(`
dx = 1000
dy = -max_offset
`))
	if err != nil {
		t.Fatalf("NewScriptNudger: %v", err)
	}

	c, _ := newTestCompanion(t, Options{Nudger: n}, false)
	st := c.State()
	c.Wanderer().Retarget()

	if st.Target != (Point{X: 700, Y: 50}) {
		t.Fatalf("expected (700,50), got %+v", st.Target)
	}
}

func TestScriptNudgerSeesState(t *testing.T) {
	n, err := NewScriptNudger("center", []byte(`
dx = screen_w / 2 - width / 2 - target_x
dy = screen_h / 2 - height / 2 - target_y
`))
	if err != nil {
		t.Fatalf("NewScriptNudger: %v", err)
	}

	c, _ := newTestCompanion(t, Options{Nudger: n}, false)
	st := c.State()
	st.Target = Point{X: 10, Y: 480}
	c.Wanderer().Retarget()

	if st.Target != (Point{X: 350, Y: 250}) {
		t.Fatalf("expected script to steer to (350,250), got %+v", st.Target)
	}
}

func TestScriptNudgerRuntimeErrorFallsBack(t *testing.T) {
	n, err := NewScriptNudger("broken", []byte(`
s := "a"
dx = s - max_offset
`))
	if err != nil {
		t.Fatalf("NewScriptNudger: %v", err)
	}

	c, _ := newTestCompanion(t, Options{Nudger: n}, false)
	st := c.State()
	st.Target = Point{X: 350, Y: 250}
	c.Wanderer().Retarget()

	if abs(st.Target.X-350) > 200 || abs(st.Target.Y-250) > 200 {
		t.Fatalf("fallback offset out of range: %+v", st.Target)
	}
}

func TestScriptNudgerCompileError(t *testing.T) {
	if _, err := NewScriptNudger("bad", []byte(`dx = `)); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestRandomNudgerZeroOffset(t *testing.T) {
	dx, dy, err := RandomNudger{}.Nudge(nil, testRand(), 0)
	if err != nil || dx != 0 || dy != 0 {
		t.Fatalf("expected zero offset, got %d,%d,%v", dx, dy, err)
	}
}
