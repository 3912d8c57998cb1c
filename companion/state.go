package companion

// Point is a screen coordinate of the companion's top-left corner.
type Point struct {
	X, Y int
}

// Size is a width/height pair in screen pixels.
type Size struct {
	W, H int
}

// Mode is the companion's exclusive behaviour. Walking and reacting are modes,
// so they can never both be active.
type Mode int

const (
	ModeIdle Mode = iota
	ModeWalking
	ModeReacting
	ModeDozing
	ModeSleeping
	ModeWaking
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeWalking:
		return "walking"
	case ModeReacting:
		return "reacting"
	case ModeDozing:
		return "dozing"
	case ModeSleeping:
		return "sleeping"
	case ModeWaking:
		return "waking"
	default:
		return "unknown"
	}
}

// Event drives a Mode transition.
type Event int

const (
	EventStep Event = iota
	EventSettle
	EventReact
	EventReactDone
	EventDoze
	EventAsleep
	EventWake
	EventAwake
)

func (e Event) String() string {
	switch e {
	case EventStep:
		return "step"
	case EventSettle:
		return "settle"
	case EventReact:
		return "react"
	case EventReactDone:
		return "react-done"
	case EventDoze:
		return "doze"
	case EventAsleep:
		return "asleep"
	case EventWake:
		return "wake"
	case EventAwake:
		return "awake"
	default:
		return "unknown"
	}
}

// transitions lists every legal move. A step is accepted from every mode:
// movement pre-empts whatever else is showing.
var transitions = map[Mode]map[Event]Mode{
	ModeIdle: {
		EventStep:  ModeWalking,
		EventReact: ModeReacting,
		EventDoze:  ModeDozing,
	},
	ModeWalking: {
		EventStep:   ModeWalking,
		EventSettle: ModeIdle,
	},
	ModeReacting: {
		EventStep:      ModeWalking,
		EventReactDone: ModeIdle,
	},
	ModeDozing: {
		EventStep:   ModeWalking,
		EventAsleep: ModeSleeping,
		EventWake:   ModeWaking,
	},
	ModeSleeping: {
		EventStep: ModeWalking,
		EventWake: ModeWaking,
	},
	ModeWaking: {
		EventStep:  ModeWalking,
		EventAwake: ModeIdle,
	},
}

// Machine holds the current Mode and applies the transition table.
type Machine struct {
	mode Mode

	// OnTransition, when set, observes every accepted transition.
	OnTransition func(from, to Mode, ev Event)
}

func (m *Machine) Mode() Mode {
	return m.mode
}

// Can reports whether ev is legal from the current mode.
func (m *Machine) Can(ev Event) bool {
	_, ok := transitions[m.mode][ev]
	return ok
}

// Fire applies ev. It returns false and leaves the mode untouched when the
// transition table has no entry for it.
func (m *Machine) Fire(ev Event) bool {
	to, ok := transitions[m.mode][ev]
	if !ok {
		return false
	}
	from := m.mode
	m.mode = to
	if m.OnTransition != nil && from != to {
		m.OnTransition(from, to, ev)
	}
	return true
}

// State is the single owned record every component reads and writes.
type State struct {
	Pos    Point
	Target Point
	Size   Size
	Screen Size

	// Dragging is set while the user holds the companion. A drag overrides
	// both autonomous movement and clamping.
	Dragging   bool
	dragOffset Point

	Machine Machine
}

func (s *State) Mode() Mode {
	return s.Machine.Mode()
}

func (s *State) IsWalking() bool {
	return s.Machine.Mode() == ModeWalking
}

func (s *State) IsReacting() bool {
	return s.Machine.Mode() == ModeReacting
}

// IsResting reports whether the companion is dozing or asleep.
func (s *State) IsResting() bool {
	m := s.Machine.Mode()
	return m == ModeDozing || m == ModeSleeping
}

// Bounds returns the largest top-left coordinate that keeps the whole
// companion on screen.
func (s *State) Bounds() Point {
	return Point{
		X: max(0, s.Screen.W-s.Size.W),
		Y: max(0, s.Screen.H-s.Size.H),
	}
}

// ClampTarget pulls the target into [0, screen-size] on both axes.
func (s *State) ClampTarget() {
	b := s.Bounds()
	s.Target.X = clamp(s.Target.X, 0, b.X)
	s.Target.Y = clamp(s.Target.Y, 0, b.Y)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
