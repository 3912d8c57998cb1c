package prefabs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/milk9111/deskpet/companion"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid companion spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CompanionSpec struct {
	Name     string            `yaml:"name"`
	BaseSize int               `yaml:"base_size"`
	Scale    ScaleSpec         `yaml:"scale"`
	Step     int               `yaml:"step"`
	Timing   TimingSpec        `yaml:"timing"`
	Sleep    SleepSpec         `yaml:"sleep"`
	Keys     KeysSpec          `yaml:"keys"`
	Sprites  map[string]string `yaml:"sprites"`
	Wander   WanderSpec        `yaml:"wander"`
}

type ScaleSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type SpanSpec struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

type TimingSpec struct {
	MoveInterval     time.Duration `yaml:"move_interval"`
	SettleDwell      SpanSpec      `yaml:"settle_dwell"`
	RetargetInterval SpanSpec      `yaml:"retarget_interval"`
	RetargetOffset   int           `yaml:"retarget_offset"`
	FrameInterval    time.Duration `yaml:"frame_interval"`
	LoopDwell        SpanSpec      `yaml:"loop_dwell"`
}

type SleepSpec struct {
	AfterLoops      int `yaml:"after_loops"`
	WakeAfterCycles int `yaml:"wake_after_cycles"`
}

type KeysSpec struct {
	Reaction string `yaml:"reaction"`
	Close    string `yaml:"close"`
}

type WanderSpec struct {
	Script string `yaml:"script"`
}

// LoadCompanionSpec decodes the embedded defaults and then overlays path on
// top, so a user file only needs the fields it changes. An empty path or the
// default name yields the defaults alone.
func LoadCompanionSpec(path string) (*CompanionSpec, error) {
	spec, err := LoadSpec[CompanionSpec](DefaultConfig)
	if err != nil {
		return nil, err
	}

	if path != "" && path != DefaultConfig {
		data, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
		}
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *CompanionSpec) Validate() error {
	var problems []string
	if s.BaseSize <= 0 {
		problems = append(problems, "base_size must be positive")
	}
	if s.Scale.Min <= 0 || s.Scale.Max < s.Scale.Min {
		problems = append(problems, "scale needs 0 < min <= max")
	}
	if s.Step <= 0 {
		problems = append(problems, "step must be positive")
	}
	if s.Timing.MoveInterval <= 0 || s.Timing.FrameInterval <= 0 {
		problems = append(problems, "move_interval and frame_interval must be positive")
	}
	spans := []struct {
		name string
		span SpanSpec
	}{
		{"settle_dwell", s.Timing.SettleDwell},
		{"retarget_interval", s.Timing.RetargetInterval},
		{"loop_dwell", s.Timing.LoopDwell},
	}
	for _, sp := range spans {
		if sp.span.Min <= 0 || sp.span.Max < sp.span.Min {
			problems = append(problems, sp.name+" needs 0 < min <= max")
		}
	}
	if s.Timing.RetargetOffset < 0 {
		problems = append(problems, "retarget_offset must not be negative")
	}
	if s.Sleep.AfterLoops < 0 || s.Sleep.WakeAfterCycles < 0 {
		problems = append(problems, "sleep counts must not be negative")
	}
	for _, name := range companion.RequiredAnimations {
		if s.Sprites[name] == "" {
			problems = append(problems, "missing sprite "+name)
		}
	}
	if _, err := ParseCombo(s.Keys.Reaction); err != nil {
		problems = append(problems, "keys.reaction: "+err.Error())
	}
	if _, err := ParseCombo(s.Keys.Close); err != nil {
		problems = append(problems, "keys.close: "+err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, strings.Join(problems, "; "))
	}
	return nil
}

func (s *CompanionSpec) CompanionTiming() companion.Timing {
	return companion.Timing{
		MoveInterval:     s.Timing.MoveInterval,
		SettleDwell:      s.Timing.SettleDwell.span(),
		RetargetInterval: s.Timing.RetargetInterval.span(),
		RetargetOffset:   s.Timing.RetargetOffset,
		FrameInterval:    s.Timing.FrameInterval,
		LoopDwell:        s.Timing.LoopDwell.span(),
	}
}

func (s *CompanionSpec) SleepPolicy() companion.SleepPolicy {
	return companion.SleepPolicy{
		AfterLoops:      s.Sleep.AfterLoops,
		WakeAfterCycles: s.Sleep.WakeAfterCycles,
	}
}

func (s SpanSpec) span() companion.Span {
	return companion.Span{Min: s.Min, Max: s.Max}
}

// Combo is a key plus the modifiers that must be held with it. Key keeps the
// config spelling and is resolved to a physical key by the input layer.
type Combo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   string
}

// ParseCombo reads strings like "h" or "ctrl+alt+c". Modifier names are case
// insensitive and exactly one non-modifier key is required.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	if strings.TrimSpace(s) == "" {
		return c, errors.New("empty key combo")
	}
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "option":
			c.Alt = true
		case "shift":
			c.Shift = true
		case "":
			return Combo{}, fmt.Errorf("empty key in %q", s)
		default:
			if c.Key != "" {
				return Combo{}, fmt.Errorf("more than one key in %q", s)
			}
			c.Key = strings.ToLower(part)
		}
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("no key in %q", s)
	}
	return c, nil
}

func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	return strings.Join(append(parts, c.Key), "+")
}
