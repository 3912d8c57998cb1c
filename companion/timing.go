package companion

import (
	"math/rand/v2"
	"time"
)

// Span is an inclusive range a random delay is drawn from.
type Span struct {
	Min, Max time.Duration
}

// Timing holds every cadence and dwell the companion runs on.
type Timing struct {
	MoveInterval     time.Duration
	SettleDwell      Span
	RetargetInterval Span
	RetargetOffset   int
	FrameInterval    time.Duration
	LoopDwell        Span
}

// DefaultTiming matches the reference behaviour.
func DefaultTiming() Timing {
	return Timing{
		MoveInterval:     50 * time.Millisecond,
		SettleDwell:      Span{Min: 500 * time.Millisecond, Max: 2000 * time.Millisecond},
		RetargetInterval: Span{Min: 5 * time.Second, Max: 10 * time.Second},
		RetargetOffset:   200,
		FrameInterval:    100 * time.Millisecond,
		LoopDwell:        Span{Min: 5 * time.Second, Max: 10 * time.Second},
	}
}

// SleepPolicy controls dozing. AfterLoops of zero disables it.
type SleepPolicy struct {
	AfterLoops      int
	WakeAfterCycles int
}

// pick draws a millisecond-granular duration from s.
func (s Span) pick(rng *rand.Rand) time.Duration {
	lo, hi := s.Min, s.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	steps := int64((hi - lo) / time.Millisecond)
	if steps <= 0 {
		return lo
	}
	return lo + time.Duration(rng.Int64N(steps+1))*time.Millisecond
}

// RollSize picks the companion's lifetime dimensions from base scaled by a
// factor in [minScale, maxScale].
func RollSize(rng *rand.Rand, base int, minScale, maxScale float64) Size {
	if maxScale < minScale {
		minScale, maxScale = maxScale, minScale
	}
	f := minScale + rng.Float64()*(maxScale-minScale)
	side := max(1, int(float64(base)*f))
	return Size{W: side, H: side}
}
