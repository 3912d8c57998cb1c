package companion

import (
	"errors"
	"fmt"
	"image"
)

// Animation names the registry knows about.
const (
	AnimIdle        = "idle"
	AnimWalkLeft    = "walk-left"
	AnimWalkRight   = "walk-right"
	AnimReaction    = "reaction"
	AnimIdleToSleep = "idle-to-sleep"
	AnimSleep       = "sleep"
	AnimSleepToIdle = "sleep-to-idle"
)

// RequiredAnimations must be registered before a companion can start.
var RequiredAnimations = []string{AnimIdle, AnimWalkLeft, AnimWalkRight, AnimReaction}

// SleepAnimations enable dozing when all three are registered.
var SleepAnimations = []string{AnimIdleToSleep, AnimSleep, AnimSleepToIdle}

var (
	ErrEmptySequence    = errors.New("companion: empty frame sequence")
	ErrUnknownAnimation = errors.New("companion: unknown animation")
	ErrRegistrySealed   = errors.New("companion: frame registry is sealed")
)

// Registry holds the pre-scaled frame sequence for each animation name. It is
// filled once at startup and sealed when a companion takes ownership of it.
type Registry struct {
	sets   map[string][]image.Image
	sealed bool
}

func NewRegistry() *Registry {
	return &Registry{sets: make(map[string][]image.Image)}
}

// Register stores a copy of frames under name.
func (r *Registry) Register(name string, frames []image.Image) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if len(frames) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptySequence, name)
	}
	r.sets[name] = append([]image.Image(nil), frames...)
	return nil
}

// Frames returns the sequence for name.
func (r *Registry) Frames(name string) ([]image.Image, bool) {
	frames, ok := r.sets[name]
	return frames, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.sets[name]
	return ok
}

// Require returns ErrUnknownAnimation naming the first missing animation.
func (r *Registry) Require(names ...string) error {
	for _, name := range names {
		if !r.Has(name) {
			return fmt.Errorf("%w: %s", ErrUnknownAnimation, name)
		}
	}
	return nil
}

func (r *Registry) seal() {
	r.sealed = true
}

func (r *Registry) first(name string) image.Image {
	frames, ok := r.sets[name]
	if !ok {
		return nil
	}
	return frames[0]
}
