package cells

import (
	"sync"
	"time"
)

// AnimatableValue holds the subset of an element's computed properties that
// the animation engine can interpolate: position offsets, size, and colors.
type AnimatableValue struct {
	X, Y          float64
	Width, Height float64
	Fg, Bg        Color
}

// TransitionConfig describes how a single property animates when its
// laid-out value changes.
type TransitionConfig struct {
	Duration time.Duration
	Easing   Easing
}

// transitionState tracks one in-flight interpolation for one property of
// one element.
type transitionState struct {
	from, to AnimatableValue
	started  time.Time
	cfg      TransitionConfig
}

// snapshot is the last value written for an element, plus any transition
// currently animating it.
type snapshot struct {
	value      AnimatableValue
	transition *transitionState
	seenThisFrame bool
}

// Animator holds per-element snapshots of animatable properties and drives
// timed interpolation between them. One Animator belongs to exactly one App
// (or one instance, in a multi-instance runtime) and is ticked once per
// frame, after layout and before render.
type Animator struct {
	mu            sync.Mutex
	snapshots     map[string]*snapshot
	reducedMotion bool
}

// NewAnimator creates an empty animation engine.
func NewAnimator() *Animator {
	return &Animator{snapshots: make(map[string]*snapshot)}
}

// SetReducedMotion enables or disables instant-complete mode: when enabled,
// transitions skip directly to their target value with no intermediate
// frames.
func (a *Animator) SetReducedMotion(enabled bool) {
	a.mu.Lock()
	a.reducedMotion = enabled
	a.mu.Unlock()
}

// Observe reports the newly laid-out value for element id, with its
// configured per-property transitions (nil entries mean "no transition for
// that property, snap immediately"). It returns the value to actually
// render this frame: either the new value directly, or an interpolated
// value mid-transition.
//
// now is passed in rather than read from time.Now so that tests can drive
// the engine deterministically.
func (a *Animator) Observe(id string, now time.Time, newValue AnimatableValue, widthCfg, heightCfg, posCfg, colorCfg *TransitionConfig) AnimatableValue {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap, ok := a.snapshots[id]
	if !ok {
		snap = &snapshot{value: newValue}
		a.snapshots[id] = snap
	}
	snap.seenThisFrame = true

	if a.reducedMotion {
		snap.value = newValue
		snap.transition = nil
		return newValue
	}

	effective := a.currentValue(snap, now)

	changed := snap.value != newValue
	hasAnyCfg := widthCfg != nil || heightCfg != nil || posCfg != nil || colorCfg != nil
	if changed && hasAnyCfg {
		cfg := pickTransitionConfig(effective, newValue, widthCfg, heightCfg, posCfg, colorCfg)
		if cfg != nil {
			snap.transition = &transitionState{from: effective, to: newValue, started: now, cfg: *cfg}
			snap.value = newValue
			return effective
		}
	}
	if !changed {
		return effective
	}

	snap.transition = nil
	snap.value = newValue
	return newValue
}

// pickTransitionConfig chooses which configured transition governs this
// change. Position/size transitions share a config slot per axis; color
// changes use colorCfg. The first applicable, non-nil config wins.
func pickTransitionConfig(from, to AnimatableValue, widthCfg, heightCfg, posCfg, colorCfg *TransitionConfig) *TransitionConfig {
	if (from.X != to.X || from.Y != to.Y) && posCfg != nil {
		return posCfg
	}
	if from.Width != to.Width && widthCfg != nil {
		return widthCfg
	}
	if from.Height != to.Height && heightCfg != nil {
		return heightCfg
	}
	if (!from.Fg.Equal(to.Fg) || !from.Bg.Equal(to.Bg)) && colorCfg != nil {
		return colorCfg
	}
	return nil
}

// currentValue returns the value that should be rendered right now for a
// snapshot: the settled value if no transition is active, or the
// interpolated value at elapsed time otherwise.
func (a *Animator) currentValue(snap *snapshot, now time.Time) AnimatableValue {
	tr := snap.transition
	if tr == nil {
		return snap.value
	}
	t := clampUnit(float64(now.Sub(tr.started)) / float64(tr.cfg.Duration))
	easing := tr.cfg.Easing
	if easing == nil {
		easing = Linear
	}
	f := easing(t)
	v := AnimatableValue{
		X:      lerp(tr.from.X, tr.to.X, f),
		Y:      lerp(tr.from.Y, tr.to.Y, f),
		Width:  lerp(tr.from.Width, tr.to.Width, f),
		Height: lerp(tr.from.Height, tr.to.Height, f),
		Fg:     MixPerceptual(tr.from.Fg, tr.to.Fg, f),
		Bg:     MixPerceptual(tr.from.Bg, tr.to.Bg, f),
	}
	if t >= 1 {
		snap.transition = nil
		snap.value = tr.to
		return tr.to
	}
	return v
}

// HasActive reports whether any transition is still interpolating as of
// now. The frame loop uses this to decide whether to tick at its frame rate
// (an active transition) or at its slower idle interval (fully settled).
func (a *Animator) HasActive(now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, snap := range a.snapshots {
		if snap.transition == nil {
			continue
		}
		if float64(now.Sub(snap.transition.started)) < float64(snap.transition.cfg.Duration) {
			return true
		}
	}
	return false
}

// GC drops snapshots for any element id not observed since the last call
// to GC. Call once per frame, after all Observe calls for that frame.
func (a *Animator) GC() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, snap := range a.snapshots {
		if !snap.seenThisFrame {
			delete(a.snapshots, id)
			continue
		}
		snap.seenThisFrame = false
	}
}

// FrameInterval is the pacing target while any transition is active.
const FrameInterval = 16 * time.Millisecond
