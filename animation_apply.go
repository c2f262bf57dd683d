package cells

import (
	"fmt"
	"time"
)

// animID returns a stable per-element key for the animator's snapshot
// table. Elements in this tree are mutated in place and persist across
// frames (they are not rebuilt on every render), so pointer identity is a
// stable id without requiring callers to assign one explicitly.
func (e *Element) animID() string {
	return fmt.Sprintf("%p", e)
}

// hasTransitions reports whether any animatable property of this element
// is configured to transition rather than snap.
func (e *Element) hasTransitions() bool {
	return e.widthTransition != nil || e.heightTransition != nil ||
		e.posTransition != nil || e.colorTransition != nil
}

// animatableFg returns the color an in-flight color transition should
// track for this element's foreground: its explicit text color if set, or
// the zero value (default) otherwise.
func (e *Element) animatableFg() Color {
	if e.textStyleSet {
		return e.textStyle.Fg
	}
	return Color{}
}

// animatableBg returns the color an in-flight color transition should
// track for this element's background.
func (e *Element) animatableBg() Color {
	if e.background != nil {
		return e.background.Bg
	}
	return Color{}
}

// applyAnimations walks the freshly laid-out tree, feeding every
// transition-configured element's new geometry and colors through the
// animator. Elements mid-transition get their animated* override fields
// populated so the paint pass that follows renders the interpolated frame
// instead of jumping straight to the target value. Must run after layout
// (Calculate) and before the paint walk (RenderTree).
func applyAnimations(root *Element, animator *Animator, now time.Time) {
	if root == nil || animator == nil {
		return
	}
	walkAnimated(root, animator, now)
}

func walkAnimated(e *Element, animator *Animator, now time.Time) {
	e.animatedRect = nil
	e.animatedFg = nil
	e.animatedBg = nil

	if e.hasTransitions() {
		rect := e.layout.Rect
		newValue := AnimatableValue{
			X:      float64(rect.X),
			Y:      float64(rect.Y),
			Width:  float64(rect.Width),
			Height: float64(rect.Height),
			Fg:     e.animatableFg(),
			Bg:     e.animatableBg(),
		}

		effective := animator.Observe(e.animID(), now, newValue,
			e.widthTransition, e.heightTransition, e.posTransition, e.colorTransition)

		if effective != newValue {
			animatedRect := Rect{
				X:      int(effective.X),
				Y:      int(effective.Y),
				Width:  int(effective.Width),
				Height: int(effective.Height),
			}
			e.animatedRect = &animatedRect
			fg := effective.Fg
			bg := effective.Bg
			e.animatedFg = &fg
			e.animatedBg = &bg
		}
	}

	for _, child := range e.children {
		walkAnimated(child, animator, now)
	}
}
