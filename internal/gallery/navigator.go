package gallery

import (
	"math"
	"time"
)

// NavState is the navigator's animation state.
type NavState int

const (
	StateIdle NavState = iota
	StateAnimating
)

// AnimationDuration is the fixed transition length for one page.
const AnimationDuration = 600 * time.Millisecond

// Navigator pages a signed horizontal pixel offset across the composed
// grid. The offset is 0 at the left edge and decreases as the gallery
// advances; after clamping it never exceeds the content overflow.
//
// Commands are rejected, not queued, while a transition is in flight.
// The backward command stays gated until the first successful forward
// page of the session.
type Navigator struct {
	viewportWidth float64
	contentWidth  float64
	stepWidth     float64 // pixels per full page (one sequence)

	offset           float64
	state            NavState
	navigatedForward bool

	animFrom  float64
	animTo    float64
	animStart time.Time
}

// NavigatorConfig sizes a Navigator.
type NavigatorConfig struct {
	ViewportWidth float64
	ContentWidth  float64
	StepWidth     float64
}

// NewNavigator creates a navigator at the left boundary.
func NewNavigator(cfg NavigatorConfig) *Navigator {
	return &Navigator{
		viewportWidth: cfg.ViewportWidth,
		contentWidth:  cfg.ContentWidth,
		stepWidth:     cfg.StepWidth,
	}
}

// maxScroll is the largest magnitude the offset may reach.
func (n *Navigator) maxScroll() float64 {
	overflow := n.contentWidth - n.viewportWidth
	if overflow < 0 {
		return 0
	}
	return overflow
}

// Next pages forward by one sequence width, or by the remaining
// overflow when less than a full page is left. Returns false when the
// command is rejected (animating, or already at the right edge).
func (n *Navigator) Next(now time.Time) bool {
	if n.state == StateAnimating {
		return false
	}
	remaining := n.maxScroll() + n.offset
	if remaining <= 0 {
		return false
	}
	delta := math.Min(n.stepWidth, remaining)
	n.startAnimation(now, n.offset-delta)
	n.navigatedForward = true
	return true
}

// Prev pages backward, clamping at the left boundary. It is rejected
// until Next has succeeded at least once this session.
func (n *Navigator) Prev(now time.Time) bool {
	if n.state == StateAnimating {
		return false
	}
	if !n.navigatedForward {
		return false
	}
	if n.offset >= 0 {
		return false
	}
	delta := math.Min(n.stepWidth, -n.offset)
	n.startAnimation(now, n.offset+delta)
	return true
}

func (n *Navigator) startAnimation(now time.Time, target float64) {
	n.animFrom = n.offset
	n.animTo = target
	n.animStart = now
	n.state = StateAnimating
}

// Step advances the animation to the given timestamp and returns the
// current offset. Call once per frame; outside a transition it simply
// reports the offset.
func (n *Navigator) Step(now time.Time) float64 {
	if n.state != StateAnimating {
		return n.offset
	}
	t := float64(now.Sub(n.animStart)) / float64(AnimationDuration)
	if t >= 1 {
		n.offset = n.animTo
		n.state = StateIdle
		return n.offset
	}
	if t < 0 {
		t = 0
	}
	n.offset = n.animFrom + (n.animTo-n.animFrom)*easeOutCubic(t)
	return n.offset
}

// Offset returns the current signed offset without advancing time.
func (n *Navigator) Offset() float64 { return n.offset }

// State returns the current animation state.
func (n *Navigator) State() NavState { return n.state }

// HasNavigatedForward reports whether Next has ever succeeded.
func (n *Navigator) HasNavigatedForward() bool { return n.navigatedForward }

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
