package gallery

import (
	"testing"
	"time"
)

// finish advances the navigator past the animation window.
func finish(n *Navigator, from time.Time) time.Time {
	done := from.Add(AnimationDuration + time.Millisecond)
	n.Step(done)
	return done
}

func testNavigator() *Navigator {
	return NewNavigator(NavigatorConfig{
		ViewportWidth: 1200,
		ContentWidth:  3000,
		StepWidth:     1080,
	})
}

func TestNextAdvancesAndClamps(t *testing.T) {
	n := testNavigator()
	now := time.Unix(0, 0)

	// maxScroll = 3000 - 1200 = 1800.
	if !n.Next(now) {
		t.Fatal("first Next rejected")
	}
	now = finish(n, now)
	if n.Offset() != -1080 {
		t.Errorf("offset after first page = %v, want -1080", n.Offset())
	}

	// Only 720 remain; a full step would overshoot.
	if !n.Next(now) {
		t.Fatal("second Next rejected")
	}
	now = finish(n, now)
	if n.Offset() != -1800 {
		t.Errorf("offset after second page = %v, want -1800", n.Offset())
	}

	// At the right edge.
	if n.Next(now) {
		t.Error("Next at right edge should be rejected")
	}
	if n.Offset() < -1800 {
		t.Errorf("offset %v exceeds clamp -1800", n.Offset())
	}
}

func TestRepeatedNextNeverExceedsClamp(t *testing.T) {
	n := testNavigator()
	now := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		n.Next(now)
		now = finish(n, now)
		if n.Offset() < -1800 {
			t.Fatalf("after %d pages offset %v exceeds clamp", i+1, n.Offset())
		}
	}
}

func TestPrevGatedUntilFirstNext(t *testing.T) {
	n := testNavigator()
	now := time.Unix(0, 0)

	if n.Prev(now) {
		t.Fatal("Prev before any Next should be rejected")
	}

	n.Next(now)
	now = finish(n, now)

	if !n.Prev(now) {
		t.Fatal("Prev after a successful Next should be accepted")
	}
	now = finish(n, now)
	if n.Offset() != 0 {
		t.Errorf("offset after Prev = %v, want 0", n.Offset())
	}

	// Back at the left boundary.
	if n.Prev(now) {
		t.Error("Prev at left boundary should be rejected")
	}
}

func TestCommandsRejectedWhileAnimating(t *testing.T) {
	n := testNavigator()
	now := time.Unix(0, 0)

	if !n.Next(now) {
		t.Fatal("Next rejected")
	}
	mid := now.Add(AnimationDuration / 2)
	n.Step(mid)

	if n.State() != StateAnimating {
		t.Fatal("expected animating state mid-transition")
	}
	if n.Next(mid) {
		t.Error("Next during animation should be a no-op")
	}
	if n.Prev(mid) {
		t.Error("Prev during animation should be a no-op")
	}
}

func TestStepCompletionSnapsToTarget(t *testing.T) {
	n := testNavigator()
	start := time.Unix(0, 0)
	n.Next(start)

	got := n.Step(start.Add(AnimationDuration))
	if got != -1080 {
		t.Errorf("completion offset = %v, want exactly -1080", got)
	}
	if n.State() != StateIdle {
		t.Error("expected idle state after completion")
	}
}

func TestStepEasesMonotonically(t *testing.T) {
	n := testNavigator()
	start := time.Unix(0, 0)
	n.Next(start)

	prev := n.Step(start)
	for ms := 50; ms <= 600; ms += 50 {
		cur := n.Step(start.Add(time.Duration(ms) * time.Millisecond))
		if cur > prev {
			t.Fatalf("offset increased from %v to %v at %dms", prev, cur, ms)
		}
		prev = cur
	}
}

func TestNextRejectedWhenContentFits(t *testing.T) {
	n := NewNavigator(NavigatorConfig{
		ViewportWidth: 1200,
		ContentWidth:  900,
		StepWidth:     1080,
	})
	if n.Next(time.Unix(0, 0)) {
		t.Fatal("Next should be rejected when content fits in the viewport")
	}
	if n.Offset() != 0 {
		t.Errorf("offset = %v, want 0", n.Offset())
	}
}
