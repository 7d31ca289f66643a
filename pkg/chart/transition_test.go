package chart

import (
	"math"
	"testing"
	"time"
)

func TestEaseCubicInOut(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
		{0.25, 0.0625},  // 4t³ below the midpoint
		{0.75, 0.9375},  // mirror above
	}
	for _, tc := range cases {
		if got := easeCubicInOut(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("easeCubicInOut(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := Geometry{X: 0, Y: 320, W: 48, H: 0, Opacity: 0}
	b := Geometry{X: 0, Y: 100, W: 48, H: 220, Opacity: 1}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(_, _, 0) = %+v, want start", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(_, _, 1) = %+v, want end", got)
	}
	mid := Lerp(a, b, 0.5)
	if mid.Y != 210 || mid.H != 110 || mid.Opacity != 0.5 {
		t.Errorf("Lerp midpoint = %+v", mid)
	}
}

func TestTransitionAt(t *testing.T) {
	start := time.Unix(1000, 0)
	tr := &Transition{
		from:     Geometry{H: 0},
		to:       Geometry{H: 100},
		start:    start,
		duration: 400 * time.Millisecond,
	}

	if g, done := tr.At(start.Add(-time.Second)); done || g.H != 0 {
		t.Errorf("before start: geom %v done %v", g.H, done)
	}
	if g, done := tr.At(start.Add(200 * time.Millisecond)); done || g.H != 50 {
		t.Errorf("midpoint: geom %v done %v, want 50 in flight", g.H, done)
	}
	if g, done := tr.At(start.Add(time.Second)); !done || g.H != 100 {
		t.Errorf("after end: geom %v done %v, want settled 100", g.H, done)
	}
}

func TestTransitionZeroDuration(t *testing.T) {
	tr := &Transition{to: Geometry{H: 42}}
	if g, done := tr.At(time.Unix(0, 0)); !done || g.H != 42 {
		t.Errorf("zero duration: geom %v done %v", g.H, done)
	}
}

func TestAnimatorLastWriteWins(t *testing.T) {
	a := NewAnimator()
	now := time.Unix(1000, 0)

	var firstDone, secondDone bool
	a.Schedule("k", Geometry{}, Geometry{H: 10}, 100*time.Millisecond, 0, now,
		func() { firstDone = true })
	// Replaces the first before it completes.
	a.Schedule("k", Geometry{}, Geometry{H: 20}, 100*time.Millisecond, 0, now,
		func() { secondDone = true })

	if a.InFlight() != 1 {
		t.Fatalf("InFlight = %d, want 1 after replacement", a.InFlight())
	}

	var final Geometry
	active := a.Step(now.Add(time.Second), func(_ string, g Geometry) { final = g })
	if active {
		t.Error("Step reported in-flight after everything completed")
	}
	if final.H != 20 {
		t.Errorf("final geometry H = %v, want the replacement's 20", final.H)
	}
	if firstDone {
		t.Error("superseded transition fired its completion")
	}
	if !secondDone {
		t.Error("current transition never fired its completion")
	}
}

func TestAnimatorDelayShiftsStart(t *testing.T) {
	a := NewAnimator()
	now := time.Unix(1000, 0)
	a.Schedule("k", Geometry{H: 0}, Geometry{H: 100}, 100*time.Millisecond, 300*time.Millisecond, now, nil)

	var g Geometry
	a.Step(now.Add(150*time.Millisecond), func(_ string, got Geometry) { g = got })
	if g.H != 0 {
		t.Errorf("geometry before delayed start = %v, want the from value", g.H)
	}
	if a.InFlight() != 1 {
		t.Error("delayed transition dropped early")
	}

	a.Step(now.Add(time.Second), func(_ string, got Geometry) { g = got })
	if g.H != 100 || a.InFlight() != 0 {
		t.Errorf("after completion: H=%v inflight=%d", g.H, a.InFlight())
	}
}

func TestAnimatorFinishAll(t *testing.T) {
	a := NewAnimator()
	now := time.Unix(1000, 0)
	done := 0
	finals := map[string]Geometry{}

	a.Schedule("a", Geometry{}, Geometry{H: 1}, time.Second, 0, now, func() { done++ })
	a.Schedule("b", Geometry{}, Geometry{H: 2}, time.Second, 500*time.Millisecond, now, func() { done++ })

	a.FinishAll(func(key string, g Geometry) { finals[key] = g })

	if a.InFlight() != 0 {
		t.Errorf("InFlight = %d after FinishAll", a.InFlight())
	}
	if done != 2 {
		t.Errorf("completions fired = %d, want 2", done)
	}
	if finals["a"].H != 1 || finals["b"].H != 2 {
		t.Errorf("final geometries = %v", finals)
	}
}
