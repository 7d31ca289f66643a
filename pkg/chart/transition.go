package chart

import "time"

// Geometry is the animatable property set of a primitive.
type Geometry struct {
	X, Y, W, H float64
	Opacity    float64
}

// Lerp interpolates between two geometries at progress t in [0,1].
func Lerp(a, b Geometry, t float64) Geometry {
	return Geometry{
		X:       a.X + (b.X-a.X)*t,
		Y:       a.Y + (b.Y-a.Y)*t,
		W:       a.W + (b.W-a.W)*t,
		H:       a.H + (b.H-a.H)*t,
		Opacity: a.Opacity + (b.Opacity-a.Opacity)*t,
	}
}

// easeCubicInOut is the default transition curve.
func easeCubicInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	t *= 2
	if t < 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Transition animates one primitive's geometry from from to to over
// duration, starting at start (delay already applied). It is a pure function
// of time: At never mutates anything.
type Transition struct {
	from, to Geometry
	start    time.Time
	duration time.Duration
	seq      uint64
	onDone   func()
}

// At returns the geometry at the given instant and whether the transition
// has completed.
func (tr *Transition) At(now time.Time) (Geometry, bool) {
	if tr.duration <= 0 || !now.Before(tr.start.Add(tr.duration)) {
		return tr.to, true
	}
	if now.Before(tr.start) {
		return tr.from, false
	}
	p := float64(now.Sub(tr.start)) / float64(tr.duration)
	return Lerp(tr.from, tr.to, easeCubicInOut(p)), false
}

// Target returns the transition's final geometry.
func (tr *Transition) Target() Geometry { return tr.to }

// Animator owns every in-flight transition, keyed by primitive key.
// Scheduling a transition on a key that already has one replaces it:
// last request wins, nothing queues. Completion callbacks fire only for the
// most recently scheduled transition of a key, so a superseded transition can
// never discard a primitive that a newer transition resurrected.
type Animator struct {
	active map[string]*Transition
	seq    map[string]uint64
}

// NewAnimator returns an empty animation driver.
func NewAnimator() *Animator {
	return &Animator{
		active: make(map[string]*Transition),
		seq:    make(map[string]uint64),
	}
}

// Schedule starts (or overrides) the transition for key. now is the frame
// clock reading; delay shifts the start without blocking anything.
func (a *Animator) Schedule(key string, from, to Geometry, d, delay time.Duration, now time.Time, onDone func()) {
	a.seq[key]++
	seq := a.seq[key]
	a.active[key] = &Transition{
		from:     from,
		to:       to,
		start:    now.Add(delay),
		duration: d,
		seq:      seq,
		onDone:   onDone,
	}
}

// Step advances every transition to now, applying the interpolated geometry
// through apply. Completed transitions fire their onDone (if still current)
// and are removed. Returns true while any transition remains in flight.
func (a *Animator) Step(now time.Time, apply func(key string, g Geometry)) bool {
	for key, tr := range a.active {
		g, done := tr.At(now)
		apply(key, g)
		if done {
			delete(a.active, key)
			if tr.onDone != nil && tr.seq == a.seq[key] {
				tr.onDone()
			}
		}
	}
	return len(a.active) > 0
}

// FinishAll jumps every in-flight transition to its final geometry and fires
// the pending completions. Used by static export, which wants the settled
// frame rather than a playback.
func (a *Animator) FinishAll(apply func(key string, g Geometry)) {
	for key, tr := range a.active {
		apply(key, tr.to)
		delete(a.active, key)
		if tr.onDone != nil && tr.seq == a.seq[key] {
			tr.onDone()
		}
	}
}

// InFlight reports the number of active transitions.
func (a *Animator) InFlight() int { return len(a.active) }
