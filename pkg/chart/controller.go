package chart

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dfmore/calviz/pkg/model"
	"github.com/dfmore/calviz/pkg/views"
)

// Default animation timing. The first render reveals bars left to right with
// a per-month stagger; view switches are quicker and start all bars at once.
const (
	DefaultInitialDuration = 800 * time.Millisecond
	DefaultSwitchDuration  = 400 * time.Millisecond
	DefaultStagger         = 60 * time.Millisecond
)

// Options configures a Controller.
type Options struct {
	Width   float64 // chart area width in pixels
	Height  float64 // chart area height in pixels
	Padding float64 // band padding fraction, 0 <= p < 1

	InitialDuration time.Duration
	SwitchDuration  time.Duration
	Stagger         time.Duration

	// Panels receives stats/legend/insight updates; Controls receives the
	// active-selector mark. Either may be nil, in which case those updates
	// are skipped silently, matching a missing container.
	Panels   TextPanel
	Controls ViewControls

	// Clock supplies the frame time. Defaults to time.Now.
	Clock func() time.Time
	// Logf receives diagnostic messages. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

func (o *Options) fill() {
	if o.Width == 0 {
		o.Width = 720
	}
	if o.Height == 0 {
		o.Height = 320
	}
	if o.Padding == 0 {
		o.Padding = 0.2
	}
	if o.InitialDuration == 0 {
		o.InitialDuration = DefaultInitialDuration
	}
	if o.SwitchDuration == 0 {
		o.SwitchDuration = DefaultSwitchDuration
	}
	if o.Stagger == 0 {
		o.Stagger = DefaultStagger
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logf == nil {
		o.Logf = log.Printf
	}
}

// State is the single mutable chart state: which view is active, whether the
// primitive tree exists yet, and the current scales. Exactly one State per
// chart instance, owned by the controller, mutated in place for the life of
// the page.
type State struct {
	Active      views.ID
	Constructed bool
	Band        BandScale
	Linear      LinearScale
}

// node is a rendered primitive plus its currently displayed geometry and its
// hover handlers. Handlers are rebound on every reconciliation pass.
type node struct {
	prim    Primitive
	geom    Geometry
	onEnter func(px, py float64)
	onLeave func()
}

// Controller orchestrates one chart: it owns the engines, the single State
// and Tooltip, and the rendered primitive tree. At most one primitive tree
// is ever constructed per surface.
type Controller struct {
	reg     *views.Registry
	data    *model.Collection
	surface Surface
	opts    Options

	state    State
	anim     *Animator
	nodes    map[string]*node
	order    []string
	tooltip  Tooltip
	switcher *Switcher

	visibleOnce sync.Once
}

// New builds a controller. Nothing is rendered until Construct is called.
func New(reg *views.Registry, data *model.Collection, surface Surface, opts Options) *Controller {
	opts.fill()
	c := &Controller{
		reg:     reg,
		data:    data,
		surface: surface,
		opts:    opts,
		anim:    NewAnimator(),
		nodes:   make(map[string]*node),
	}
	c.switcher = NewSwitcher(reg, reg.Default(), c)
	return c
}

// Construct performs the one-time build of the primitive tree: scales,
// layout, initial staggered reveal, and ancillary text. It is idempotent:
// a second call after success is a no-op. When the surface is unavailable it
// logs once and returns ErrSurfaceUnavailable without raising; Constructed
// stays false so a later attempt can still succeed.
func (c *Controller) Construct() error {
	if c.state.Constructed {
		return nil
	}
	if c.surface == nil || !c.surface.Ready() {
		c.opts.Logf("chart: rendering surface unavailable, construction aborted")
		return ErrSurfaceUnavailable
	}
	cfg, ok := c.reg.Get(c.reg.Default())
	if !ok {
		c.opts.Logf("chart: default view %q not configured", c.reg.Default())
		return ErrUnknownView
	}

	c.state.Active = cfg.ID
	c.rescale(cfg)
	c.render(cfg, true)
	c.MarkActiveControl(cfg.ID)
	c.UpdateText(cfg)
	c.state.Constructed = true
	return nil
}

// VisibilityHook returns a one-shot trigger suitable for a viewport
// visibility signal: the first invocation constructs the chart, every later
// one is ignored. Construction failures are logged inside Construct; an
// explicit retry is still possible by calling Construct directly.
func (c *Controller) VisibilityHook() func() {
	return func() {
		c.visibleOnce.Do(func() { _ = c.Construct() })
	}
}

// SwitchView transitions to the named view. Delegates to the switcher
// state machine; switching to the current view is a no-op.
func (c *Controller) SwitchView(id views.ID) error {
	if !c.state.Constructed {
		return ErrSurfaceUnavailable
	}
	return c.switcher.Switch(id)
}

// CurrentView returns the active view identifier.
func (c *Controller) CurrentView() views.ID { return c.switcher.Current() }

// Constructed reports whether the primitive tree exists.
func (c *Controller) Constructed() bool { return c.state.Constructed }

// Tooltip exposes the shared hover overlay.
func (c *Controller) Tooltip() *Tooltip { return &c.tooltip }

// --- SwitchSink ------------------------------------------------------------

// MarkActiveControl forwards the active-selector mark, skipping silently
// when the control strip or its anchor is missing.
func (c *Controller) MarkActiveControl(id views.ID) {
	if c.opts.Controls == nil {
		return
	}
	if err := c.opts.Controls.MarkActive(id); err != nil && !errors.Is(err, ErrNoAnchor) {
		c.opts.Logf("chart: mark control %q: %v", id, err)
	}
}

// ApplyView recomputes the numeric scale for the view's y-axis maximum and
// reconciles the primitive tree against the new layout. The band scale is
// stable across views because month ordering is shared by all datasets.
func (c *Controller) ApplyView(cfg *views.Config, initial bool) {
	c.state.Active = cfg.ID
	c.rescale(cfg)
	c.render(cfg, initial)
}

// UpdateText replaces stats, legend and insights from the view config.
// Each update is independent: a missing anchor skips only that update.
func (c *Controller) UpdateText(cfg *views.Config) {
	if c.opts.Panels == nil {
		return
	}
	if err := c.opts.Panels.SetStats(cfg.Stats); err != nil && !errors.Is(err, ErrNoAnchor) {
		c.opts.Logf("chart: set stats: %v", err)
	}
	if err := c.opts.Panels.SetLegend(cfg.LegendTitle, legendEntries(cfg)); err != nil && !errors.Is(err, ErrNoAnchor) {
		c.opts.Logf("chart: set legend: %v", err)
	}
	if err := c.opts.Panels.SetInsights(cfg.Insights); err != nil && !errors.Is(err, ErrNoAnchor) {
		c.opts.Logf("chart: set insights: %v", err)
	}
}

// --- pipeline --------------------------------------------------------------

func (c *Controller) rescale(cfg *views.Config) {
	ds := c.data.Dataset(cfg.Dataset)
	if len(c.state.Band.Labels()) == 0 {
		c.state.Band = NewBandScale(ds.MonthLabels(), c.opts.Width, c.opts.Padding)
	}
	if c.state.Linear.Max() != cfg.YMax || c.state.Linear.Height() != c.opts.Height {
		c.state.Linear = NewLinearScale(cfg.YMax, c.opts.Height)
	}
}

// render reconciles the current primitive tree against the layout implied by
// cfg. Entering primitives start at the baseline; when initial is true their
// transitions are staggered by month index for a left-to-right reveal.
// Exiting primitives collapse to the baseline and are discarded when their
// transition completes. Hover handlers are rebound for every surviving node.
func (c *Controller) render(cfg *views.Config, initial bool) {
	ds := c.data.Dataset(cfg.Dataset)
	target := BuildPrimitives(cfg, ds, c.state.Band, c.state.Linear)

	old := make([]Primitive, 0, len(c.order))
	for _, key := range c.order {
		if n, ok := c.nodes[key]; ok {
			old = append(old, n.prim)
		}
	}

	plan := Diff(old, target, func(p Primitive) string { return p.Key })

	duration := c.opts.SwitchDuration
	if initial {
		duration = c.opts.InitialDuration
	}
	now := c.opts.Clock()
	baseline := c.state.Linear.Height()

	for _, p := range plan.Exit {
		key := p.Key
		n := c.nodes[key]
		c.anim.Schedule(key, n.geom, baselineGeom(p, baseline), duration, 0, now, func() {
			c.removeNode(key)
		})
	}

	for _, p := range plan.Enter {
		start := baselineGeom(p, baseline)
		n := &node{prim: p, geom: start}
		c.nodes[p.Key] = n
		var delay time.Duration
		if initial {
			delay = time.Duration(p.Index) * c.opts.Stagger
		}
		c.anim.Schedule(p.Key, start, p.Geom, duration, delay, now, nil)
	}

	for _, ch := range plan.Update {
		n := c.nodes[ch.New.Key]
		n.prim = ch.New
		c.anim.Schedule(ch.New.Key, n.geom, ch.New.Geom, duration, 0, now, nil)
	}

	// Draw order follows the new layout; exiting primitives stay on top of
	// the baseline until their collapse finishes.
	order := make([]string, 0, len(target)+len(plan.Exit))
	for _, p := range target {
		order = append(order, p.Key)
	}
	for _, p := range plan.Exit {
		order = append(order, p.Key)
	}
	c.order = order

	c.bindHandlers()
}

// bindHandlers (re)binds hover handlers on every reconciliation pass. The
// closures capture the node's current metadata, so a superseded render can
// never feed stale content to the tooltip.
func (c *Controller) bindHandlers() {
	for _, key := range c.order {
		n, ok := c.nodes[key]
		if !ok {
			continue
		}
		meta := n.prim.Meta
		n.onEnter = func(px, py float64) { c.tooltip.Show(meta, px, py) }
		n.onLeave = func() { c.tooltip.Hide() }
	}
}

func (c *Controller) removeNode(key string) {
	delete(c.nodes, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Hover dispatches a pointer-enter on the primitive with the given key.
func (c *Controller) Hover(key string, px, py float64) {
	if n, ok := c.nodes[key]; ok && n.onEnter != nil {
		n.onEnter(px, py)
	}
}

// Unhover dispatches a pointer-leave.
func (c *Controller) Unhover(key string) {
	if n, ok := c.nodes[key]; ok && n.onLeave != nil {
		n.onLeave()
	}
}

// Advance steps the frame clock to now, applies every in-flight transition,
// and paints the resulting frame. Returns true while transitions remain.
func (c *Controller) Advance(now time.Time) bool {
	if !c.state.Constructed {
		return false
	}
	active := c.anim.Step(now, c.applyGeom)
	if err := c.surface.Frame(c.Frame()); err != nil {
		c.opts.Logf("chart: paint frame: %v", err)
	}
	return active
}

// Settle fast-forwards every in-flight transition to its final geometry and
// paints the settled frame. Static exporters use this instead of playback.
func (c *Controller) Settle() {
	if !c.state.Constructed {
		return
	}
	c.anim.FinishAll(c.applyGeom)
	if err := c.surface.Frame(c.Frame()); err != nil {
		c.opts.Logf("chart: paint frame: %v", err)
	}
}

func (c *Controller) applyGeom(key string, g Geometry) {
	if n, ok := c.nodes[key]; ok {
		n.geom = g
	}
}

// Frame returns the current display list: every rendered primitive with its
// currently displayed geometry, in draw order.
func (c *Controller) Frame() []Primitive {
	out := make([]Primitive, 0, len(c.order))
	for _, key := range c.order {
		n, ok := c.nodes[key]
		if !ok {
			continue
		}
		p := n.prim
		p.Geom = n.geom
		out = append(out, p)
	}
	return out
}

// NodeCount reports the number of live primitives.
func (c *Controller) NodeCount() int { return len(c.nodes) }
