package chart

import (
	"fmt"

	"github.com/dfmore/calviz/pkg/views"
)

// SwitchSink receives the ordered effects of a completed view switch.
// The switcher drives the sink; it owns no rendering state itself.
type SwitchSink interface {
	// MarkActiveControl marks the selector control for id as the single
	// active one.
	MarkActiveControl(id views.ID)
	// ApplyView recomputes scales and layout for cfg and reconciles the
	// rendered primitives. initial is false for every switch.
	ApplyView(cfg *views.Config, initial bool)
	// UpdateText replaces summary stats, legend and insights from cfg.
	UpdateText(cfg *views.Config)
}

// Switcher is the view-selection state machine. Its states are exactly the
// registry's view identifiers; it persists for the life of the chart and has
// no terminal state.
type Switcher struct {
	reg    *views.Registry
	active views.ID
	sink   SwitchSink
}

// NewSwitcher builds a switcher starting in the given view.
func NewSwitcher(reg *views.Registry, initial views.ID, sink SwitchSink) *Switcher {
	return &Switcher{reg: reg, active: initial, sink: sink}
}

// Current returns the active view identifier.
func (s *Switcher) Current() views.ID { return s.active }

// Switch transitions to the target view. Switching to the current view is a
// no-op: no re-render, no text update. An identifier missing from the
// registry is a configuration error and fails loudly with ErrUnknownView,
// leaving the current view untouched.
//
// A successful switch is atomic from the caller's perspective: controls,
// scales, layout, reconciliation and ancillary text are all updated before
// Switch returns.
func (s *Switcher) Switch(id views.ID) error {
	if id == s.active {
		return nil
	}
	cfg, ok := s.reg.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownView, id)
	}
	s.sink.MarkActiveControl(id)
	s.sink.ApplyView(cfg, false)
	s.sink.UpdateText(cfg)
	s.active = id
	return nil
}
