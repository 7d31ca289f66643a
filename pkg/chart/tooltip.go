package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dfmore/calviz/pkg/model"
)

// tooltipOffset is the fixed pixel offset from the pointer.
const tooltipOffset = 12

// Tooltip is the single shared hover overlay. The most recent hover event
// wins: there is exactly one instance per chart, its content and position are
// overwritten on every pointer-enter, and pointer-leave hides it immediately
// with no transition.
type Tooltip struct {
	visible bool
	meta    model.SegmentMeta
	x, y    float64
}

// Show positions the overlay at the pointer plus the fixed offset and fills
// it from the hovered segment's metadata.
func (t *Tooltip) Show(meta model.SegmentMeta, px, py float64) {
	t.meta = meta
	t.x = px + tooltipOffset
	t.y = py + tooltipOffset
	t.visible = true
}

// Hide makes the overlay invisible. Content is left in place; it is
// overwritten by the next Show.
func (t *Tooltip) Hide() { t.visible = false }

// Visible reports whether the overlay is shown.
func (t *Tooltip) Visible() bool { return t.visible }

// Position returns the overlay's current anchor point.
func (t *Tooltip) Position() (x, y float64) { return t.x, t.y }

// Text renders the overlay's display text from the hovered segment:
// month, key label, value, and the month's total.
func (t *Tooltip) Text() string {
	var sb strings.Builder
	sb.WriteString(t.meta.Month)
	sb.WriteString(" · ")
	sb.WriteString(t.meta.Label)
	sb.WriteString(": ")
	sb.WriteString(trimFloat(t.meta.Value))
	if t.meta.MonthTotal != t.meta.Value {
		fmt.Fprintf(&sb, " of %s", trimFloat(t.meta.MonthTotal))
	}
	return sb.String()
}

// trimFloat formats a value without trailing zeros ("14", "7.5").
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
