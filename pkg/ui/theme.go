package ui

import (
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme bundles the styles used by the chart screen.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor

	Base      lipgloss.Style
	Header    lipgloss.Style
	StatValue lipgloss.Style
	StatLabel lipgloss.Style
	Panel     lipgloss.Style
	PanelHead lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	AxisLabel lipgloss.Style
	Tooltip   lipgloss.Style
	Help      lipgloss.Style
}

// DefaultTheme returns the standard adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Primary:  lipgloss.AdaptiveColor{Light: "#2F5D8A", Dark: "#74A3D4"},
		Subtext:  lipgloss.AdaptiveColor{Light: "#666666", Dark: "#8A93A6"},
		Border:   lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#3A4254"},
	}

	t.Base = r.NewStyle()
	t.Header = r.NewStyle().Bold(true).Foreground(t.Primary)
	t.StatValue = r.NewStyle().Bold(true)
	t.StatLabel = r.NewStyle().Foreground(t.Subtext)
	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.PanelHead = r.NewStyle().Foreground(t.Subtext).Bold(true)
	t.TabActive = r.NewStyle().Bold(true).Foreground(t.Primary).Underline(true)
	t.TabIdle = r.NewStyle().Foreground(t.Subtext)
	t.AxisLabel = r.NewStyle().Foreground(t.Subtext)
	t.Tooltip = r.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)
	t.Help = r.NewStyle().Foreground(t.Subtext)

	return t
}

// HexOf converts an RGBA palette entry into a lipgloss hex string.
func HexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
