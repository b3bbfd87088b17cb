// Package ui holds the terminal colours and tables shared by the commands
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variants, which read better on dark
// backgrounds.
var DarkTheme bool

// themed returns a printer using dark when DarkTheme is set and light
// otherwise. The theme is read on every call.
func themed(dark, light pterm.Color) func(a any) string {
	return func(a any) string {
		if DarkTheme {
			return dark.Sprint(a)
		}

		return light.Sprint(a)
	}
}

var (
	Green     = themed(pterm.FgLightGreen, pterm.FgGreen)
	Cyan      = themed(pterm.FgLightCyan, pterm.FgCyan)
	Magenta   = themed(pterm.FgLightMagenta, pterm.FgMagenta)
	Blue      = themed(pterm.FgLightBlue, pterm.FgBlue)
	Red       = themed(pterm.FgLightRed, pterm.FgRed)
	Highlight = themed(pterm.FgLightWhite, pterm.FgBlack)
)

// Outcome labels a focus interval as completed, abandoned, or still open.
func Outcome(completed, open bool) string {
	switch {
	case completed:
		return Green("completed")
	case open:
		return Blue("open")
	}

	return Red("abandoned")
}
