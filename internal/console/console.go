// Package console manages terminal color capabilities for the process.
package console

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SetNoColor downgrades the lipgloss color profile to plain ASCII when
// disable is true, or restores the detected terminal profile otherwise.
// NO_COLOR in the environment also disables color.
func SetNoColor(disable bool) {
	if disable || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
