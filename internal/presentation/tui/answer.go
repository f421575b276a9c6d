package tui

import (
	"github.com/muesli/termenv"
)

// Styler colours answers for a terminal. The zero value writes plain text.
type Styler struct {
	profile termenv.Profile
	color   bool
}

// NewStyler creates a styler. When color is false every method returns its input unchanged.
func NewStyler(color bool) Styler {
	if !color {
		return Styler{profile: termenv.Ascii}
	}
	return Styler{profile: termenv.ColorProfile(), color: true}
}

// Independence colours "yes" green and "no" red.
func (s Styler) Independence(text string, independent bool) string {
	if !s.color {
		return text
	}
	c := "#ef4444"
	if independent {
		c = "#22c55e"
	}
	return termenv.String(text).Foreground(s.profile.Color(c)).Bold().String()
}

// Probability highlights a probability answer.
func (s Styler) Probability(text string) string {
	if !s.color {
		return text
	}
	return termenv.String(text).Foreground(s.profile.Color("#818cf8")).Bold().String()
}

// Error colours an error line.
func (s Styler) Error(text string) string {
	if !s.color {
		return text
	}
	return termenv.String(text).Foreground(s.profile.Color("#f97316")).String()
}
