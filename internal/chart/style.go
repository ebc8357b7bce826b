package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style describes how a download chart looks
type Style struct {
	Color           string
	TitleFontSize   int
	AxisFontSizeAdj int
	Width           int
	Height          int
	DPI             int
}

// DefaultStyle returns the red 720x405 style
func DefaultStyle() Style {
	return Style{
		Color:           "#FF0000FF",
		TitleFontSize:   14,
		AxisFontSizeAdj: 4,
		Width:           720,
		Height:          405,
		DPI:             100,
	}
}

// AxisFontSize is the title size minus the adjustment
func (s Style) AxisFontSize() int {
	return s.TitleFontSize - s.AxisFontSizeAdj
}

// Validate checks sizes and the colour
func (s Style) Validate() error {
	if _, err := ParseColor(s.Color); err != nil {
		return err
	}
	if s.TitleFontSize <= 0 || s.AxisFontSize() <= 0 {
		return fmt.Errorf("invalid font sizes: title %d, axis %d", s.TitleFontSize, s.AxisFontSize())
	}
	if s.Width <= 0 || s.Height <= 0 || s.DPI <= 0 {
		return fmt.Errorf("invalid image geometry: %dx%d at %d dpi", s.Width, s.Height, s.DPI)
	}
	return nil
}

// ParseColor parses #RRGGBB or #RRGGBBAA
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
