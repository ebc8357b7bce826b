package config

import (
	"fmt"
	"strings"
)

// CreateOptions collects everything a single chart run needs
type CreateOptions struct {
	Package         string
	APIKey          string
	CreateImage     bool
	OutputPath      string
	RollingWindow   int
	OpenImage       bool
	Color           string
	TitleFontSize   int
	AxisFontSizeAdj int
}

// Validate checks the options before any network call is made
func (o *CreateOptions) Validate() error {
	if strings.TrimSpace(o.Package) == "" {
		return fmt.Errorf("package name is required")
	}
	if o.APIKey == "" {
		return ErrMissingAPIKey
	}
	if o.CreateImage && strings.TrimSpace(o.OutputPath) == "" {
		return ErrMissingOutputPath
	}
	if o.TitleFontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", o.TitleFontSize)
	}
	if o.TitleFontSize-o.AxisFontSizeAdj <= 0 {
		return fmt.Errorf("axis font size adjustment %d leaves no room for a title size of %d", o.AxisFontSizeAdj, o.TitleFontSize)
	}
	return nil
}
