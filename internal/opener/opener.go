// Package opener opens files with the platform default viewer.
package opener

import (
	"fmt"

	"github.com/skratchdot/open-golang/open"
)

// Opener opens a file with whatever application the user has associated with it
type Opener interface {
	Open(path string) error
}

// System uses open on macOS, xdg-open on Linux and start on Windows
type System struct{}

// Open blocks until the launcher returns
func (System) Open(path string) error {
	if err := open.Run(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// Func adapts a function to the Opener interface
type Func func(path string) error

// Open calls f(path)
func (f Func) Open(path string) error {
	return f(path)
}

// Nop never opens anything
type Nop struct{}

// Open does nothing
func (Nop) Open(string) error {
	return nil
}
