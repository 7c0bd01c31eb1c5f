//go:build !cgo

package hal

import "errors"

// WindowConfig sizes the desktop window in logical pixels.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

func RunWindow(_ WindowConfig, _ func(h HAL) func() error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
