// Package app is the portfolio page: section layout, visibility-gated 3D surfaces,
// pointer routing and compositing onto the host framebuffer.
package app

import (
	"folio/hal"
	"folio/internal/config"
)

// New creates the page and returns its step function, called once per display refresh.
func New(h hal.HAL, cfg *config.Config, opts ...Option) func() error {
	return NewPage(h, cfg, opts...).Step
}
