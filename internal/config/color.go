package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is a hex colour such as "#3b82f6" in YAML.
type Color struct {
	colorful.Color
}

// Hex parses "#rgb" or "#rrggbb".
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, ErrInvalid)
	}
	return Color{c}, nil
}

// MustHex is Hex for constants.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := Hex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = v
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}
