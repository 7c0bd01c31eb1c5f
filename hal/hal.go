package hal

import (
	"errors"
	"image"
	"time"
)

// ErrQuit is returned by an app step to end the host loop cleanly.
var ErrQuit = errors.New("hal: quit")

// Framebuffer is an RGBA pixel buffer in device pixels plus a "present" hook.
//
// Hosts may resize it between steps; callers should re-read the size every step.
type Framebuffer interface {
	Width() int
	Height() int
	// Scale is the number of device pixels per logical pixel.
	Scale() float64
	Image() *image.RGBA
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEscape
	KeyF1
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind classifies pointer events.
type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	PointerWheel
	PointerLeave
)

// PointerEvent carries a pointer position in logical pixels. Wheel events also carry
// a delta in notches; positive WheelY scrolls up.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   float64
	WheelX float64
	WheelY float64
}

// Pointer provides mouse or touch events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides the monotonic clock frames are stamped with.
type Time interface {
	Now() time.Time
}

// HAL is the only contact point between the page and the host it runs on.
type HAL interface {
	Display() Display
	Input() Input
	Time() Time
}
