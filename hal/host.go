package hal

import "time"

const eventQueue = 256

type hostHAL struct {
	fb  *hostFramebuffer
	kbd *hostKeyboard
	ptr *hostPointer
	t   *hostTime
}

// New returns an offscreen host HAL of w×h device pixels at scale 1.
func New(w, h int) HAL {
	return newHostHAL(w, h, 1)
}

func newHostHAL(w, h int, scale float64) *hostHAL {
	return &hostHAL{
		fb:  newHostFramebuffer(w, h, scale),
		kbd: newHostKeyboard(),
		ptr: newHostPointer(),
		t:   &hostTime{now: time.Now},
	}
}

func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostPointer struct {
	ch chan PointerEvent
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, eventQueue)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}
