package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"

	"folio/hal"
	"folio/stage"
)

type crashInfo struct {
	value any
	stack []byte
}

// enterCrash stops every scene and switches the page to the crash screen. Further
// steps only redraw it until Escape is pressed.
func (p *Page) enterCrash(v any) {
	p.crash = &crashInfo{value: v, stack: debug.Stack()}
	stage.Logger().Error("page: panic", "panic", fmt.Sprint(v))
	for _, m := range p.mounts {
		func() {
			defer func() { _ = recover() }()
			m.Unmount()
		}()
	}
}

func (p *Page) crashStep() error {
	if in := p.h.Input(); in != nil && in.Keyboard() != nil {
	drain:
		for {
			select {
			case ev := <-in.Keyboard().Events():
				if ev.Press && ev.Code == hal.KeyEscape {
					return hal.ErrQuit
				}
			default:
				break drain
			}
		}
	}

	fb := p.h.Display().Framebuffer()
	fb.ClearRGB(255, 255, 255)
	cv := newCanvas(fb.Image())

	lines := []string{
		"folio panic:",
		fmt.Sprintf("panic: %v", p.crash.value),
	}
	if len(p.crash.stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(p.crash.stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}
	lines = append(lines, "", "press Esc to quit")

	fg := color.RGBA{A: 255}
	cols := max(fb.Width()/max(textWidth("0"), 1), 1)
	y := 0
	for _, line := range lines {
		for _, chunk := range wrapText(line, cols) {
			if y+lineHeight > fb.Height() {
				return fb.Present()
			}
			drawText(cv, 0, y, chunk, fg)
			y += lineHeight
		}
		if line == "" {
			y += lineHeight
		}
	}
	return fb.Present()
}
