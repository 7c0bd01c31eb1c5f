package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal host.
type TerminalConfig struct {
	Hz    int
	Ticks uint64

	// CellWidth is the logical width of one character cell in pixels; each cell shows
	// two device pixels stacked vertically.
	CellWidth float64
}

// RunTerminal renders the page into the terminal with half-block characters. Mouse
// drag and wheel are forwarded; q, Esc or Ctrl-C quits.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg TerminalConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return runTerminal(ctx, screen, newApp, cfg)
}

func runTerminal(ctx context.Context, screen tcell.Screen, newApp func(HAL) func() error, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = 8
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	scale := 1 / cfg.CellWidth
	cols, rows := screen.Size()
	h := newHostHAL(cols, rows*2, scale)
	step := newApp(h)

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	in := terminalInput{h: h}
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if in.handle(ev) {
				return nil
			}
			if ev, ok := ev.(*tcell.EventResize); ok {
				c, r := ev.Size()
				h.fb.resize(c, r*2, scale)
				screen.Sync()
			}
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			presentCells(screen, h.fb)
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

type terminalInput struct {
	h    *hostHAL
	down bool
	x, y int
}

var terminalKeys = map[tcell.Key]KeyCode{
	tcell.KeyUp:   KeyUp,
	tcell.KeyDown: KeyDown,
	tcell.KeyPgUp: KeyPageUp,
	tcell.KeyPgDn: KeyPageDown,
	tcell.KeyHome: KeyHome,
	tcell.KeyEnd:  KeyEnd,
	tcell.KeyF1:   KeyF1,
}

// handle translates one terminal event and reports whether the user asked to quit.
func (in *terminalInput) handle(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return true
		}
		if ev.Key() == tcell.KeyRune {
			in.h.kbd.emit(KeyEvent{Press: true, Rune: ev.Rune()})
			return false
		}
		if code, ok := terminalKeys[ev.Key()]; ok {
			in.h.kbd.emit(KeyEvent{Code: code, Press: true})
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		scale := in.h.fb.Scale()
		x, y := float64(cx)/scale, float64(cy*2)/scale
		p := in.h.ptr

		btn := ev.Buttons()
		switch {
		case btn&tcell.WheelUp != 0:
			p.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, WheelY: 1})
			return false
		case btn&tcell.WheelDown != 0:
			p.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, WheelY: -1})
			return false
		}

		if cx != in.x || cy != in.y {
			in.x, in.y = cx, cy
			p.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
		}
		down := btn&tcell.Button1 != 0
		switch {
		case down && !in.down:
			p.emit(PointerEvent{Kind: PointerDown, X: x, Y: y})
		case !down && in.down:
			p.emit(PointerEvent{Kind: PointerUp, X: x, Y: y})
		}
		in.down = down
	}
	return false
}

type cellScreen interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Show()
}

// presentCells draws two framebuffer rows per terminal row: the upper pixel as the
// foreground of '▀' and the lower one as its background.
func presentCells(s cellScreen, fb *hostFramebuffer) {
	fb.mu.Lock()
	img := fb.img
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for row := 0; row*2 < h; row++ {
		for x := 0; x < w; x++ {
			top := img.RGBAAt(x, row*2)
			bot := top
			if row*2+1 < h {
				bot = img.RGBAAt(x, row*2+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			s.SetContent(x, row, '▀', nil, style)
		}
	}
	fb.mu.Unlock()
	s.Show()
}
