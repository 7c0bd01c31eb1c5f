//go:build cgo

package hal

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"folio/internal/buildinfo"
)

// WindowConfig sizes the desktop window in logical pixels.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

// RunWindow opens a resizable desktop window that displays the framebuffer and forwards
// keyboard and mouse input. The app step runs once per displayed frame. It blocks until
// the window closes.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 800
	}
	if cfg.Title == "" {
		cfg.Title = "folio"
	}

	h := newHostHAL(cfg.Width, cfg.Height, 1)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	fbImg *ebiten.Image
	pix   []byte
	step  func() error

	lastX, lastY int
	inside       bool
}

func (g *hostGame) Update() error {
	g.pollKeyboard()
	g.pollPointer()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	w, hgt := fb.Width(), fb.Height()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != hgt {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, hgt)
	}

	g.pix = fb.snapshot(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

// Layout sizes the framebuffer in device pixels so the page renders at native
// resolution.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := deviceScale()
	w := int(math.Ceil(float64(outsideWidth) * scale))
	h := int(math.Ceil(float64(outsideHeight) * scale))
	g.h.fb.resize(w, h, scale)
	return g.h.fb.Width(), g.h.fb.Height()
}

func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}

func (g *hostGame) pollPointer() {
	p := g.h.ptr
	scale := g.h.fb.Scale()
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/scale, float64(cy)/scale

	inside := cx >= 0 && cy >= 0 && cx < g.h.fb.Width() && cy < g.h.fb.Height()
	if !inside {
		if g.inside {
			p.emit(PointerEvent{Kind: PointerLeave, X: x, Y: y})
		}
		g.inside = false
		return
	}
	g.inside = true

	if cx != g.lastX || cy != g.lastY {
		g.lastX, g.lastY = cx, cy
		p.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerDown, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerUp, X: x, Y: y})
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		p.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, WheelX: wx, WheelY: wy})
	}
}

var windowKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyPageUp, KeyPageUp},
	{ebiten.KeyPageDown, KeyPageDown},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyF1, KeyF1},
}

func (g *hostGame) pollKeyboard() {
	k := g.h.kbd
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}
	for _, wk := range windowKeys {
		if inpututil.IsKeyJustPressed(wk.key) {
			k.emit(KeyEvent{Code: wk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(wk.key) {
			k.emit(KeyEvent{Code: wk.code, Press: false})
		}
	}
}
