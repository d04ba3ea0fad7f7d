package render

import (
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/bananarush/internal/game"
	"github.com/ayusman/bananarush/internal/input"
)

// Text style of the highgui window.
const (
	fontFace      = gocv.FontHersheySimplex
	fontScale     = 0.9
	fontThickness = 2
)

// Window is an OpenCV highgui window. It is both the game's Canvas and an
// input.Source: keys pressed while presenting are mapped to commands.
type Window struct {
	win    *gocv.Window
	frame  gocv.Mat
	mu     sync.Mutex
	keys   []int
	closed bool
}

// NewWindow opens a window with a width×height drawing surface.
func NewWindow(title string, width, height int) *Window {
	return &Window{
		win:   gocv.NewWindow(title),
		frame: gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
	}
}

func (w *Window) Clear(c color.RGBA) {
	w.frame.SetTo(gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), float64(c.A)))
}

func (w *Window) Circle(center image.Point, radius int, c color.RGBA) {
	gocv.Circle(&w.frame, center, radius, c, -1)
}

func (w *Window) Text(s string, at image.Point, align Align, c color.RGBA) {
	size := gocv.GetTextSize(s, fontFace, fontScale, fontThickness)
	switch align {
	case AlignCenter:
		at.X -= size.X / 2
	case AlignRight:
		at.X -= size.X
	}
	gocv.PutText(&w.frame, s, at, fontFace, fontScale, c, fontThickness)
}

// Present shows the frame and pumps the window's event loop once, collecting
// a pressed key if there is one.
func (w *Window) Present() error {
	w.win.IMShow(w.frame)
	key := w.win.WaitKey(1)

	w.mu.Lock()
	defer w.mu.Unlock()
	if key >= 0 {
		w.keys = append(w.keys, key&0xFF)
	}
	// A window closed by the user reports a negative property.
	if w.win.GetWindowProperty(gocv.WindowPropertyAutosize) < 0 {
		w.closed = true
	}
	return nil
}

// Poll returns the commands for keys seen since the last poll. Closing the
// window yields a quit.
func (w *Window) Poll() []game.Command {
	w.mu.Lock()
	defer w.mu.Unlock()

	var cmds []game.Command
	for _, k := range w.keys {
		if cmd, ok := input.FromKey(k); ok {
			cmds = append(cmds, cmd)
		}
	}
	w.keys = w.keys[:0]
	if w.closed {
		cmds = append(cmds, game.Quit())
	}
	return cmds
}

// Close destroys the window and releases the frame buffer.
func (w *Window) Close() error {
	w.frame.Close()
	return w.win.Close()
}
