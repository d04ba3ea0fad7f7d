// Package ebitenui runs the game loop inside an Ebitengine window.
//
// Ebitengine owns the main loop, so each Update performs exactly one game
// iteration and the tick rate follows the phase through SetTPS. Draw replays
// the display list recorded during that iteration.
package ebitenui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ayusman/bananarush/internal/game"
	"github.com/ayusman/bananarush/internal/input"
	"github.com/ayusman/bananarush/internal/render"
)

// Debug font metrics of ebitenutil.DebugPrint.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Stepper runs one iteration of the game loop.
type Stepper interface {
	// Step reports done once the game should exit.
	Step() (done bool, err error)
	TargetFPS() int
}

// Game adapts a Stepper to ebiten.Game.
type Game struct {
	stepper Stepper
	frame   *render.Recorder
}

// New creates an ebiten game drawing the frames recorded into frame.
func New(stepper Stepper, frame *render.Recorder) *Game {
	return &Game{stepper: stepper, frame: frame}
}

// Run opens the window and blocks until the game quits.
func Run(title string, g *Game) error {
	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(g.stepper.TargetFPS())
	return ebiten.RunGame(g)
}

// Update: one game iteration per tick
func (g *Game) Update() error {
	done, err := g.stepper.Step()
	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}
	ebiten.SetTPS(g.stepper.TargetFPS())
	return nil
}

// Draw replays the last presented frame
func (g *Game) Draw(screen *ebiten.Image) {
	g.frame.Replay(&screenCanvas{screen: screen})
}

// Layout: fixed playfield, ebiten scales the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return game.ScreenWidth, game.ScreenHeight
}

type screenCanvas struct {
	screen *ebiten.Image
}

func (s *screenCanvas) Clear(c color.RGBA) {
	s.screen.Fill(c)
}

func (s *screenCanvas) Circle(center image.Point, radius int, c color.RGBA) {
	vector.DrawFilledCircle(s.screen, float32(center.X), float32(center.Y), float32(radius), c, true)
}

// Text uses the debug font, which has a fixed color.
func (s *screenCanvas) Text(str string, at image.Point, align render.Align, _ color.RGBA) {
	w := len(str) * glyphWidth
	switch align {
	case render.AlignCenter:
		at.X -= w / 2
	case render.AlignRight:
		at.X -= w
	}
	// Labels are positioned by baseline; the debug font draws from the top.
	ebitenutil.DebugPrintAt(s.screen, str, at.X, at.Y-glyphHeight)
}

func (s *screenCanvas) Present() error { return nil }

// watchedKeys are the keys with a command mapping, in the order they are
// reported when pressed on the same tick.
var watchedKeys = []struct {
	key  ebiten.Key
	code int
}{
	{ebiten.Key1, '1'},
	{ebiten.Key2, '2'},
	{ebiten.Key3, '3'},
	{ebiten.KeyS, 's'},
	{ebiten.KeyQ, 'q'},
	{ebiten.KeyEscape, input.KeyEscape},
}

// Keys is an input.Source reading the keyboard through inpututil. It must be
// polled from within Update.
type Keys struct{}

// Poll returns commands for keys pressed this tick.
func (Keys) Poll() []game.Command {
	var cmds []game.Command
	for _, w := range watchedKeys {
		if !inpututil.IsKeyJustPressed(w.key) {
			continue
		}
		if cmd, ok := input.FromKey(w.code); ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
