// Package render draws game snapshots onto a 2D canvas.
package render

import (
	"image"
	"image/color"
)

// Align is the horizontal anchoring of a text label.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas accepts the draw primitives used by the game.
type Canvas interface {
	Clear(c color.RGBA)
	Circle(center image.Point, radius int, c color.RGBA)
	Text(s string, at image.Point, align Align, c color.RGBA)
	// Present shows the finished frame.
	Present() error
}

// Palette
var (
	ColorBackground = color.RGBA{34, 139, 34, 255}
	ColorMenu       = color.RGBA{20, 40, 20, 255}
	ColorBanana     = color.RGBA{255, 255, 0, 255}
	ColorCoconut    = color.RGBA{139, 69, 19, 255}
	ColorBomb       = color.RGBA{0, 0, 0, 255}
	ColorPointer    = color.RGBA{255, 0, 0, 255}
	ColorText       = color.RGBA{255, 255, 255, 255}
	ColorTitle      = color.RGBA{255, 255, 0, 255}
	ColorHint       = color.RGBA{200, 255, 200, 255}
	ColorWarning    = color.RGBA{255, 90, 90, 255}
)
