package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/bananarush/internal/game"
)

const title = "Banana Rush"

// Layout of the menu and overlays, as baselines in screen pixels.
const (
	titleY   = 100
	lineStep = 50
	hudX     = 10
	hudY     = 30
)

// Draw renders one frame of snap and presents it.
func Draw(c Canvas, snap game.Snapshot) error {
	switch snap.Phase {
	case game.PhaseMenu:
		drawMenu(c, snap)
	case game.PhasePaused:
		drawPlayfield(c, snap)
		drawPaused(c)
	case game.PhaseGameOver:
		drawPlayfield(c, snap)
		drawGameOver(c, snap)
	default:
		drawPlayfield(c, snap)
	}
	return c.Present()
}

// KindColor returns the fill color of an object kind.
func KindColor(k game.Kind) color.RGBA {
	switch k {
	case game.Coconut:
		return ColorCoconut
	case game.Bomb:
		return ColorBomb
	default:
		return ColorBanana
	}
}

func centerX() int { return game.ScreenWidth / 2 }

func drawMenu(c Canvas, snap game.Snapshot) {
	c.Clear(ColorMenu)
	c.Text(title, image.Pt(centerX(), titleY), AlignCenter, ColorTitle)

	y := titleY + 70
	c.Text("1: Easy   2: Medium   3: Hard", image.Pt(centerX(), y), AlignCenter, ColorText)

	y += lineStep
	if snap.Difficulty == game.DifficultyUnset {
		c.Text("Choose a difficulty", image.Pt(centerX(), y), AlignCenter, ColorHint)
	} else {
		c.Text("Difficulty: "+snap.Difficulty.String(), image.Pt(centerX(), y), AlignCenter, ColorHint)
	}

	y += lineStep
	c.Text("S: Start Game", image.Pt(centerX(), y), AlignCenter, ColorText)
	y += lineStep
	c.Text("Q: Quit", image.Pt(centerX(), y), AlignCenter, ColorText)

	if snap.Last != nil {
		y += lineStep + 20
		line := fmt.Sprintf("Last game: %d (%s)", snap.Last.Score, snap.Last.Difficulty)
		c.Text(line, image.Pt(centerX(), y), AlignCenter, ColorText)
		y += lineStep
		c.Text(fmt.Sprintf("Best: %d", snap.Best), image.Pt(centerX(), y), AlignCenter, ColorTitle)
	}
}

func drawPlayfield(c Canvas, snap game.Snapshot) {
	c.Clear(ColorBackground)

	for _, obj := range snap.Objects {
		c.Circle(toPoint(obj.Pos), int(obj.Radius), KindColor(obj.Kind))
	}
	if snap.Pointer != nil {
		c.Circle(toPoint(*snap.Pointer), game.PointerRadius, ColorPointer)
	}

	c.Text(fmt.Sprintf("Score: %d", snap.Score), image.Pt(hudX, hudY), AlignLeft, ColorText)
	c.Text(fmt.Sprintf("Lives: %d", max(0, snap.Lives)), image.Pt(hudX, hudY+40), AlignLeft, ColorText)
	c.Text(snap.Difficulty.String(), image.Pt(game.ScreenWidth-hudX, hudY), AlignRight, ColorHint)
}

func drawPaused(c Canvas) {
	y := 220
	c.Text("Paused", image.Pt(centerX(), y), AlignCenter, ColorTitle)
	c.Text("Point to continue", image.Pt(centerX(), y+lineStep), AlignCenter, ColorHint)
	c.Text("Q: Quit", image.Pt(centerX(), y+2*lineStep), AlignCenter, ColorText)
}

func drawGameOver(c Canvas, snap game.Snapshot) {
	y := 250
	c.Text("Game Over", image.Pt(centerX(), y), AlignCenter, ColorWarning)
	c.Text(fmt.Sprintf("Final score: %d", snap.Score), image.Pt(centerX(), y+lineStep), AlignCenter, ColorText)
}

func toPoint(v game.Vec2) image.Point {
	return image.Pt(int(v.X), int(v.Y))
}
