// Package gesture turns hand landmarks into the game's pointer and pause signals.
package gesture

import (
	"math"

	"github.com/ayusman/bananarush/internal/detector"
	"github.com/ayusman/bananarush/internal/game"
)

// DefaultPointingTolerance is the largest horizontal offset, as a fraction of
// frame width, between index tip and index PIP that still counts as pointing up.
const DefaultPointingTolerance = 0.1

// Classifier maps detected hands to a game.HandSignal.
type Classifier struct {
	Width, Height     float64
	PointingTolerance float64
}

// NewClassifier creates a Classifier that maps the pointer into a
// width×height screen.
func NewClassifier(width, height int) *Classifier {
	return &Classifier{
		Width:             float64(width),
		Height:            float64(height),
		PointingTolerance: DefaultPointingTolerance,
	}
}

// Classify summarizes the frame. Only the first hand in the detector's order
// is considered; no hand yields the zero signal.
func (c *Classifier) Classify(hands []detector.HandLandmarks) game.HandSignal {
	if len(hands) == 0 {
		return game.HandSignal{}
	}
	hand := &hands[0]

	sig := game.HandSignal{
		Pointing:   c.IsPointing(hand),
		ClosedFist: IsClosedFist(hand),
	}
	if sig.Pointing {
		tip := hand.Points[detector.IndexTip]
		sig.Pointer = &game.Vec2{
			X: math.Trunc(tip.X * c.Width),
			Y: math.Trunc(tip.Y * c.Height),
		}
	}
	return sig
}

// IsPointing reports whether the index finger is extended roughly straight up.
func (c *Classifier) IsPointing(hand *detector.HandLandmarks) bool {
	tip := hand.Points[detector.IndexTip]
	pip := hand.Points[detector.IndexPIP]
	return tip.Y < pip.Y && math.Abs(tip.X-pip.X) < c.PointingTolerance
}

// IsClosedFist reports whether every non-thumb fingertip is below its middle joint.
func IsClosedFist(hand *detector.HandLandmarks) bool {
	for _, f := range detector.Fingers {
		if hand.Points[f.Tip].Y <= hand.Points[f.PIP].Y {
			return false
		}
	}
	return true
}
