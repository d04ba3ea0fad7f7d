// Package detector provides hand landmark detection for the gesture input.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
// Coordinates are normalized to [0,1] of the frame, with Y growing downward.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Finger pairs a fingertip landmark with its middle (PIP) joint.
type Finger struct {
	Tip int
	PIP int
}

// Fingers lists the four non-thumb fingers from index to pinky.
var Fingers = [4]Finger{
	{Tip: IndexTip, PIP: IndexPIP},
	{Tip: MiddleTip, PIP: MiddlePIP},
	{Tip: RingTip, PIP: RingPIP},
	{Tip: PinkyTip, PIP: PinkyPIP},
}
