package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a Detector whose results are set by the caller.
// It is also the fallback when MediaPipe is unavailable.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	script [][]HandLandmarks
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// Script queues per-frame results. Each Detect call consumes one entry;
// once the script runs out the hands from SetHands are returned.
func (m *MockDetector) Script(frames ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, frames...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted result, the configured hands, or the error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PointingLandmarks returns a right hand with the index finger extended
// straight up at (x, y) and the other fingers curled.
func PointingLandmarks(x, y float64) HandLandmarks {
	lm := FistLandmarks()

	lm.Points[IndexMCP] = Point3D{X: x, Y: y + 0.24, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: x, Y: y + 0.16, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: x, Y: y + 0.08, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: x, Y: y, Z: 0.0}

	return lm
}

// FistLandmarks returns a closed right hand: every fingertip sits below its
// middle joint.
func FistLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.72, Z: -0.02}
	lm.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.69, Z: -0.04}
	lm.Points[ThumbTip] = Point3D{X: 0.53, Y: 0.68, Z: -0.05}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66, Z: -0.02}
	lm.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.62, Z: -0.05}
	lm.Points[IndexDIP] = Point3D{X: 0.54, Y: 0.66, Z: -0.06}
	lm.Points[IndexTip] = Point3D{X: 0.54, Y: 0.69, Z: -0.04}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65, Z: -0.02}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.61, Z: -0.05}
	lm.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.65, Z: -0.06}
	lm.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.68, Z: -0.04}

	lm.Points[RingMCP] = Point3D{X: 0.46, Y: 0.66, Z: -0.02}
	lm.Points[RingPIP] = Point3D{X: 0.46, Y: 0.62, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.45, Y: 0.66, Z: -0.06}
	lm.Points[RingTip] = Point3D{X: 0.45, Y: 0.69, Z: -0.04}

	lm.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.68, Z: -0.02}
	lm.Points[PinkyPIP] = Point3D{X: 0.42, Y: 0.65, Z: -0.05}
	lm.Points[PinkyDIP] = Point3D{X: 0.41, Y: 0.68, Z: -0.06}
	lm.Points[PinkyTip] = Point3D{X: 0.41, Y: 0.70, Z: -0.04}

	return lm
}

// OpenPalmLandmarks returns a right hand with all fingers spread upward.
// The index finger leans outward, so it is neither a point nor a fist.
func OpenPalmLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	lm.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	lm.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.60, Y: 0.55, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.66, Y: 0.45, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.72, Y: 0.36, Z: 0.0}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	lm.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	lm.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return lm
}
