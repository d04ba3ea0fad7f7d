// Package capture reads webcam frames through GoCV (OpenCV).
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Capture defaults. Frames are scaled to the game canvas later, so the device
// resolution only needs to suit hand tracking.
const (
	DefaultFPS    = 10
	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	// ErrCameraNotOpen is returned by ReadFrame before Open or after Close.
	ErrCameraNotOpen = errors.New("camera is not open")
	// ErrNoFrame is returned when the device stops delivering frames.
	ErrNoFrame = errors.New("no frame from camera")
)

// Camera is the frame source of the game loop.
type Camera interface {
	Open() error
	Close() error
	// ReadFrame blocks for the next frame. The caller must Close the Mat.
	ReadFrame() (*gocv.Mat, error)
	// SetFPS requests a device rate. Non-positive rates are ignored.
	SetFPS(fps int)
	// FPS is the last rate requested.
	FPS() int
	IsOpen() bool
}

// Webcam is a Camera on a local video device.
type Webcam struct {
	device int
	mirror bool

	mu  sync.Mutex
	dev *gocv.VideoCapture
	fps int
}

// NewCamera returns a closed webcam for device. With mirror set, frames are
// flipped horizontally so the preview behaves like a mirror.
func NewCamera(device int, mirror bool) *Webcam {
	return &Webcam{device: device, mirror: mirror, fps: DefaultFPS}
}

// Open starts capturing at DefaultWidth x DefaultHeight. Opening an open
// webcam does nothing.
func (w *Webcam) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dev != nil {
		return nil
	}
	dev, err := gocv.OpenVideoCapture(w.device)
	if err != nil {
		return fmt.Errorf("video device %d: %w", w.device, err)
	}
	dev.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	dev.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)
	dev.Set(gocv.VideoCaptureFPS, float64(w.fps))

	w.dev = dev
	return nil
}

// Close releases the device. Closing a closed webcam does nothing.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dev == nil {
		return nil
	}
	err := w.dev.Close()
	w.dev = nil
	return err
}

func (w *Webcam) ReadFrame() (*gocv.Mat, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dev == nil {
		return nil, ErrCameraNotOpen
	}

	frame := gocv.NewMat()
	if !w.dev.Read(&frame) || frame.Empty() {
		frame.Close()
		return nil, ErrNoFrame
	}
	if w.mirror {
		gocv.Flip(frame, &frame, 1)
	}
	return &frame, nil
}

// SetFPS also applies the rate to an open device.
func (w *Webcam) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.fps = fps
	if w.dev != nil {
		w.dev.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

func (w *Webcam) FPS() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fps
}

func (w *Webcam) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dev != nil
}
