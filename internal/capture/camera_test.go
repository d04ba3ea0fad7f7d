package capture

import (
	"errors"
	"testing"
)

func TestNewCamera(t *testing.T) {
	tests := []struct {
		name     string
		deviceID int
		mirror   bool
	}{
		{name: "default device", deviceID: 0, mirror: true},
		{name: "device 1 unmirrored", deviceID: 1, mirror: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.deviceID, tt.mirror)

			if cam == nil {
				t.Fatal("NewCamera returned nil")
			}
			if got := cam.FPS(); got != DefaultFPS {
				t.Errorf("FPS() = %d, want %d (default)", got, DefaultFPS)
			}
			if cam.IsOpen() {
				t.Error("camera should not be running initially")
			}
		})
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(0, true)

	tests := []struct {
		name    string
		fps     int
		wantFPS int
	}{
		{name: "menu rate", fps: 10, wantFPS: 10},
		{name: "running rate", fps: 30, wantFPS: 30},
		{name: "zero keeps previous", fps: 0, wantFPS: 30},
		{name: "negative keeps previous", fps: -5, wantFPS: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam.SetFPS(tt.fps)

			if got := cam.FPS(); got != tt.wantFPS {
				t.Errorf("FPS() = %d, want %d", got, tt.wantFPS)
			}
		})
	}
}

func TestCamera_OpenReadClose(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping camera hardware test in short mode")
	}

	cam := NewCamera(0, true)
	if err := cam.Open(); err != nil {
		t.Skipf("no camera available: %v", err)
	}

	if !cam.IsOpen() {
		t.Error("IsOpen() should return true after Open()")
	}

	mat, err := cam.ReadFrame()
	if err != nil {
		t.Logf("ReadFrame() failed (camera may be busy): %v", err)
	} else {
		if mat.Empty() {
			t.Error("ReadFrame() returned an empty frame")
		}
		mat.Close()
	}

	if err := cam.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if cam.IsOpen() {
		t.Error("IsOpen() should return false after Close()")
	}
}

func TestCamera_ReadFrame_NotOpened(t *testing.T) {
	cam := NewCamera(0, false)

	_, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestCamera_SatisfiesInterface(t *testing.T) {
	var cam Camera = NewCamera(0, false)
	if cam.IsOpen() {
		t.Error("new webcam should be closed")
	}
}

func TestCamera_Close_NotOpened(t *testing.T) {
	cam := NewCamera(0, false)

	if err := cam.Close(); err != nil {
		t.Errorf("Close() on not opened camera should return nil, got: %v", err)
	}
}
