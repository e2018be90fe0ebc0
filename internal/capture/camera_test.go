package capture

import (
	"errors"
	"testing"
)

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera(0)

	if cam.IsOpen() {
		t.Error("camera should not be open before Open")
	}
	if cam.FPS() != DefaultFPS {
		t.Errorf("FPS = %d, want default %d", cam.FPS(), DefaultFPS)
	}
}

func TestNewCameraWithSettings_ZeroFallbacks(t *testing.T) {
	cam := NewCameraWithSettings(Settings{DeviceID: 1}).(*cameraImpl)

	if cam.settings.Width != DefaultWidth {
		t.Errorf("width = %d, want %d", cam.settings.Width, DefaultWidth)
	}
	if cam.settings.Height != DefaultHeight {
		t.Errorf("height = %d, want %d", cam.settings.Height, DefaultHeight)
	}
	if cam.fps != DefaultFPS {
		t.Errorf("fps = %d, want %d", cam.fps, DefaultFPS)
	}
}

func TestCamera_ReadFrameNotOpen(t *testing.T) {
	cam := NewCamera(0)

	_, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("expected ErrCameraNotOpen, got %v", err)
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(0)

	cam.SetFPS(30)
	if cam.FPS() != 30 {
		t.Errorf("FPS = %d, want 30", cam.FPS())
	}

	cam.SetFPS(0)
	if cam.FPS() != 30 {
		t.Errorf("non-positive FPS should be ignored, got %d", cam.FPS())
	}
}

func TestCamera_CloseWithoutOpen(t *testing.T) {
	cam := NewCamera(0)
	if err := cam.Close(); err != nil {
		t.Errorf("closing an unopened camera should be a no-op, got %v", err)
	}
}
