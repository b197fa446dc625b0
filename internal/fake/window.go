package fake

import (
	"unsafe"

	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/window"
)

// System is a fake window.System.
type System struct {
	Recorder *Recorder

	InitErr   error
	CreateErr error

	// CloseAfter is the number of polls after which the window reports it
	// should close. Zero means the window is closed from the start.
	CloseAfter int

	// SurfaceErr is returned by the window's CreateSurface.
	SurfaceErr error

	Extensions []string
	Polls      int
	Terminated bool

	Window *Window
}

func (s *System) Init() error {
	if s.InitErr != nil {
		return s.InitErr
	}
	s.Recorder.acquire("window system")
	return nil
}

func (s *System) CreateWindow(opts window.Options) (window.Window, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	s.Recorder.acquire("window")
	s.Window = &Window{system: s, Options: opts}
	return s.Window, nil
}

func (s *System) PollEvents() {
	s.Polls++
}

func (s *System) InstanceProcAddr() unsafe.Pointer {
	return nil
}

func (s *System) Terminate() {
	s.Terminated = true
	s.Recorder.release("window system")
}

// Window is a fake window.Window.
type Window struct {
	system *System

	Options   window.Options
	Destroyed bool
	Surface   *Surface
}

func (w *Window) ShouldClose() bool {
	return w.system.Polls >= w.system.CloseAfter
}

func (w *Window) RequiredExtensions() []string {
	return w.system.Extensions
}

func (w *Window) CreateSurface(instance gpu.Instance) (gpu.Surface, error) {
	if w.system.SurfaceErr != nil {
		return nil, w.system.SurfaceErr
	}
	w.Surface = NewSurface(w.system.Recorder)
	return w.Surface, nil
}

func (w *Window) Destroy() {
	w.Destroyed = true
	w.system.Recorder.release("window")
}
