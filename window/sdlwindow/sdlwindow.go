// Package sdlwindow implements the window shim with SDL2.
package sdlwindow

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2"

	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/gpu/vkng"
	"github.com/hydra-engine/hydra/window"
)

// System is the SDL2 video subsystem. SDL has no per-window close flag, so
// System turns quit and window-close events into one.
type System struct {
	quit    bool
	windows map[uint32]*Window
}

// NewSystem returns an uninitialized SDL2 system.
func NewSystem() *System {
	return &System{windows: make(map[uint32]*Window)}
}

func (s *System) Init() error {
	return sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
}

func (s *System) CreateWindow(opts window.Options) (window.Window, error) {
	var flags uint32 = sdl.WINDOW_VULKAN
	if opts.Hidden {
		flags |= sdl.WINDOW_HIDDEN
	} else {
		flags |= sdl.WINDOW_SHOWN
	}

	win, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(opts.Width), int32(opts.Height), flags)
	if err != nil {
		return nil, err
	}

	id, err := win.GetID()
	if err != nil {
		win.Destroy()
		return nil, errors.Wrap(err, "window id")
	}

	w := &Window{system: s, win: win, id: id}
	s.windows[id] = w
	return w, nil
}

func (s *System) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		s.handle(event)
	}
}

func (s *System) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.quit = true
	case *sdl.WindowEvent:
		if e.Event != sdl.WINDOWEVENT_CLOSE {
			return
		}
		if w, ok := s.windows[e.WindowID]; ok {
			w.closed = true
		}
	}
}

func (s *System) InstanceProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

func (s *System) Terminate() {
	sdl.Quit()
}

// Window is an SDL2 window created with SDL_WINDOW_VULKAN.
type Window struct {
	system *System
	win    *sdl.Window
	id     uint32
	closed bool
}

func (w *Window) ShouldClose() bool {
	return w.closed || w.system.quit
}

func (w *Window) RequiredExtensions() []string {
	return w.win.VulkanGetInstanceExtensions()
}

func (w *Window) CreateSurface(instance gpu.Instance) (gpu.Surface, error) {
	vkInstance, err := vkng.UnwrapInstance(instance)
	if err != nil {
		return nil, err
	}

	surfaceLoader := vkng_sdl2.CreateExtensionFromInstance(vkInstance)

	surface, _, err := surfaceLoader.CreateSurface(vkInstance, w.win)
	if err != nil {
		return nil, err
	}

	return vkng.WrapSurface(surface), nil
}

func (w *Window) Destroy() {
	delete(w.system.windows, w.id)
	w.win.Destroy()
}
