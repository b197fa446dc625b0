// Package window is a thin shim over the window library: library
// lifetime, window creation, event polling and Vulkan surface creation.
package window

import (
	"unsafe"

	"github.com/hydra-engine/hydra/gpu"
)

// Options describes a window to create. Windows never get a client API
// context; rendering goes through Vulkan.
type Options struct {
	Title  string
	Width  int
	Height int
	Hidden bool
}

// System is a window library. Init must succeed before anything else is
// called and Terminate is called last.
type System interface {
	Init() error
	CreateWindow(opts Options) (Window, error)

	// PollEvents processes pending events without blocking.
	PollEvents()

	// InstanceProcAddr returns vkGetInstanceProcAddr as loaded by the
	// library. Only valid after Init.
	InstanceProcAddr() unsafe.Pointer

	Terminate()
}

// Window is a single window owned by the engine.
type Window interface {
	ShouldClose() bool

	// RequiredExtensions lists the instance extensions needed to create a
	// surface for this window.
	RequiredExtensions() []string

	CreateSurface(instance gpu.Instance) (gpu.Surface, error)
	Destroy()
}
