// Package glfwwindow implements the window shim with GLFW 3.3.
package glfwwindow

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/vkngwrapper/core/driver"
	"github.com/vkngwrapper/extensions/khr_surface"
	khr_surface_driver "github.com/vkngwrapper/extensions/khr_surface/driver"

	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/gpu/vkng"
	"github.com/hydra-engine/hydra/window"
)

// System is the GLFW library.
type System struct{}

// NewSystem returns an uninitialized GLFW system.
func NewSystem() *System {
	return &System{}
}

func (s *System) Init() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "initialize glfw")
	}

	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return errors.New("glfw: no Vulkan loader found")
	}

	return nil
}

func (s *System) CreateWindow(opts window.Options) (window.Window, error) {
	// Hints persist between windows.
	glfw.DefaultWindowHints()

	// We must tell GLFW NOT to create an OpenGL context
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if opts.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}

	return &Window{win: win}, nil
}

func (s *System) PollEvents() {
	glfw.PollEvents()
}

func (s *System) InstanceProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (s *System) Terminate() {
	glfw.Terminate()
}

// Window is a GLFW window without a client API.
type Window struct {
	win *glfw.Window
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) RequiredExtensions() []string {
	return w.win.GetRequiredInstanceExtensions()
}

func (w *Window) CreateSurface(instance gpu.Instance) (gpu.Surface, error) {
	vkInstance, err := vkng.UnwrapInstance(instance)
	if err != nil {
		return nil, err
	}

	surfaceAddr, err := w.win.CreateWindowSurface(instanceArg(vkInstance.Handle()), nil)
	if err != nil {
		return nil, errors.Wrap(err, "glfw")
	}

	surfaceDriver := khr_surface_driver.CreateDriverFromCore(vkInstance.Driver())
	surface, _, err := khr_surface.CreateSurface(surfaceHandle(surfaceAddr), vkInstance, surfaceDriver)
	if err != nil {
		return nil, err
	}

	return vkng.WrapSurface(surface), nil
}

// instanceArg passes a VkInstance the way glfw reads it: as a pointer whose
// value is the handle. A bare handle is an integer and glfw rejects it.
func instanceArg(handle driver.VkInstance) *byte {
	return (*byte)(unsafe.Pointer(handle))
}

// surfaceHandle reads the VkSurfaceKHR stored at the address glfw returns.
func surfaceHandle(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(*(*khr_surface_driver.VkSurfaceKHR)(unsafe.Pointer(addr)))
}

func (w *Window) Destroy() {
	w.win.Destroy()
}
