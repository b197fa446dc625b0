// Package engine brings up a window, a Vulkan instance, a physical device
// and optionally a surface and logical device, polls window events until
// the window closes, and tears everything down again.
package engine

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"

	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/window"
)

// ErrInvalidState is returned when a lifecycle method is called out of
// order.
var ErrInvalidState = errors.New("invalid engine state")

// DriverFunc opens a graphics driver from the window library's
// vkGetInstanceProcAddr.
type DriverFunc func(procAddr unsafe.Pointer) (gpu.Driver, error)

// Engine owns every handle it creates. All methods must be called from the
// thread that owns the window library.
type Engine struct {
	settings Settings
	system   window.System
	open     DriverFunc
	log      logrus.FieldLogger

	state     State
	isRunning bool

	window   window.Window
	instance gpu.Instance
	surface  gpu.Surface

	physicalDevice gpu.PhysicalDevice
	device         gpu.Device

	graphicsQueue gpu.Queue
	presentQueue  gpu.Queue

	releases releaseStack
}

// New returns an uninitialized engine.
func New(settings Settings, system window.System, open DriverFunc, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		settings: settings,
		system:   system,
		open:     open,
		log:      log,
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Running reports whether Run is polling events.
func (e *Engine) Running() bool {
	return e.isRunning
}

// PhysicalDevice returns the selected device, or nil before selection.
func (e *Engine) PhysicalDevice() gpu.PhysicalDevice {
	return e.physicalDevice
}

// Startup creates every handle the configured capabilities ask for. On
// failure everything acquired so far is released in reverse order, the
// engine moves to StateShutDown and the error is returned.
func (e *Engine) Startup() error {
	if e.state != StateUninitialized {
		return errors.Wrapf(ErrInvalidState, "startup in state %s", e.state)
	}

	e.log.Info("Hydra Engine is starting...")

	err := e.startup()
	if err != nil {
		e.log.WithError(err).Error("Startup failed, releasing acquired handles")
		e.releases.unwind(e.log)
		e.state = StateShutDown
		return err
	}

	return nil
}

func (e *Engine) startup() error {
	caps := e.settings.Capabilities

	err := e.phase("create window", e.initWindow)
	if err != nil {
		return err
	}

	err = e.phase("create instance", e.createInstance)
	if err != nil {
		return err
	}

	if caps.Surface {
		err = e.phase("create surface", e.createSurface)
		if err != nil {
			return err
		}
	}

	err = e.phase("pick physical device", e.pickPhysicalDevice)
	if err != nil {
		return err
	}

	if caps.LogicalDevice {
		return e.phase("create logical device", e.createLogicalDevice)
	}

	return nil
}

// phase runs one startup step. Its name is the only prefix the step's
// error gets from the engine.
func (e *Engine) phase(name string, fn func() error) error {
	start := hrtime.Now()
	err := fn()
	e.log.WithFields(logrus.Fields{
		"phase":   name,
		"elapsed": hrtime.Since(start),
	}).Debug("Startup phase finished")
	return errors.Wrap(err, name)
}

func (e *Engine) initWindow() error {
	if err := e.system.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize window library")
	}
	e.releases.push("window library", e.system.Terminate)

	win, err := e.system.CreateWindow(e.settings.Window)
	if err != nil {
		return err
	}
	e.window = win
	e.releases.push("window", func() {
		e.window.Destroy()
		e.window = nil
	})

	e.state = StateWindowCreated
	return nil
}

func (e *Engine) createInstance() error {
	driver, err := e.open(e.system.InstanceProcAddr())
	if err != nil {
		return errors.Wrap(err, "failed to open driver")
	}

	info := gpu.InstanceCreateInfo{
		Application: e.settings.Application,
		Extensions:  e.window.RequiredExtensions(),
	}
	if e.settings.Validation {
		info.Layers = append(info.Layers, ValidationLayer)
		info.DebugMessenger = true
	}

	instance, err := driver.CreateInstance(info)
	if err != nil {
		return err
	}
	e.instance = instance
	e.releases.push("instance", func() {
		e.instance.Destroy()
		e.instance = nil
	})

	e.log.WithField("extensions", info.Extensions).Info("Vulkan instance created")
	e.state = StateInstanceCreated
	return nil
}

func (e *Engine) createSurface() error {
	surface, err := e.window.CreateSurface(e.instance)
	if err != nil {
		return err
	}
	e.surface = surface
	e.releases.push("surface", func() {
		e.surface.Destroy()
		e.surface = nil
	})

	e.log.Info("Window surface created")
	e.state = StateSurfaceCreated
	return nil
}

func (e *Engine) pickPhysicalDevice() error {
	device, err := gpu.PickPhysicalDevice(e.instance, e.surface, e.settings.Capabilities.Requirements, e.log)
	if err != nil {
		return err
	}

	// The driver owns physical devices; forgetting the reference is all
	// that release means here.
	e.physicalDevice = device
	e.releases.push("physical device", func() {
		e.physicalDevice = nil
	})

	e.state = StatePhysicalDeviceSelected
	return nil
}

func (e *Engine) createLogicalDevice() error {
	indices, err := gpu.FindQueueFamilies(e.physicalDevice, e.surface)
	if err != nil {
		return err
	}
	if indices.GraphicsFamily == nil {
		return errors.New("selected device lost its graphics queue family")
	}

	queuePriority := float32(1.0)
	var queueCreateInfos []gpu.DeviceQueueCreateInfo
	for _, queueFamily := range indices.Unique() {
		queueCreateInfos = append(queueCreateInfos, gpu.DeviceQueueCreateInfo{
			Family:     queueFamily,
			Priorities: []float32{queuePriority},
		})
	}

	req := e.settings.Capabilities.Requirements
	device, err := e.physicalDevice.CreateDevice(gpu.DeviceCreateInfo{
		Queues:     queueCreateInfos,
		Features:   req.Features,
		Extensions: req.Extensions,
	})
	if err != nil {
		return err
	}
	e.device = device
	e.releases.push("logical device", func() {
		e.device.Destroy()
		e.device = nil
		e.graphicsQueue = nil
		e.presentQueue = nil
	})

	e.graphicsQueue = e.device.Queue(*indices.GraphicsFamily, 0)
	if indices.PresentFamily != nil {
		e.presentQueue = e.device.Queue(*indices.PresentFamily, 0)
	}

	e.log.WithField("queue_families", indices.Unique()).Info("Logical device created")
	e.state = StateLogicalDeviceCreated
	return nil
}

// Run polls window events until the window asks to close. It does no
// other work per iteration.
func (e *Engine) Run() error {
	if !e.state.started() {
		return errors.Wrapf(ErrInvalidState, "run in state %s", e.state)
	}

	e.state = StateRunning
	e.isRunning = true
	for !e.window.ShouldClose() {
		e.system.PollEvents()
	}
	e.isRunning = false

	return nil
}

// Shutdown releases every held handle in reverse order of creation, the
// window library last. Calling it again, or before Startup, does nothing.
func (e *Engine) Shutdown() {
	if e.state == StateUninitialized || e.state == StateShutDown {
		return
	}

	e.log.Info("Hydra Engine is shutting down.")
	e.releases.unwind(e.log)
	e.isRunning = false
	e.state = StateShutDown
}
