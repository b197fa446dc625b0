// Package gpu describes the parts of a graphics driver the engine needs to
// bootstrap: instances, physical devices, surfaces, logical devices and
// queues. Concrete drivers live in subpackages.
package gpu

import "fmt"

// Version is a major.minor.patch triple used for application, engine and
// API versions.
type Version struct {
	Major, Minor, Patch uint32
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ApplicationInfo is passed to the driver when the instance is created.
type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version
	APIVersion         Version
}

// InstanceCreateInfo describes an instance to create.
type InstanceCreateInfo struct {
	Application ApplicationInfo
	Extensions  []string
	Layers      []string

	// DebugMessenger installs a validation message callback for the
	// lifetime of the instance. Only meaningful with validation layers.
	DebugMessenger bool
}

// Driver creates instances.
type Driver interface {
	CreateInstance(info InstanceCreateInfo) (Instance, error)
}

// Instance is a driver instance. It owns nothing the engine must destroy
// other than itself.
type Instance interface {
	PhysicalDevices() ([]PhysicalDevice, error)
	Destroy()
}

// DeviceType is the kind of a physical device.
type DeviceType int

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "integrated"
	case DeviceTypeDiscreteGPU:
		return "discrete"
	case DeviceTypeVirtualGPU:
		return "virtual"
	case DeviceTypeCPU:
		return "cpu"
	}
	return "other"
}

// DeviceProperties are the identifying properties of a physical device.
type DeviceProperties struct {
	Name     string
	Type     DeviceType
	VendorID uint32
	DeviceID uint32
}

// QueueFlags are the capabilities of a queue family.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// QueueFamily is one entry of a device's queue family list.
type QueueFamily struct {
	Flags      QueueFlags
	QueueCount int
}

// SurfaceFormat is a pixel format and color space pair supported by a
// surface.
type SurfaceFormat struct {
	Format     uint32
	ColorSpace uint32
}

// PresentMode is a presentation mode supported by a surface.
type PresentMode uint32

const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFIFO
	PresentModeFIFORelaxed
)

// PhysicalDevice is one GPU reported by the driver. The driver owns it.
type PhysicalDevice interface {
	Properties() (DeviceProperties, error)
	Features() DeviceFeatures
	QueueFamilies() []QueueFamily
	Extensions() (map[string]struct{}, error)
	CreateDevice(info DeviceCreateInfo) (Device, error)
}

// Surface is a window-system render target bound to an instance.
type Surface interface {
	PresentSupport(device PhysicalDevice, family int) (bool, error)
	Formats(device PhysicalDevice) ([]SurfaceFormat, error)
	PresentModes(device PhysicalDevice) ([]PresentMode, error)
	Destroy()
}

// DeviceQueueCreateInfo requests queues from one family.
type DeviceQueueCreateInfo struct {
	Family     int
	Priorities []float32
}

// DeviceCreateInfo describes a logical device to create.
type DeviceCreateInfo struct {
	Queues     []DeviceQueueCreateInfo
	Features   DeviceFeatures
	Extensions []string
}

// Device is a logical device.
type Device interface {
	Queue(family, index int) Queue
	Destroy()
}

// Queue is a handle into a logical device. It has no lifetime of its own.
type Queue interface {
	Family() int
}
