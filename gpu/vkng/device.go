package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_portability_subset"

	"github.com/hydra-engine/hydra/gpu"
)

// PhysicalDevice wraps a core1_0.PhysicalDevice.
type PhysicalDevice struct {
	device core1_0.PhysicalDevice
}

func deviceType(t core1_0.PhysicalDeviceType) gpu.DeviceType {
	switch t {
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return gpu.DeviceTypeIntegratedGPU
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return gpu.DeviceTypeDiscreteGPU
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return gpu.DeviceTypeVirtualGPU
	case core1_0.PhysicalDeviceTypeCPU:
		return gpu.DeviceTypeCPU
	}
	return gpu.DeviceTypeOther
}

func (p *PhysicalDevice) Properties() (gpu.DeviceProperties, error) {
	properties, err := p.device.Properties()
	if err != nil {
		return gpu.DeviceProperties{}, err
	}

	return gpu.DeviceProperties{
		Name:     properties.DriverName,
		Type:     deviceType(properties.DriverType),
		VendorID: uint32(properties.VendorID),
		DeviceID: uint32(properties.DeviceID),
	}, nil
}

func (p *PhysicalDevice) Features() gpu.DeviceFeatures {
	features := p.device.Features()
	return gpu.DeviceFeatures{
		GeometryShader:     features.GeometryShader,
		TessellationShader: features.TessellationShader,
		SamplerAnisotropy:  features.SamplerAnisotropy,
		FillModeNonSolid:   features.FillModeNonSolid,
		WideLines:          features.WideLines,
	}
}

func queueFlags(flags core1_0.QueueFlags) gpu.QueueFlags {
	var out gpu.QueueFlags
	if flags&core1_0.QueueGraphics != 0 {
		out |= gpu.QueueGraphics
	}
	if flags&core1_0.QueueCompute != 0 {
		out |= gpu.QueueCompute
	}
	if flags&core1_0.QueueTransfer != 0 {
		out |= gpu.QueueTransfer
	}
	if flags&core1_0.QueueSparseBinding != 0 {
		out |= gpu.QueueSparseBinding
	}
	return out
}

func (p *PhysicalDevice) QueueFamilies() []gpu.QueueFamily {
	queueFamilies := p.device.QueueFamilyProperties()

	out := make([]gpu.QueueFamily, 0, len(queueFamilies))
	for _, queueFamily := range queueFamilies {
		out = append(out, gpu.QueueFamily{
			Flags:      queueFlags(queueFamily.QueueFlags),
			QueueCount: int(queueFamily.QueueCount),
		})
	}
	return out
}

func (p *PhysicalDevice) Extensions() (map[string]struct{}, error) {
	extensions, _, err := p.device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, err
	}

	out := make(map[string]struct{}, len(extensions))
	for name := range extensions {
		out[name] = struct{}{}
	}
	return out, nil
}

// CreateDevice enables the requested features and extensions, plus
// VK_KHR_portability_subset when the device exposes it.
func (p *PhysicalDevice) CreateDevice(info gpu.DeviceCreateInfo) (gpu.Device, error) {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	for _, queue := range info.Queues {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queue.Family,
			QueuePriorities:  queue.Priorities,
		})
	}

	var extensionNames []string
	extensionNames = append(extensionNames, info.Extensions...)

	// Makes the engine compatible with vulkan portability, necessary to run on mobile & mac
	extensions, _, err := p.device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, err
	}

	_, supported := extensions[khr_portability_subset.ExtensionName]
	if supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	features := info.Features
	device, _, err := p.device.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: queueFamilyOptions,
		EnabledFeatures: &core1_0.PhysicalDeviceFeatures{
			GeometryShader:     features.GeometryShader,
			TessellationShader: features.TessellationShader,
			SamplerAnisotropy:  features.SamplerAnisotropy,
			FillModeNonSolid:   features.FillModeNonSolid,
			WideLines:          features.WideLines,
		},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return nil, err
	}

	return &Device{device: device}, nil
}

func unwrapPhysicalDevice(device gpu.PhysicalDevice) (core1_0.PhysicalDevice, error) {
	p, ok := device.(*PhysicalDevice)
	if !ok {
		return nil, errors.Newf("physical device %T was not created by the vkng driver", device)
	}
	return p.device, nil
}

// Device wraps a core1_0.Device.
type Device struct {
	device core1_0.Device
}

func (d *Device) Queue(family, index int) gpu.Queue {
	return &Queue{queue: d.device.GetQueue(family, index), family: family}
}

func (d *Device) Destroy() {
	d.device.Destroy(nil)
}

// Queue wraps a core1_0.Queue.
type Queue struct {
	queue  core1_0.Queue
	family int
}

func (q *Queue) Family() int {
	return q.family
}

// Handle returns the wrapped vkngwrapper queue.
func (q *Queue) Handle() core1_0.Queue {
	return q.queue
}
