// Package vkng implements the gpu interfaces on top of vkngwrapper.
package vkng

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"

	"github.com/hydra-engine/hydra/gpu"
)

// VK_KHR_portability_enumeration is newer than the extension packages this
// module builds against.
const portabilityEnumerationExtension = "VK_KHR_portability_enumeration"

const instanceCreateEnumeratePortability core1_0.InstanceCreateFlags = 0x00000001

// Driver creates Vulkan instances through a vkngwrapper loader.
type Driver struct {
	loader core.Loader
	log    logrus.FieldLogger
}

func newDriver(loader core.Loader, log logrus.FieldLogger) *Driver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Driver{loader: loader, log: log}
}

// Open creates a loader from vkGetInstanceProcAddr as provided by the
// window library.
func Open(procAddr unsafe.Pointer, log logrus.FieldLogger) (*Driver, error) {
	if procAddr == nil {
		return nil, errors.New("vkGetInstanceProcAddr is nil")
	}

	loader, err := core.CreateLoaderFromProcAddr(procAddr)
	if err != nil {
		return nil, errors.Wrap(err, "create loader")
	}

	return newDriver(loader, log), nil
}

func apiVersion(v gpu.Version) common.APIVersion {
	switch {
	case v.Major == 1 && v.Minor >= 2:
		return common.Vulkan1_2
	case v.Major == 1 && v.Minor == 1:
		return common.Vulkan1_1
	}
	return common.Vulkan1_0
}

func version(v gpu.Version) common.Version {
	return common.CreateVersion(v.Major, v.Minor, v.Patch)
}

// CreateInstance checks that every requested extension and layer is
// available before creating the instance.
func (d *Driver) CreateInstance(info gpu.InstanceCreateInfo) (gpu.Instance, error) {
	app := info.Application
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    app.ApplicationName,
		ApplicationVersion: version(app.ApplicationVersion),
		EngineName:         app.EngineName,
		EngineVersion:      version(app.EngineVersion),
		APIVersion:         apiVersion(app.APIVersion),
	}

	// Add extensions
	extensions, _, err := d.loader.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "available instance extensions")
	}

	instanceOptions.EnabledExtensionNames, instanceOptions.Flags, err = instanceExtensions(extensions, info)
	if err != nil {
		return nil, err
	}

	// Add layers
	if len(info.Layers) > 0 {
		layers, _, err := d.loader.AvailableLayers()
		if err != nil {
			return nil, errors.Wrap(err, "available instance layers")
		}

		for _, layer := range info.Layers {
			_, hasLayer := layers[layer]
			if !hasLayer {
				return nil, errors.Newf("createInstance: cannot add layer %s not available- install LunarG Vulkan SDK", layer)
			}
			instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, layer)
		}
	}

	var messenger *debugMessenger
	if info.DebugMessenger {
		messenger = &debugMessenger{log: d.log}
		// Covers messages emitted during vkCreateInstance itself.
		instanceOptions.Next = messenger.createInfo()
	}

	instance, _, err := d.loader.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	if messenger != nil {
		if err := messenger.attach(instance); err != nil {
			instance.Destroy(nil)
			return nil, err
		}
	}

	return &Instance{instance: instance, messenger: messenger}, nil
}

// instanceExtensions returns the extensions to enable, including
// VK_EXT_debug_utils for a debug messenger, and the portability flag when
// the loader enumerates portability drivers.
func instanceExtensions(available map[string]*core1_0.ExtensionProperties, info gpu.InstanceCreateInfo) ([]string, core1_0.InstanceCreateFlags, error) {
	requested := make([]string, 0, len(info.Extensions)+2)
	requested = append(requested, info.Extensions...)
	if info.DebugMessenger {
		requested = append(requested, ext_debug_utils.ExtensionName)
	}

	var names []string
	for _, ext := range requested {
		_, hasExt := available[ext]
		if !hasExt {
			return nil, 0, errors.Newf("createInstance: missing extension %s", ext)
		}
		names = append(names, ext)
	}

	var flags core1_0.InstanceCreateFlags
	_, enumerationSupported := available[portabilityEnumerationExtension]
	if enumerationSupported {
		names = append(names, portabilityEnumerationExtension)
		flags |= instanceCreateEnumeratePortability
	}

	return names, flags, nil
}

// Instance wraps a core1_0.Instance and its optional debug messenger.
type Instance struct {
	instance  core1_0.Instance
	messenger *debugMessenger
}

// Handle returns the wrapped vkngwrapper instance.
func (i *Instance) Handle() core1_0.Instance {
	return i.instance
}

func (i *Instance) PhysicalDevices() ([]gpu.PhysicalDevice, error) {
	physicalDevices, _, err := i.instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	out := make([]gpu.PhysicalDevice, 0, len(physicalDevices))
	for _, device := range physicalDevices {
		out = append(out, &PhysicalDevice{device: device})
	}
	return out, nil
}

// Destroy destroys the debug messenger, if any, and then the instance.
func (i *Instance) Destroy() {
	if i.messenger != nil {
		i.messenger.destroy()
	}
	i.instance.Destroy(nil)
}

// UnwrapInstance returns the vkngwrapper instance behind a gpu.Instance
// created by this package.
func UnwrapInstance(instance gpu.Instance) (core1_0.Instance, error) {
	i, ok := instance.(*Instance)
	if !ok {
		return nil, errors.Newf("instance %T was not created by the vkng driver", instance)
	}
	return i.instance, nil
}
