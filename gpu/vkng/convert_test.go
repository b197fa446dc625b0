package vkng

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"

	"github.com/hydra-engine/hydra/engine"
	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/internal/fake"
)

func TestDeviceType(t *testing.T) {
	c := qt.New(t)

	c.Assert(deviceType(core1_0.PhysicalDeviceTypeDiscreteGPU), qt.Equals, gpu.DeviceTypeDiscreteGPU)
	c.Assert(deviceType(core1_0.PhysicalDeviceTypeIntegratedGPU), qt.Equals, gpu.DeviceTypeIntegratedGPU)
	c.Assert(deviceType(core1_0.PhysicalDeviceTypeVirtualGPU), qt.Equals, gpu.DeviceTypeVirtualGPU)
	c.Assert(deviceType(core1_0.PhysicalDeviceTypeCPU), qt.Equals, gpu.DeviceTypeCPU)
	c.Assert(deviceType(core1_0.PhysicalDeviceTypeOther), qt.Equals, gpu.DeviceTypeOther)
}

func TestQueueFlags(t *testing.T) {
	c := qt.New(t)

	c.Assert(queueFlags(core1_0.QueueGraphics|core1_0.QueueTransfer), qt.Equals, gpu.QueueGraphics|gpu.QueueTransfer)
	c.Assert(queueFlags(core1_0.QueueCompute|core1_0.QueueSparseBinding), qt.Equals, gpu.QueueCompute|gpu.QueueSparseBinding)
	c.Assert(queueFlags(0), qt.Equals, gpu.QueueFlags(0))
}

func TestAPIVersion(t *testing.T) {
	c := qt.New(t)

	c.Assert(apiVersion(gpu.Version{Major: 1}), qt.Equals, common.Vulkan1_0)
	c.Assert(apiVersion(gpu.Version{Major: 1, Minor: 1}), qt.Equals, common.Vulkan1_1)
	c.Assert(apiVersion(gpu.Version{Major: 1, Minor: 2}), qt.Equals, common.Vulkan1_2)
	c.Assert(apiVersion(gpu.Version{Major: 1, Minor: 3}), qt.Equals, common.Vulkan1_2)
}

func TestPresentMode(t *testing.T) {
	c := qt.New(t)

	c.Assert(presentMode(khr_surface.PresentModeImmediate), qt.Equals, gpu.PresentModeImmediate)
	c.Assert(presentMode(khr_surface.PresentModeMailbox), qt.Equals, gpu.PresentModeMailbox)
	c.Assert(presentMode(khr_surface.PresentModeFIFO), qt.Equals, gpu.PresentModeFIFO)
	c.Assert(presentMode(khr_surface.PresentModeFIFORelaxed), qt.Equals, gpu.PresentModeFIFORelaxed)
}

func TestSwapchainExtensionName(t *testing.T) {
	c := qt.New(t)
	c.Assert(engine.SwapchainExtension, qt.Equals, khr_swapchain.ExtensionName)
}

func TestForeignHandles(t *testing.T) {
	c := qt.New(t)

	_, err := UnwrapInstance(&fake.Instance{})
	c.Assert(err, qt.ErrorMatches, `instance \*fake.Instance was not created by the vkng driver`)

	surface := WrapSurface(nil)
	_, err = surface.PresentSupport(fake.NewPhysicalDevice("gpu", gpu.DeviceTypeDiscreteGPU, gpu.DeviceFeatures{}), 0)
	c.Assert(err, qt.ErrorMatches, `physical device \*fake.PhysicalDevice was not created by the vkng driver`)
}

func TestOpenNilProcAddr(t *testing.T) {
	c := qt.New(t)
	_, err := Open(nil, nil)
	c.Assert(err, qt.ErrorMatches, `vkGetInstanceProcAddr is nil`)
}
