package vkng

import (
	"github.com/vkngwrapper/extensions/khr_surface"

	"github.com/hydra-engine/hydra/gpu"
)

// Surface wraps a khr_surface.Surface created by a window backend.
type Surface struct {
	surface khr_surface.Surface
}

// WrapSurface adopts a surface. Destroying the returned gpu.Surface
// destroys it.
func WrapSurface(surface khr_surface.Surface) *Surface {
	return &Surface{surface: surface}
}

func (s *Surface) PresentSupport(device gpu.PhysicalDevice, family int) (bool, error) {
	physicalDevice, err := unwrapPhysicalDevice(device)
	if err != nil {
		return false, err
	}

	supported, _, err := s.surface.PhysicalDeviceSurfaceSupport(physicalDevice, family)
	return supported, err
}

func (s *Surface) Formats(device gpu.PhysicalDevice) ([]gpu.SurfaceFormat, error) {
	physicalDevice, err := unwrapPhysicalDevice(device)
	if err != nil {
		return nil, err
	}

	formats, _, err := s.surface.PhysicalDeviceSurfaceFormats(physicalDevice)
	if err != nil {
		return nil, err
	}

	out := make([]gpu.SurfaceFormat, 0, len(formats))
	for _, format := range formats {
		out = append(out, gpu.SurfaceFormat{
			Format:     uint32(format.Format),
			ColorSpace: uint32(format.ColorSpace),
		})
	}
	return out, nil
}

func presentMode(mode khr_surface.PresentMode) gpu.PresentMode {
	switch mode {
	case khr_surface.PresentModeImmediate:
		return gpu.PresentModeImmediate
	case khr_surface.PresentModeMailbox:
		return gpu.PresentModeMailbox
	case khr_surface.PresentModeFIFORelaxed:
		return gpu.PresentModeFIFORelaxed
	}
	return gpu.PresentModeFIFO
}

func (s *Surface) PresentModes(device gpu.PhysicalDevice) ([]gpu.PresentMode, error) {
	physicalDevice, err := unwrapPhysicalDevice(device)
	if err != nil {
		return nil, err
	}

	presentModes, _, err := s.surface.PhysicalDeviceSurfacePresentModes(physicalDevice)
	if err != nil {
		return nil, err
	}

	out := make([]gpu.PresentMode, 0, len(presentModes))
	for _, mode := range presentModes {
		out = append(out, presentMode(mode))
	}
	return out, nil
}

func (s *Surface) Destroy() {
	s.surface.Destroy(nil)
}
