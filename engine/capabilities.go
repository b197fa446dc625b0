package engine

import (
	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/window"
)

const (
	// SwapchainExtension is required to present to a surface.
	SwapchainExtension = "VK_KHR_swapchain"

	// ValidationLayer is enabled when validation is requested.
	ValidationLayer = "VK_LAYER_KHRONOS_validation"
)

// Capabilities selects which optional objects the engine creates and what
// the physical device must support.
type Capabilities struct {
	Surface       bool
	LogicalDevice bool
	Requirements  gpu.Requirements
}

// MinimalCapabilities creates only a window and an instance and picks a
// discrete GPU with geometry shader support.
func MinimalCapabilities() Capabilities {
	return Capabilities{
		Requirements: gpu.Requirements{
			Features:        gpu.DeviceFeatures{GeometryShader: true},
			RequireDiscrete: true,
		},
	}
}

// StandardCapabilities adds a window surface and a logical device with
// graphics and present queues.
func StandardCapabilities() Capabilities {
	return Capabilities{
		Surface:       true,
		LogicalDevice: true,
		Requirements: gpu.Requirements{
			Extensions: []string{SwapchainExtension},
			Features:   gpu.DeviceFeatures{GeometryShader: true},
		},
	}
}

// Settings configure an Engine.
type Settings struct {
	Window       window.Options
	Application  gpu.ApplicationInfo
	Capabilities Capabilities

	// Validation enables the Khronos validation layer and forwards its
	// messages to the engine log.
	Validation bool
}

// DefaultSettings returns a 1280x768 "Hydra Engine" window with the
// standard capabilities.
func DefaultSettings() Settings {
	version := gpu.Version{Major: 1}
	return Settings{
		Window: window.Options{
			Title:  "Hydra Engine",
			Width:  1280,
			Height: 768,
		},
		Application: gpu.ApplicationInfo{
			ApplicationName:    "Hydra Engine",
			ApplicationVersion: version,
			EngineName:         "Hydra Engine",
			EngineVersion:      version,
			APIVersion:         gpu.Version{Major: 1},
		},
		Capabilities: StandardCapabilities(),
	}
}
