package gpu

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoDevices is returned when the driver reports no physical devices.
	ErrNoDevices = errors.New("failed to find GPUs with Vulkan support")

	// ErrNoSuitableDevice is returned when no physical device satisfies the
	// requirements.
	ErrNoSuitableDevice = errors.New("failed to find a suitable GPU")

	// ErrUnsuitableDevice marks the reason a single device was rejected.
	ErrUnsuitableDevice = errors.New("unsuitable device")
)

// Requirements is what a physical device must offer to be selected.
type Requirements struct {
	// Extensions are device extensions that must all be supported.
	Extensions []string

	// Features that must be supported. Unset fields are not required.
	Features DeviceFeatures

	// RequireDiscrete rejects everything but discrete GPUs.
	RequireDiscrete bool
}

func unsuitable(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrUnsuitableDevice)
}

// CheckDevice returns nil if device satisfies req, otherwise an error marked
// with ErrUnsuitableDevice describing the first criterion that failed. A nil
// surface skips present-family and surface adequacy checks.
func CheckDevice(device PhysicalDevice, surface Surface, req Requirements) error {
	if req.RequireDiscrete {
		props, err := device.Properties()
		if err != nil {
			return errors.Mark(errors.Wrap(err, "device properties"), ErrUnsuitableDevice)
		}
		if props.Type != DeviceTypeDiscreteGPU {
			return unsuitable("device type is %s, need discrete", props.Type)
		}
	}

	indices, err := FindQueueFamilies(device, surface)
	if err != nil {
		return errors.Mark(err, ErrUnsuitableDevice)
	}
	if indices.GraphicsFamily == nil {
		return unsuitable("no graphics queue family")
	}
	if surface != nil && indices.PresentFamily == nil {
		return unsuitable("no queue family can present to the surface")
	}

	missing, err := missingExtensions(device, req.Extensions)
	if err != nil {
		return errors.Mark(err, ErrUnsuitableDevice)
	}
	if len(missing) > 0 {
		return unsuitable("missing device extensions: %s", strings.Join(missing, ", "))
	}

	if surface != nil {
		formats, err := surface.Formats(device)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "surface formats"), ErrUnsuitableDevice)
		}
		presentModes, err := surface.PresentModes(device)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "surface present modes"), ErrUnsuitableDevice)
		}
		if len(formats) == 0 || len(presentModes) == 0 {
			return unsuitable("swapchain inadequate: %d formats, %d present modes", len(formats), len(presentModes))
		}
	}

	if missing := device.Features().Missing(req.Features); len(missing) > 0 {
		return unsuitable("missing features: %s", strings.Join(missing, ", "))
	}

	return nil
}

// IsDeviceSuitable reports whether CheckDevice passes.
func IsDeviceSuitable(device PhysicalDevice, surface Surface, req Requirements) bool {
	return CheckDevice(device, surface, req) == nil
}

func missingExtensions(device PhysicalDevice, required []string) ([]string, error) {
	if len(required) == 0 {
		return nil, nil
	}

	extensions, err := device.Extensions()
	if err != nil {
		return nil, errors.Wrap(err, "device extensions")
	}

	var missing []string
	for _, extension := range required {
		if _, hasExtension := extensions[extension]; !hasExtension {
			missing = append(missing, extension)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing), nil
}

// PickPhysicalDevice returns the first device in driver enumeration order
// that satisfies req. There is no ranking between suitable devices.
func PickPhysicalDevice(instance Instance, surface Surface, req Requirements, log logrus.FieldLogger) (PhysicalDevice, error) {
	physicalDevices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}
	if len(physicalDevices) == 0 {
		return nil, ErrNoDevices
	}

	log.WithField("count", len(physicalDevices)).Info("Found Vulkan-capable devices")

	for idx, device := range physicalDevices {
		entry := log.WithField("index", idx)
		if props, err := device.Properties(); err == nil {
			entry = entry.WithFields(logrus.Fields{"device": props.Name, "type": props.Type})
		}

		if err := CheckDevice(device, surface, req); err != nil {
			entry.WithField("reason", err.Error()).Debug("Skipping physical device")
			continue
		}

		entry.Info("Selected physical device")
		return device, nil
	}

	return nil, ErrNoSuitableDevice
}

// DeviceReport summarises one physical device for diagnostics.
type DeviceReport struct {
	Index      int
	Properties DeviceProperties
	Features   DeviceFeatures
	Suitable   bool
	Reason     string
}

// Survey checks every physical device against req.
func Survey(instance Instance, surface Surface, req Requirements) ([]DeviceReport, error) {
	physicalDevices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}

	reports := make([]DeviceReport, 0, len(physicalDevices))
	for idx, device := range physicalDevices {
		report := DeviceReport{Index: idx, Features: device.Features()}
		if props, err := device.Properties(); err == nil {
			report.Properties = props
		}
		if err := CheckDevice(device, surface, req); err != nil {
			report.Reason = err.Error()
		} else {
			report.Suitable = true
		}
		reports = append(reports, report)
	}
	return reports, nil
}
