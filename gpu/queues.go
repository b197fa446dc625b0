package gpu

import "github.com/cockroachdb/errors"

// QueueFamilyIndices holds the queue families the engine needs.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

// IsComplete reports whether both a graphics and a present family were
// found. They may be the same family.
func (i *QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Unique returns the distinct families to create queues from, graphics
// first.
func (i *QueueFamilyIndices) Unique() []int {
	var families []int
	if i.GraphicsFamily != nil {
		families = append(families, *i.GraphicsFamily)
	}
	if i.PresentFamily != nil && (i.GraphicsFamily == nil || *i.PresentFamily != *i.GraphicsFamily) {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// FindQueueFamilies scans the device's queue families once. Present support
// is only queried when surface is non-nil; without a surface the scan stops
// as soon as a graphics family is found.
func FindQueueFamilies(device PhysicalDevice, surface Surface) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}

	for queueFamilyIdx, queueFamily := range device.QueueFamilies() {
		if (queueFamily.Flags & QueueGraphics) != 0 {
			indices.GraphicsFamily = new(int)
			*indices.GraphicsFamily = queueFamilyIdx
		}

		if surface != nil {
			supported, err := surface.PresentSupport(device, queueFamilyIdx)
			if err != nil {
				return indices, errors.Wrapf(err, "present support for queue family %d", queueFamilyIdx)
			}

			if supported {
				indices.PresentFamily = new(int)
				*indices.PresentFamily = queueFamilyIdx
			}
		}

		if indices.IsComplete() || (surface == nil && indices.GraphicsFamily != nil) {
			break
		}
	}

	return indices, nil
}
