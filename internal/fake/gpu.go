// Package fake provides in-memory window and graphics driver doubles that
// record the order in which handles are acquired and released.
package fake

import (
	"github.com/cockroachdb/errors"

	"github.com/hydra-engine/hydra/gpu"
)

// Recorder collects acquire and release events.
type Recorder struct {
	Events []string
}

func (r *Recorder) acquire(name string) {
	if r != nil {
		r.Events = append(r.Events, "acquire "+name)
	}
}

func (r *Recorder) release(name string) {
	if r != nil {
		r.Events = append(r.Events, "release "+name)
	}
}

// Acquired returns acquired handle names in order.
func (r *Recorder) Acquired() []string {
	return r.filter("acquire ")
}

// Released returns released handle names in order.
func (r *Recorder) Released() []string {
	return r.filter("release ")
}

func (r *Recorder) filter(prefix string) []string {
	var out []string
	for _, e := range r.Events {
		if len(e) > len(prefix) && e[:len(prefix)] == prefix {
			out = append(out, e[len(prefix):])
		}
	}
	return out
}

// Driver is a fake gpu.Driver.
type Driver struct {
	Recorder *Recorder
	Devices  []*PhysicalDevice

	CreateErr    error
	EnumerateErr error

	// Created is the last instance handed out.
	Created *Instance
}

func (d *Driver) CreateInstance(info gpu.InstanceCreateInfo) (gpu.Instance, error) {
	if d.CreateErr != nil {
		return nil, d.CreateErr
	}
	d.Recorder.acquire("instance")
	d.Created = &Instance{driver: d, Info: info}
	return d.Created, nil
}

// Instance is a fake gpu.Instance.
type Instance struct {
	driver    *Driver
	Info      gpu.InstanceCreateInfo
	Destroyed bool
}

func (i *Instance) PhysicalDevices() ([]gpu.PhysicalDevice, error) {
	if i.driver.EnumerateErr != nil {
		return nil, i.driver.EnumerateErr
	}
	out := make([]gpu.PhysicalDevice, 0, len(i.driver.Devices))
	for _, d := range i.driver.Devices {
		d.recorder = i.driver.Recorder
		out = append(out, d)
	}
	return out, nil
}

func (i *Instance) Destroy() {
	i.Destroyed = true
	i.driver.Recorder.release("instance")
}

// PhysicalDevice is a fake gpu.PhysicalDevice. Surface-related fields are
// consulted by Surface.
type PhysicalDevice struct {
	Props           gpu.DeviceProperties
	DeviceFeatures  gpu.DeviceFeatures
	Families        []gpu.QueueFamily
	SupportedExts   []string
	PresentFamilies map[int]bool
	SurfaceFormats  []gpu.SurfaceFormat
	SurfaceModes    []gpu.PresentMode

	CreateErr  error
	PresentErr error

	PresentQueries int
	LastCreateInfo *gpu.DeviceCreateInfo

	recorder *Recorder
}

// NewPhysicalDevice returns a device with one graphics+present family, the
// swapchain extension, one surface format and FIFO present mode.
func NewPhysicalDevice(name string, typ gpu.DeviceType, features gpu.DeviceFeatures) *PhysicalDevice {
	return &PhysicalDevice{
		Props:           gpu.DeviceProperties{Name: name, Type: typ},
		DeviceFeatures:  features,
		Families:        []gpu.QueueFamily{{Flags: gpu.QueueGraphics | gpu.QueueCompute | gpu.QueueTransfer, QueueCount: 1}},
		SupportedExts:   []string{"VK_KHR_swapchain"},
		PresentFamilies: map[int]bool{0: true},
		SurfaceFormats:  []gpu.SurfaceFormat{{Format: 50, ColorSpace: 0}},
		SurfaceModes:    []gpu.PresentMode{gpu.PresentModeFIFO},
	}
}

func (p *PhysicalDevice) Properties() (gpu.DeviceProperties, error) {
	return p.Props, nil
}

func (p *PhysicalDevice) Features() gpu.DeviceFeatures {
	return p.DeviceFeatures
}

func (p *PhysicalDevice) QueueFamilies() []gpu.QueueFamily {
	return p.Families
}

func (p *PhysicalDevice) Extensions() (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(p.SupportedExts))
	for _, e := range p.SupportedExts {
		out[e] = struct{}{}
	}
	return out, nil
}

func (p *PhysicalDevice) CreateDevice(info gpu.DeviceCreateInfo) (gpu.Device, error) {
	p.LastCreateInfo = &info
	if p.CreateErr != nil {
		return nil, p.CreateErr
	}
	p.recorder.acquire("device")
	return &Device{recorder: p.recorder}, nil
}

// Surface is a fake gpu.Surface.
type Surface struct {
	recorder  *Recorder
	Destroyed bool
}

// NewSurface returns a surface that records its release on r.
func NewSurface(r *Recorder) *Surface {
	r.acquire("surface")
	return &Surface{recorder: r}
}

func asFake(device gpu.PhysicalDevice) (*PhysicalDevice, error) {
	p, ok := device.(*PhysicalDevice)
	if !ok {
		return nil, errors.Newf("fake: foreign physical device %T", device)
	}
	return p, nil
}

func (s *Surface) PresentSupport(device gpu.PhysicalDevice, family int) (bool, error) {
	p, err := asFake(device)
	if err != nil {
		return false, err
	}
	p.PresentQueries++
	if p.PresentErr != nil {
		return false, p.PresentErr
	}
	return p.PresentFamilies[family], nil
}

func (s *Surface) Formats(device gpu.PhysicalDevice) ([]gpu.SurfaceFormat, error) {
	p, err := asFake(device)
	if err != nil {
		return nil, err
	}
	return p.SurfaceFormats, nil
}

func (s *Surface) PresentModes(device gpu.PhysicalDevice) ([]gpu.PresentMode, error) {
	p, err := asFake(device)
	if err != nil {
		return nil, err
	}
	return p.SurfaceModes, nil
}

func (s *Surface) Destroy() {
	s.Destroyed = true
	s.recorder.release("surface")
}

// Device is a fake gpu.Device.
type Device struct {
	recorder  *Recorder
	Destroyed bool
}

func (d *Device) Queue(family, index int) gpu.Queue {
	return Queue(family)
}

func (d *Device) Destroy() {
	d.Destroyed = true
	d.recorder.release("device")
}

// Queue is a fake gpu.Queue identified by its family.
type Queue int

func (q Queue) Family() int {
	return int(q)
}
