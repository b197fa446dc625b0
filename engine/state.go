package engine

// State is a step of the engine lifecycle. States only move forward.
type State int

const (
	StateUninitialized State = iota
	StateWindowCreated
	StateInstanceCreated
	StateSurfaceCreated
	StatePhysicalDeviceSelected
	StateLogicalDeviceCreated
	StateRunning
	StateShutDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateWindowCreated:
		return "window created"
	case StateInstanceCreated:
		return "instance created"
	case StateSurfaceCreated:
		return "surface created"
	case StatePhysicalDeviceSelected:
		return "physical device selected"
	case StateLogicalDeviceCreated:
		return "logical device created"
	case StateRunning:
		return "running"
	case StateShutDown:
		return "shut down"
	}
	return "unknown"
}

// started reports whether startup completed and the engine can run.
func (s State) started() bool {
	return s >= StatePhysicalDeviceSelected && s != StateShutDown
}
