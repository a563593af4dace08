package contracts

// DeviceInfo describes one MIDI output device as reported by a driver.
// Devices are addressed by their position in the slice returned from ListDevices.
type DeviceInfo struct {
	Name         string // Device or port name.
	Manufacturer string // Manufacturer, when the driver reports one.
	EntityName   string // Name of the entity the endpoint belongs to (CoreMIDI), otherwise Name.
}
