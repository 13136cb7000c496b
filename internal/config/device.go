package config

import "math"

// DeviceClass selects capacity and spacing from the canvas shape.
type DeviceClass string

const (
	DevicePhone DeviceClass = "phone" // Narrow portrait canvas, trash rail on the left
	DevicePad   DeviceClass = "pad"   // Wide canvas, trash rail along the bottom
)

// Classify returns the device class for a canvas of the given size.
// Portrait canvases narrower than Devices.PhoneMaxWidth are phones.
func (c Config) Classify(w, h float64) DeviceClass {
	if h >= w && w < c.Devices.PhoneMaxWidth {
		return DevicePhone
	}
	return DevicePad
}

// Profile returns the profile for a device class.
func (c Config) Profile(class DeviceClass) DeviceProfile {
	if class == DevicePhone {
		return c.Devices.Phone
	}
	return c.Devices.Pad
}

// SpawnRadius returns the distance fresh spawns keep from their anchor.
func (p DeviceProfile) SpawnRadius(elementRadius float64) float64 {
	return math.Max(p.SpawnRadiusMin, elementRadius*p.SpawnRadiusRatio)
}

// RingStep returns the radial increment between placement rings.
func (c Config) RingStep() float64 {
	return math.Max(c.Placement.RingStepMin, c.Element.Radius*c.Placement.RingStepRatio)
}
