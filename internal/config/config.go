// Package config provides YAML-based tuning configuration and device-class
// profiles for the Genesis canvas.
package config

import "time"

// Config contains all tuning parameters for the canvas engine.
type Config struct {
	Element     ElementConfig     `yaml:"element"`
	Gesture     GestureConfig     `yaml:"gesture"`
	Placement   PlacementConfig   `yaml:"placement"`
	Devices     DevicesConfig     `yaml:"devices"`
	Collection  CollectionConfig  `yaml:"collection"`
	Hint        HintConfig        `yaml:"hint"`
	Persistence PersistenceConfig `yaml:"persistence"`
}

// ElementConfig defines element geometry.
type ElementConfig struct {
	Radius     float64 `yaml:"radius"`
	SafeMargin float64 `yaml:"safe_margin"`
}

// MinGap is the smallest allowed distance between two resting element centers.
func (e ElementConfig) MinGap() float64 {
	return e.Radius*2 + e.SafeMargin
}

// GestureConfig defines tap and drag recognition thresholds.
type GestureConfig struct {
	DoubleTapMS int     `yaml:"double_tap_ms"`
	TapSlop     float64 `yaml:"tap_slop"`
	DragStart   float64 `yaml:"drag_start"`
}

// DoubleTapWindow returns the double-tap window as a duration.
func (g GestureConfig) DoubleTapWindow() time.Duration {
	return time.Duration(g.DoubleTapMS) * time.Millisecond
}

// PlacementConfig defines the ring search shape.
type PlacementConfig struct {
	RingStepMin       float64 `yaml:"ring_step_min"`
	RingStepRatio     float64 `yaml:"ring_step_ratio"`     // Of the element radius
	MaxRingRatio      float64 `yaml:"max_ring_ratio"`      // Of the device spawn radius
	CombineStartRatio float64 `yaml:"combine_start_ratio"` // Of the device spawn radius
	QuadStartRatio    float64 `yaml:"quad_start_ratio"`    // Of the device spawn radius
}

// DevicesConfig holds the per-class profiles and the class boundary.
type DevicesConfig struct {
	PhoneMaxWidth float64       `yaml:"phone_max_width"`
	Phone         DeviceProfile `yaml:"phone"`
	Pad           DeviceProfile `yaml:"pad"`
}

// DeviceProfile defines capacity and spacing for one device class.
type DeviceProfile struct {
	Capacity         int     `yaml:"capacity"`
	SpawnRadiusMin   float64 `yaml:"spawn_radius_min"`
	SpawnRadiusRatio float64 `yaml:"spawn_radius_ratio"` // Of the element radius
	TrashRail        float64 `yaml:"trash_rail"`         // Thickness of the drop-to-delete rail
}

// CollectionConfig defines compendium limits.
type CollectionConfig struct {
	FavoritesMax int `yaml:"favorites_max"`
}

// HintConfig defines the rewarded-hint quota.
type HintConfig struct {
	DailyLimit int `yaml:"daily_limit"`
}

// PersistenceConfig defines where and how often state is saved.
type PersistenceConfig struct {
	Key        string `yaml:"key"`
	DebounceMS int    `yaml:"debounce_ms"`
}

// Debounce returns the save quiet period as a duration.
func (p PersistenceConfig) Debounce() time.Duration {
	return time.Duration(p.DebounceMS) * time.Millisecond
}
