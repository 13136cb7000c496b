package config

import (
	_ "embed"
)

//go:embed defaults/genesis.yaml
var defaultGenesisYAML []byte

// DefaultConfig returns the default Genesis configuration.
func DefaultConfig() Config {
	return Config{
		Element: ElementConfig{
			Radius:     22,
			SafeMargin: 8,
		},
		Gesture: GestureConfig{
			DoubleTapMS: 280,
			TapSlop:     10,
			DragStart:   12,
		},
		Placement: PlacementConfig{
			RingStepMin:       12,
			RingStepRatio:     0.5,
			MaxRingRatio:      3.5,
			CombineStartRatio: 0,
			QuadStartRatio:    0.5,
		},
		Devices: DevicesConfig{
			PhoneMaxWidth: 700,
			Phone: DeviceProfile{
				Capacity:         80,
				SpawnRadiusMin:   56,
				SpawnRadiusRatio: 2.4,
				TrashRail:        86,
			},
			Pad: DeviceProfile{
				Capacity:         120,
				SpawnRadiusMin:   72,
				SpawnRadiusRatio: 2.8,
				TrashRail:        86,
			},
		},
		Collection: CollectionConfig{
			FavoritesMax: 10,
		},
		Hint: HintConfig{
			DailyLimit: 3,
		},
		Persistence: PersistenceConfig{
			Key:        "genesis-v1-state",
			DebounceMS: 450,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGenesisYAML
}
