package storage

import "chibitomo/internal/core/model"

// Appearance value ranges accepted by the settings loader. Opacity below
// MinOpacity would make the widget effectively invisible.
const (
	MinOpacity = 0.2
	MaxOpacity = 1.0
	MinScale   = 0.05
	MaxScale   = 2.0
)

// Settings defines persisted user preferences.
type Settings struct {
	Durations model.Durations

	NotifyPopup bool
	NotifySound bool

	Opacity float64
	UIScale float64

	ImagePath     string
	LockPosition  bool
	LaunchAtLogin bool

	WindowWidth  int
	WindowHeight int
}

// DefaultSettings returns the out-of-the-box configuration: classic
// cycle, both notification channels on, fully opaque at 100% scale.
func DefaultSettings() Settings {
	return Settings{
		Durations:   model.DefaultDurations(),
		NotifyPopup: true,
		NotifySound: true,
		Opacity:     1.0,
		UIScale:     1.0,
	}
}

func clampFloat(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
