package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"chibitomo/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes         int      `yaml:"focus_minutes"`
	BreakMinutes         int      `yaml:"break_minutes"`
	LongBreakMinutes     int      `yaml:"long_break_minutes"`
	SessionsPerLongBreak int      `yaml:"sessions_per_long_break"`
	NotifyPopup          *bool    `yaml:"notify_popup"`
	NotifySound          *bool    `yaml:"notify_sound"`
	Opacity              *float64 `yaml:"opacity"`
	UIScale              *float64 `yaml:"ui_scale"`
	ImagePath            string   `yaml:"image_path"`
	LockPosition         bool     `yaml:"lock_position"`
	LaunchAtLogin        bool     `yaml:"launch_at_login"`
	WindowWidth          int      `yaml:"window_width"`
	WindowHeight         int      `yaml:"window_height"`
}

// Store owns the persisted settings file. It is created once at startup
// and passed to the components that read or save preferences; all access
// happens on load/save/change events, never concurrently.
type Store struct {
	path     string
	settings Settings
}

// NewStore resolves the settings path under the user config directory
// and loads whatever is there. Resolution failure degrades to an
// in-memory store: the widget still works, preferences just do not
// survive a restart.
func NewStore(appName string) *Store {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return NewStoreAt("")
	}
	return NewStoreAt(filepath.Join(configDir, appName, settingsFileName))
}

// NewStoreAt creates a store backed by the given file path. An empty
// path keeps the store purely in memory.
func NewStoreAt(path string) *Store {
	store := &Store{path: path, settings: DefaultSettings()}
	store.load()
	return store
}

// Settings returns the current settings value.
func (store *Store) Settings() Settings {
	return store.settings
}

// Update applies a mutation and persists the result. The save error is
// returned for callers that want to log it; the in-memory settings are
// updated regardless.
func (store *Store) Update(mutate func(*Settings)) error {
	mutate(&store.settings)
	store.settings = sanitize(store.settings)
	return store.Save()
}

// Save writes the settings file.
func (store *Store) Save() error {
	if store.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:         store.settings.Durations.FocusMinutes,
		BreakMinutes:         store.settings.Durations.BreakMinutes,
		LongBreakMinutes:     store.settings.Durations.LongBreakMinutes,
		SessionsPerLongBreak: store.settings.Durations.SessionsPerLongBreak,
		NotifyPopup:          &store.settings.NotifyPopup,
		NotifySound:          &store.settings.NotifySound,
		Opacity:              &store.settings.Opacity,
		UIScale:              &store.settings.UIScale,
		ImagePath:            store.settings.ImagePath,
		LockPosition:         store.settings.LockPosition,
		LaunchAtLogin:        store.settings.LaunchAtLogin,
		WindowWidth:          store.settings.WindowWidth,
		WindowHeight:         store.settings.WindowHeight,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// NotifyPopup reports whether popup notifications are enabled. Together
// with NotifySound this satisfies the notifier's Preferences interface.
func (store *Store) NotifyPopup() bool {
	return store.settings.NotifyPopup
}

// NotifySound reports whether the audible alert is enabled.
func (store *Store) NotifySound() bool {
	return store.settings.NotifySound
}

// load reads the settings file if it exists. A missing or unparsable
// file leaves the defaults in place.
func (store *Store) load() {
	if store.path == "" {
		return
	}

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.settings = DefaultSettings()
		}
		return
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		store.settings = DefaultSettings()
		return
	}

	settings := DefaultSettings()
	settings.Durations = model.Durations{
		FocusMinutes:         fileData.FocusMinutes,
		BreakMinutes:         fileData.BreakMinutes,
		LongBreakMinutes:     fileData.LongBreakMinutes,
		SessionsPerLongBreak: fileData.SessionsPerLongBreak,
	}
	if fileData.FocusMinutes == 0 && fileData.BreakMinutes == 0 &&
		fileData.LongBreakMinutes == 0 && fileData.SessionsPerLongBreak == 0 {
		settings.Durations = model.DefaultDurations()
	}
	if fileData.NotifyPopup != nil {
		settings.NotifyPopup = *fileData.NotifyPopup
	}
	if fileData.NotifySound != nil {
		settings.NotifySound = *fileData.NotifySound
	}
	if fileData.Opacity != nil {
		settings.Opacity = *fileData.Opacity
	}
	if fileData.UIScale != nil {
		settings.UIScale = *fileData.UIScale
	}
	settings.ImagePath = fileData.ImagePath
	settings.LockPosition = fileData.LockPosition
	settings.LaunchAtLogin = fileData.LaunchAtLogin
	settings.WindowWidth = fileData.WindowWidth
	settings.WindowHeight = fileData.WindowHeight

	store.settings = sanitize(settings)
}

func sanitize(settings Settings) Settings {
	settings.Durations = settings.Durations.Clamp()
	settings.Opacity = clampFloat(settings.Opacity, MinOpacity, MaxOpacity)
	settings.UIScale = clampFloat(settings.UIScale, MinScale, MaxScale)
	if settings.WindowWidth < 0 {
		settings.WindowWidth = 0
	}
	if settings.WindowHeight < 0 {
		settings.WindowHeight = 0
	}
	return settings
}
