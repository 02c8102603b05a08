package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chibitomo/internal/core/model"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "settings.yaml")
}

func TestMissingFileYieldsDefaults(t *testing.T) {
	store := NewStoreAt(tempStorePath(t))
	assert.Equal(t, DefaultSettings(), store.Settings())
}

func TestInMemoryStore(t *testing.T) {
	store := NewStoreAt("")
	assert.Equal(t, DefaultSettings(), store.Settings())

	err := store.Update(func(settings *Settings) {
		settings.NotifySound = false
	})
	assert.NoError(t, err)
	assert.False(t, store.Settings().NotifySound)
}

func TestRoundTrip(t *testing.T) {
	path := tempStorePath(t)

	store := NewStoreAt(path)
	err := store.Update(func(settings *Settings) {
		settings.Durations = model.ExtendedPreset()
		settings.NotifyPopup = false
		settings.Opacity = 0.75
		settings.UIScale = 1.5
		settings.ImagePath = "/tmp/avatar.png"
		settings.LockPosition = true
		settings.LaunchAtLogin = true
		settings.WindowWidth = 390
		settings.WindowHeight = 570
	})
	require.NoError(t, err)

	reloaded := NewStoreAt(path).Settings()
	assert.Equal(t, model.ExtendedPreset(), reloaded.Durations)
	assert.False(t, reloaded.NotifyPopup)
	assert.True(t, reloaded.NotifySound)
	assert.Equal(t, 0.75, reloaded.Opacity)
	assert.Equal(t, 1.5, reloaded.UIScale)
	assert.Equal(t, "/tmp/avatar.png", reloaded.ImagePath)
	assert.True(t, reloaded.LockPosition)
	assert.True(t, reloaded.LaunchAtLogin)
	assert.Equal(t, 390, reloaded.WindowWidth)
	assert.Equal(t, 570, reloaded.WindowHeight)
}

func TestCorruptFileYieldsDefaults(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not yaml:::"), 0o644))

	store := NewStoreAt(path)
	assert.Equal(t, DefaultSettings(), store.Settings())
}

func TestOutOfRangeValuesClampedOnLoad(t *testing.T) {
	path := tempStorePath(t)
	raw := "" +
		"focus_minutes: 500\n" +
		"break_minutes: 0\n" +
		"long_break_minutes: 90\n" +
		"sessions_per_long_break: 40\n" +
		"opacity: 0.01\n" +
		"ui_scale: 9.0\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings := NewStoreAt(path).Settings()
	assert.Equal(t, model.MaxFocusMinutes, settings.Durations.FocusMinutes)
	assert.Equal(t, model.MinBreakMinutes, settings.Durations.BreakMinutes)
	assert.Equal(t, model.MaxLongBreakMinutes, settings.Durations.LongBreakMinutes)
	assert.Equal(t, model.MaxSessions, settings.Durations.SessionsPerLongBreak)
	assert.Equal(t, MinOpacity, settings.Opacity)
	assert.Equal(t, MaxScale, settings.UIScale)
}

func TestAbsentTogglesDefaultToEnabled(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("focus_minutes: 30\n"), 0o644))

	store := NewStoreAt(path)
	assert.True(t, store.NotifyPopup())
	assert.True(t, store.NotifySound())
	assert.Equal(t, 30, store.Settings().Durations.FocusMinutes)
}

func TestPreferencesInterface(t *testing.T) {
	store := NewStoreAt(tempStorePath(t))
	require.NoError(t, store.Update(func(settings *Settings) {
		settings.NotifyPopup = false
	}))

	assert.False(t, store.NotifyPopup())
	assert.True(t, store.NotifySound())
}
