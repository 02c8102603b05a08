package appmenu

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"chibitomo/internal/core/model"
	"chibitomo/internal/storage"
)

func TestPercentLabel(t *testing.T) {
	cases := map[float64]string{
		0.05: "5%",
		0.25: "25%",
		0.5:  "50%",
		1.0:  "100%",
		1.75: "175%",
		2.0:  "200%",
	}
	for value, want := range cases {
		if got := percentLabel(value); got != want {
			t.Errorf("percentLabel(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestParseCount(t *testing.T) {
	if got := parseCount("45", 25); got != 45 {
		t.Errorf("parseCount valid = %d, want 45", got)
	}
	if got := parseCount("abc", 25); got != 25 {
		t.Errorf("parseCount invalid = %d, want fallback 25", got)
	}
	if got := parseCount("", 8); got != 8 {
		t.Errorf("parseCount empty = %d, want fallback 8", got)
	}
}

func TestCheckPresetMarksExactlyOne(t *testing.T) {
	registry := map[float64]*fyne.MenuItem{
		0.5:  fyne.NewMenuItem("50%", nil),
		0.75: fyne.NewMenuItem("75%", nil),
		1.0:  fyne.NewMenuItem("100%", nil),
	}
	registry[1.0].Checked = true

	checkPreset(registry, 0.75)

	for preset, item := range registry {
		want := preset == 0.75
		if item.Checked != want {
			t.Errorf("preset %v checked = %v, want %v", preset, item.Checked, want)
		}
	}
}

func TestCheckPresetUnknownValueClearsAll(t *testing.T) {
	registry := map[float64]*fyne.MenuItem{
		0.5: fyne.NewMenuItem("50%", nil),
		1.0: fyne.NewMenuItem("100%", nil),
	}
	registry[0.5].Checked = true

	checkPreset(registry, 0.8)

	for preset, item := range registry {
		if item.Checked {
			t.Errorf("preset %v should be unchecked for non-preset value", preset)
		}
	}
}

func TestSetDurationsChecksMatchingMode(t *testing.T) {
	test.NewApp()
	manager := New(Callbacks{}, storage.DefaultSettings())

	manager.SetDurations(model.ClassicPreset())
	assertModeChecks(t, manager, true, false, false)

	manager.SetDurations(model.ExtendedPreset())
	assertModeChecks(t, manager, false, true, false)

	manager.SetDurations(model.Durations{FocusMinutes: 45, BreakMinutes: 5, LongBreakMinutes: 15, SessionsPerLongBreak: 4})
	assertModeChecks(t, manager, false, false, true)
}

func assertModeChecks(t *testing.T, manager *Manager, classic, extended, custom bool) {
	t.Helper()
	if manager.classicItem.Checked != classic {
		t.Errorf("classic checked = %v, want %v", manager.classicItem.Checked, classic)
	}
	if manager.extendedItem.Checked != extended {
		t.Errorf("extended checked = %v, want %v", manager.extendedItem.Checked, extended)
	}
	if manager.customItem.Checked != custom {
		t.Errorf("custom checked = %v, want %v", manager.customItem.Checked, custom)
	}
}
