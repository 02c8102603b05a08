package appmenu

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"chibitomo/internal/core/model"
)

// ShowDurationsDialog opens the custom durations form pre-filled with
// the current cycle. Unparseable fields fall back to their current
// value; the result is clamped to the allowed ranges before onApply.
func ShowDurationsDialog(parent fyne.Window, current model.Durations, onApply func(model.Durations)) {
	focusEntry := newMinutesEntry(current.FocusMinutes)
	breakEntry := newMinutesEntry(current.BreakMinutes)
	longBreakEntry := newMinutesEntry(current.LongBreakMinutes)
	sessionsEntry := newMinutesEntry(current.SessionsPerLongBreak)

	items := []*widget.FormItem{
		widget.NewFormItem("Focus (minutes)", focusEntry),
		widget.NewFormItem("Break (minutes)", breakEntry),
		widget.NewFormItem("Long break (minutes)", longBreakEntry),
		widget.NewFormItem("Sessions before long break", sessionsEntry),
	}

	dialog.ShowForm("Custom Durations", "Apply", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		durations := model.Durations{
			FocusMinutes:         parseCount(focusEntry.Text, current.FocusMinutes),
			BreakMinutes:         parseCount(breakEntry.Text, current.BreakMinutes),
			LongBreakMinutes:     parseCount(longBreakEntry.Text, current.LongBreakMinutes),
			SessionsPerLongBreak: parseCount(sessionsEntry.Text, current.SessionsPerLongBreak),
		}
		durations = durations.Clamp()
		if onApply != nil {
			onApply(durations)
		}
	}, parent)
}

// ShowPicturePicker opens a file chooser limited to the image formats
// the avatar can decode.
func ShowPicturePicker(parent fyne.Window, onChosen func(path string)) {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if onChosen != nil {
			onChosen(path)
		}
	}, parent)
	picker.SetFilter(fynestorage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".bmp", ".webp"}))
	picker.Show()
}

func newMinutesEntry(value int) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(strconv.Itoa(value))
	return entry
}

func parseCount(text string, fallback int) int {
	value, err := strconv.Atoi(text)
	if err != nil {
		return fallback
	}
	return value
}
