package notify

import "github.com/gen2brain/beeep"

// Preferences supplies the dispatch toggles at notification time, so a
// menu change takes effect without rebuilding the notifier.
type Preferences interface {
	NotifyPopup() bool
	NotifySound() bool
}

// BubbleSink displays a transient in-app message.
type BubbleSink interface {
	ShowBubble(text string)
}

// Notifier dispatches milestone notifications to the configured sinks.
// Dispatch is fire-and-forget: a failing sink never propagates an error
// back to the timer.
type Notifier struct {
	picker *Picker
	prefs  Preferences
	bubble BubbleSink

	// Overridable for tests.
	systemPopup func(title, message string) error
	playSound   func() error
}

// New creates a Notifier using beeep for the system popup and the
// audible alert.
func New(prefs Preferences, bubble BubbleSink) *Notifier {
	return &Notifier{
		picker: NewPicker(),
		prefs:  prefs,
		bubble: bubble,
		systemPopup: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		playSound: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Dispatch picks a message for the kind and delivers it best-effort.
// With the popup preference enabled the message goes to the in-app
// bubble; with it disabled the system popup is used instead. The sound
// preference independently triggers the audible alert.
func (notifier *Notifier) Dispatch(kind Kind, title string) {
	message := notifier.picker.Pick(kind)

	if notifier.prefs.NotifyPopup() {
		if notifier.bubble != nil {
			notifier.bubble.ShowBubble(message)
		}
	} else if notifier.systemPopup != nil {
		_ = notifier.systemPopup(title, message)
	}

	if notifier.prefs.NotifySound() && notifier.playSound != nil {
		_ = notifier.playSound()
	}
}
