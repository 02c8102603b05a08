package notify

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagePoolsHoldTenVariants(t *testing.T) {
	for _, kind := range []Kind{KindHalfway, KindFinalStretch, KindComplete} {
		assert.Len(t, poolFor(kind), 10, "pool for %s", kind)
	}
}

func TestPickReturnsPoolMembers(t *testing.T) {
	picker := NewPickerWithSource(rand.NewSource(1))
	for _, kind := range []Kind{KindHalfway, KindFinalStretch, KindComplete} {
		pool := poolFor(kind)
		seen := map[string]bool{}
		for i := 0; i < 200; i++ {
			message := picker.Pick(kind)
			assert.Contains(t, pool, message)
			seen[message] = true
		}
		// 200 draws from a pool of ten should hit more than one variant.
		assert.Greater(t, len(seen), 1, "picker should vary messages for %s", kind)
	}
}

type fakePrefs struct {
	popup bool
	sound bool
}

func (prefs fakePrefs) NotifyPopup() bool { return prefs.popup }
func (prefs fakePrefs) NotifySound() bool { return prefs.sound }

type fakeBubble struct {
	shown []string
}

func (bubble *fakeBubble) ShowBubble(text string) {
	bubble.shown = append(bubble.shown, text)
}

func newTestNotifier(prefs Preferences, bubble BubbleSink) (*Notifier, *int, *int) {
	notifier := New(prefs, bubble)
	popups := 0
	sounds := 0
	notifier.systemPopup = func(title, message string) error {
		popups++
		return nil
	}
	notifier.playSound = func() error {
		sounds++
		return nil
	}
	return notifier, &popups, &sounds
}

func TestDispatchPopupEnabledUsesBubble(t *testing.T) {
	bubble := &fakeBubble{}
	notifier, popups, sounds := newTestNotifier(fakePrefs{popup: true, sound: true}, bubble)

	notifier.Dispatch(KindHalfway, "50% remaining")

	require.Len(t, bubble.shown, 1)
	assert.Contains(t, halfwayMessages, bubble.shown[0])
	assert.Equal(t, 0, *popups)
	assert.Equal(t, 1, *sounds)
}

func TestDispatchPopupDisabledFallsBackToSystem(t *testing.T) {
	bubble := &fakeBubble{}
	notifier, popups, sounds := newTestNotifier(fakePrefs{popup: false, sound: false}, bubble)

	notifier.Dispatch(KindComplete, "Focus Over!")

	assert.Empty(t, bubble.shown)
	assert.Equal(t, 1, *popups)
	assert.Equal(t, 0, *sounds)
}

func TestDispatchSoundOnly(t *testing.T) {
	notifier, popups, sounds := newTestNotifier(fakePrefs{popup: false, sound: true}, nil)

	notifier.Dispatch(KindFinalStretch, "25% remaining")

	assert.Equal(t, 1, *popups)
	assert.Equal(t, 1, *sounds)
}

func TestDispatchSwallowsSinkFailures(t *testing.T) {
	notifier := New(fakePrefs{popup: false, sound: true}, nil)
	notifier.systemPopup = func(title, message string) error {
		return errors.New("no notification daemon")
	}
	notifier.playSound = func() error {
		return errors.New("no audio device")
	}

	assert.NotPanics(t, func() {
		notifier.Dispatch(KindComplete, "Break Over!")
	})
}
