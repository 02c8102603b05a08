package model

import "time"

// Duration field ranges accepted by the custom-durations form and the
// settings loader.
const (
	MinFocusMinutes     = 1
	MaxFocusMinutes     = 120
	MinBreakMinutes     = 1
	MaxBreakMinutes     = 60
	MinLongBreakMinutes = 1
	MaxLongBreakMinutes = 60
	MinSessions         = 1
	MaxSessions         = 12
)

// Durations holds the phase lengths of one Pomodoro cycle, in minutes,
// plus the number of focus sessions before a long break.
type Durations struct {
	FocusMinutes         int
	BreakMinutes         int
	LongBreakMinutes     int
	SessionsPerLongBreak int
}

// DefaultDurations returns the classic 25/5/15 cycle.
func DefaultDurations() Durations {
	return Durations{
		FocusMinutes:         25,
		BreakMinutes:         5,
		LongBreakMinutes:     15,
		SessionsPerLongBreak: 4,
	}
}

// ClassicPreset is the "Pomodoro (25/5)" menu mode.
func ClassicPreset() Durations {
	return DefaultDurations()
}

// ExtendedPreset is the "50/10" menu mode.
func ExtendedPreset() Durations {
	return Durations{
		FocusMinutes:         50,
		BreakMinutes:         10,
		LongBreakMinutes:     20,
		SessionsPerLongBreak: 4,
	}
}

// Clamp forces every field into its accepted range. Zero values collapse
// to the range minimum, so a partially filled settings file still yields
// a usable cycle.
func (durations Durations) Clamp() Durations {
	durations.FocusMinutes = clampInt(durations.FocusMinutes, MinFocusMinutes, MaxFocusMinutes)
	durations.BreakMinutes = clampInt(durations.BreakMinutes, MinBreakMinutes, MaxBreakMinutes)
	durations.LongBreakMinutes = clampInt(durations.LongBreakMinutes, MinLongBreakMinutes, MaxLongBreakMinutes)
	durations.SessionsPerLongBreak = clampInt(durations.SessionsPerLongBreak, MinSessions, MaxSessions)
	return durations
}

// Focus returns the focus phase length.
func (durations Durations) Focus() time.Duration {
	return time.Duration(durations.FocusMinutes) * time.Minute
}

// Break returns the short break phase length.
func (durations Durations) Break() time.Duration {
	return time.Duration(durations.BreakMinutes) * time.Minute
}

// LongBreak returns the long break phase length.
func (durations Durations) LongBreak() time.Duration {
	return time.Duration(durations.LongBreakMinutes) * time.Minute
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
