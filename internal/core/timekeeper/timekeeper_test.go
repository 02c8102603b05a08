package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chibitomo/internal/core/model"
)

// newTestKeeper returns a keeper that ticks only when the test calls
// tick directly, with the run loop never launched.
func newTestKeeper(durations model.Durations) *Keeper {
	keeper := New(durations, Config{TickInterval: time.Second})
	keeper.running = true
	keeper.ticking = true
	return keeper
}

func tickTimes(keeper *Keeper, count int) {
	now := time.Now()
	for i := 0; i < count; i++ {
		keeper.tick(now)
	}
}

func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event := <-ch:
			events = append(events, event)
		default:
			return events
		}
	}
}

func milestones(events []Event, milestone Milestone) []Event {
	var matched []Event
	for _, event := range events {
		if event.Type == EventMilestone && event.Milestone == milestone {
			matched = append(matched, event)
		}
	}
	return matched
}

func TestNewStartsAtFullFocus(t *testing.T) {
	keeper := New(model.DefaultDurations(), Config{})
	status := keeper.Status()

	assert.Equal(t, PhaseFocus, status.Phase)
	assert.Equal(t, 25*time.Minute, status.Remaining)
	assert.Equal(t, 1.0, status.Progress)
	assert.Equal(t, 1, status.Session)
	assert.Equal(t, 4, status.SessionTotal)
	assert.False(t, status.Running)
}

func TestNextPhase(t *testing.T) {
	durations := model.Durations{FocusMinutes: 25, BreakMinutes: 5, LongBreakMinutes: 15, SessionsPerLongBreak: 4}

	tests := []struct {
		name         string
		phase        Phase
		sessionCount int
		want         Phase
	}{
		{name: "first focus completion", phase: PhaseFocus, sessionCount: 1, want: PhaseBreak},
		{name: "third focus completion", phase: PhaseFocus, sessionCount: 3, want: PhaseBreak},
		{name: "fourth focus completion", phase: PhaseFocus, sessionCount: 4, want: PhaseLongBreak},
		{name: "eighth focus completion", phase: PhaseFocus, sessionCount: 8, want: PhaseLongBreak},
		{name: "break always returns to focus", phase: PhaseBreak, sessionCount: 2, want: PhaseFocus},
		{name: "long break always returns to focus", phase: PhaseLongBreak, sessionCount: 4, want: PhaseFocus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextPhase(tt.phase, tt.sessionCount, durations)
			if got != tt.want {
				t.Errorf("nextPhase(%v, %d) = %v, want %v", tt.phase, tt.sessionCount, got, tt.want)
			}
		})
	}
}

func TestTickCountsDownWithoutGoingNegative(t *testing.T) {
	keeper := newTestKeeper(model.Durations{FocusMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 1, SessionsPerLongBreak: 4})

	for i := 0; i < 500; i++ {
		keeper.tick(time.Now())
		status := keeper.Status()
		require.GreaterOrEqual(t, status.Remaining, time.Duration(0))
		require.LessOrEqual(t, status.Remaining, time.Minute)
	}
}

func TestFocusScenarioThresholdsAndAutoAdvance(t *testing.T) {
	keeper := newTestKeeper(model.DefaultDurations())
	events := keeper.Subscribe(4096)

	// 1500s focus phase: halfway at 750 ticks.
	tickTimes(keeper, 750)
	status := keeper.Status()
	require.Equal(t, 750*time.Second, status.Remaining)
	require.Equal(t, 0.5, status.Progress)
	collected := drain(events)
	assert.Len(t, milestones(collected, MilestoneHalfway), 1)
	assert.Empty(t, milestones(collected, MilestoneQuarter))

	// Quarter remaining at 1125 ticks.
	tickTimes(keeper, 375)
	collected = drain(events)
	assert.Len(t, milestones(collected, MilestoneQuarter), 1)
	assert.Empty(t, milestones(collected, MilestoneHalfway))

	// Phase completes on the 1500th tick and auto-advances to Break,
	// still running, with milestone flags reset.
	tickTimes(keeper, 375)
	collected = drain(events)
	assert.Len(t, milestones(collected, MilestoneComplete), 1)

	status = keeper.Status()
	assert.Equal(t, PhaseBreak, status.Phase)
	assert.Equal(t, 5*time.Minute, status.Remaining)
	assert.True(t, status.Running)
	assert.False(t, keeper.notifiedHalfway)
	assert.False(t, keeper.notifiedQuarter)
}

func TestPhaseCompleteFiresOnceOnFinalTick(t *testing.T) {
	keeper := newTestKeeper(model.Durations{FocusMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 1, SessionsPerLongBreak: 4})
	events := keeper.Subscribe(512)

	tickTimes(keeper, 59)
	require.Equal(t, time.Second, keeper.Status().Remaining)
	drain(events)

	keeper.tick(time.Now())
	collected := drain(events)

	require.Len(t, milestones(collected, MilestoneComplete), 1)
	var phaseChanges int
	for _, event := range collected {
		if event.Type == EventPhaseChange {
			phaseChanges++
			assert.Equal(t, PhaseBreak, event.Phase)
			assert.True(t, event.Animate)
		}
	}
	assert.Equal(t, 1, phaseChanges)
}

func TestPauseNearThresholdDoesNotDuplicate(t *testing.T) {
	keeper := newTestKeeper(model.DefaultDurations())
	events := keeper.Subscribe(2048)

	tickTimes(keeper, 750)
	require.Len(t, milestones(drain(events), MilestoneHalfway), 1)

	keeper.Pause()
	keeper.tick(time.Now())
	keeper.tick(time.Now())
	assert.Empty(t, drain(events), "paused ticks must emit nothing")
	assert.Equal(t, 750*time.Second, keeper.Status().Remaining)

	keeper.running = true
	tickTimes(keeper, 10)
	assert.Empty(t, milestones(drain(events), MilestoneHalfway))
}

func TestLongBreakAfterConfiguredSessions(t *testing.T) {
	keeper := newTestKeeper(model.Durations{FocusMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 1, SessionsPerLongBreak: 4})

	finishPhase := func() Phase {
		tickTimes(keeper, 60)
		return keeper.Status().Phase
	}

	for completion := 1; completion <= 3; completion++ {
		require.Equal(t, PhaseBreak, finishPhase(), "focus completion %d should lead to a short break", completion)
		require.Equal(t, PhaseFocus, finishPhase())
	}
	assert.Equal(t, PhaseLongBreak, finishPhase(), "fourth focus completion should lead to the long break")
	assert.Equal(t, PhaseFocus, finishPhase())
}

func TestResetReturnsToFreshFocus(t *testing.T) {
	keeper := newTestKeeper(model.DefaultDurations())
	tickTimes(keeper, 1600)
	require.NotEqual(t, PhaseFocus, keeper.Status().Phase)

	keeper.Reset()
	status := keeper.Status()

	assert.Equal(t, PhaseFocus, status.Phase)
	assert.Equal(t, 25*time.Minute, status.Remaining)
	assert.Equal(t, 1, status.Session)
	assert.False(t, status.Running)
	assert.False(t, keeper.notifiedHalfway)
	assert.False(t, keeper.notifiedQuarter)
	assert.Equal(t, 0, keeper.sessionCount)
}

func TestApplyDurationsDiscardsCountdown(t *testing.T) {
	keeper := newTestKeeper(model.DefaultDurations())
	tickTimes(keeper, 900)

	keeper.ApplyDurations(model.ExtendedPreset())
	status := keeper.Status()

	assert.Equal(t, PhaseFocus, status.Phase)
	assert.Equal(t, 50*time.Minute, status.Remaining)
	assert.False(t, status.Running)
}

func TestApplyDurationsClampsOutOfRange(t *testing.T) {
	keeper := New(model.DefaultDurations(), Config{})
	keeper.ApplyDurations(model.Durations{FocusMinutes: 500, BreakMinutes: 0, LongBreakMinutes: -3, SessionsPerLongBreak: 99})

	durations := keeper.Durations()
	assert.Equal(t, model.MaxFocusMinutes, durations.FocusMinutes)
	assert.Equal(t, model.MinBreakMinutes, durations.BreakMinutes)
	assert.Equal(t, model.MinLongBreakMinutes, durations.LongBreakMinutes)
	assert.Equal(t, model.MaxSessions, durations.SessionsPerLongBreak)
}

func TestSessionOrdinalWrapsWithinCycle(t *testing.T) {
	keeper := newTestKeeper(model.Durations{FocusMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 1, SessionsPerLongBreak: 4})

	require.Equal(t, 1, keeper.Status().Session)
	tickTimes(keeper, 120) // focus + break
	assert.Equal(t, 2, keeper.Status().Session)
	tickTimes(keeper, 120)
	assert.Equal(t, 3, keeper.Status().Session)
	tickTimes(keeper, 120)
	assert.Equal(t, 4, keeper.Status().Session)
	tickTimes(keeper, 120) // fourth focus + long break
	assert.Equal(t, 1, keeper.Status().Session)
}

func TestStopClosesObservers(t *testing.T) {
	keeper := New(model.DefaultDurations(), Config{})
	events := keeper.Subscribe(1)

	keeper.Stop()
	_, open := <-events
	assert.False(t, open)

	// Stop and Start after Stop must be harmless.
	keeper.Stop()
	keeper.Start()
	assert.False(t, keeper.Status().Running)
}
