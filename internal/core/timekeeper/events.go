package timekeeper

import "time"

// Phase identifies the active countdown interval.
type Phase string

const (
	PhaseFocus     Phase = "focus"
	PhaseBreak     Phase = "break"
	PhaseLongBreak Phase = "long_break"
)

// EventType defines the type of Keeper event.
type EventType string

const (
	EventPhaseChange EventType = "phase_change"
	EventProgress    EventType = "progress"
	EventMilestone   EventType = "milestone"
)

// Milestone identifies a one-shot alert within a phase instance.
type Milestone string

const (
	MilestoneHalfway  Milestone = "halfway_remaining"
	MilestoneQuarter  Milestone = "quarter_remaining"
	MilestoneComplete Milestone = "phase_complete"
)

// Event represents a Keeper update for observers. Progress is the
// fraction of the phase still remaining (1.0 at phase start, 0.0 at the
// end), matching the depleting ring it drives. Session is the 1-based
// ordinal of the focus session within the current cycle.
type Event struct {
	Type         EventType
	Phase        Phase
	Remaining    time.Duration
	Progress     float64
	Milestone    Milestone
	Session      int
	SessionTotal int
	Running      bool
	Animate      bool
	At           time.Time
}
