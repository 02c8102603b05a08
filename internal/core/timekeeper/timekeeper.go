package timekeeper

import (
	"sync"
	"time"

	"chibitomo/internal/core/model"
)

// Config contains runtime options for Keeper.
type Config struct {
	TickInterval time.Duration
}

// Status is a point-in-time snapshot of the Keeper, used to paint the
// initial display before any event arrives.
type Status struct {
	Phase        Phase
	Remaining    time.Duration
	Progress     float64
	Session      int
	SessionTotal int
	Running      bool
}

// Keeper is the Pomodoro phase state machine. It counts one phase down a
// tick at a time, fires each mid-phase milestone at most once per phase
// instance, and on completion advances to the next phase and keeps
// running so the cycle continues without user action.
type Keeper struct {
	mu              sync.Mutex
	durations       model.Durations
	options         Config
	phase           Phase
	remaining       time.Duration
	sessionCount    int
	running         bool
	ticking         bool
	notifiedHalfway bool
	notifiedQuarter bool
	events          []chan Event
	stopCh          chan struct{}
	stopped         bool
}

// New creates a Keeper holding a fresh Focus phase, not yet running.
func New(durations model.Durations, options Config) *Keeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	keeper := &Keeper{
		durations: durations.Clamp(),
		options:   options,
		stopCh:    make(chan struct{}),
	}
	keeper.enterPhaseLocked(PhaseFocus, false)
	return keeper
}

// Subscribe registers a new observer channel.
func (keeper *Keeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Status returns a snapshot of the current state.
func (keeper *Keeper) Status() Status {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.statusLocked()
}

// Start begins or resumes ticking. It does not reset the remaining time
// and is a no-op when the countdown is already running.
func (keeper *Keeper) Start() {
	keeper.mu.Lock()
	if keeper.running || keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	launch := !keeper.ticking
	keeper.ticking = true
	keeper.mu.Unlock()

	if launch {
		go keeper.run()
	}
}

// Pause freezes the countdown; remaining time is kept.
func (keeper *Keeper) Pause() {
	keeper.mu.Lock()
	keeper.running = false
	keeper.mu.Unlock()
}

// Reset pauses, zeroes the session count and returns to a full Focus
// phase with cleared milestone flags.
func (keeper *Keeper) Reset() {
	keeper.mu.Lock()
	keeper.running = false
	keeper.sessionCount = 0
	keeper.enterPhaseLocked(PhaseFocus, true)
	keeper.mu.Unlock()
}

// ApplyDurations replaces the cycle configuration wholesale and performs
// a full reset, discarding any in-progress countdown.
func (keeper *Keeper) ApplyDurations(durations model.Durations) {
	keeper.mu.Lock()
	keeper.durations = durations.Clamp()
	keeper.running = false
	keeper.sessionCount = 0
	keeper.enterPhaseLocked(PhaseFocus, true)
	keeper.mu.Unlock()
}

// Durations returns the active cycle configuration.
func (keeper *Keeper) Durations() model.Durations {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.durations
}

// Stop terminates the ticking loop and closes observer channels.
func (keeper *Keeper) Stop() {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.stopped = true
	keeper.running = false
	close(keeper.stopCh)
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *Keeper) run() {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-keeper.stopCh:
			return
		case tickTime := <-ticker.C:
			keeper.tick(tickTime)
		}
	}
}

// tick advances the countdown by one interval. Completion is processed
// under the same lock acquisition as the decrement, so a Pause racing a
// completion takes effect only after the next phase has been entered.
func (keeper *Keeper) tick(now time.Time) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return
	}

	keeper.remaining -= keeper.options.TickInterval
	if keeper.remaining < 0 {
		keeper.remaining = 0
	}

	if keeper.remaining > 0 {
		keeper.emitLocked(keeper.eventLocked(EventProgress, now))
		keeper.checkThresholdsLocked(now)
		return
	}

	keeper.completePhaseLocked(now)
}

func (keeper *Keeper) checkThresholdsLocked(now time.Time) {
	progress := keeper.progressLocked()
	if progress <= 0.5 && !keeper.notifiedHalfway {
		keeper.notifiedHalfway = true
		event := keeper.eventLocked(EventMilestone, now)
		event.Milestone = MilestoneHalfway
		keeper.emitLocked(event)
	}
	if progress <= 0.25 && !keeper.notifiedQuarter {
		keeper.notifiedQuarter = true
		event := keeper.eventLocked(EventMilestone, now)
		event.Milestone = MilestoneQuarter
		keeper.emitLocked(event)
	}
}

func (keeper *Keeper) completePhaseLocked(now time.Time) {
	keeper.emitLocked(keeper.eventLocked(EventProgress, now))

	complete := keeper.eventLocked(EventMilestone, now)
	complete.Milestone = MilestoneComplete
	keeper.emitLocked(complete)

	if keeper.phase == PhaseFocus {
		keeper.sessionCount++
	}
	next := nextPhase(keeper.phase, keeper.sessionCount, keeper.durations)
	keeper.enterPhaseLocked(next, true)
}

// enterPhaseLocked performs the reset-style phase entry: milestone flags
// cleared, remaining set from the new phase's duration.
func (keeper *Keeper) enterPhaseLocked(phase Phase, animate bool) {
	keeper.phase = phase
	keeper.remaining = keeper.phaseDurationLocked(phase)
	keeper.notifiedHalfway = false
	keeper.notifiedQuarter = false

	event := keeper.eventLocked(EventPhaseChange, time.Now())
	event.Animate = animate
	keeper.emitLocked(event)
}

// nextPhase is the transition function of the phase enumeration. It is
// evaluated after the session count has been updated for a completed
// Focus phase.
func nextPhase(phase Phase, sessionCount int, durations model.Durations) Phase {
	if phase != PhaseFocus {
		return PhaseFocus
	}
	if durations.SessionsPerLongBreak > 0 && sessionCount%durations.SessionsPerLongBreak == 0 {
		return PhaseLongBreak
	}
	return PhaseBreak
}

func (keeper *Keeper) phaseDurationLocked(phase Phase) time.Duration {
	switch phase {
	case PhaseBreak:
		return keeper.durations.Break()
	case PhaseLongBreak:
		return keeper.durations.LongBreak()
	default:
		return keeper.durations.Focus()
	}
}

func (keeper *Keeper) progressLocked() float64 {
	total := keeper.phaseDurationLocked(keeper.phase)
	if total <= 0 {
		return 0
	}
	progress := float64(keeper.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (keeper *Keeper) sessionOrdinalLocked() int {
	if keeper.durations.SessionsPerLongBreak <= 0 {
		return 1
	}
	return keeper.sessionCount%keeper.durations.SessionsPerLongBreak + 1
}

func (keeper *Keeper) statusLocked() Status {
	return Status{
		Phase:        keeper.phase,
		Remaining:    keeper.remaining,
		Progress:     keeper.progressLocked(),
		Session:      keeper.sessionOrdinalLocked(),
		SessionTotal: keeper.durations.SessionsPerLongBreak,
		Running:      keeper.running,
	}
}

func (keeper *Keeper) eventLocked(eventType EventType, at time.Time) Event {
	return Event{
		Type:         eventType,
		Phase:        keeper.phase,
		Remaining:    keeper.remaining,
		Progress:     keeper.progressLocked(),
		Session:      keeper.sessionOrdinalLocked(),
		SessionTotal: keeper.durations.SessionsPerLongBreak,
		Running:      keeper.running,
		At:           at,
	}
}

func (keeper *Keeper) emitLocked(event Event) {
	events := append([]chan Event(nil), keeper.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
