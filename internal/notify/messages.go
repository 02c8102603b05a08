package notify

import (
	"math/rand"
	"time"
)

// Kind identifies which message pool a notification draws from.
type Kind string

const (
	KindHalfway      Kind = "halfway"
	KindFinalStretch Kind = "final_stretch"
	KindComplete     Kind = "complete"
)

var halfwayMessages = []string{
	"Halfway there! Keep the momentum going - you've got this!",
	"50% done! Every step counts - finish strong.",
	"You're crushing it! Stay focused, the finish line is in sight.",
	"Halfway is the new beginning - push forward with purpose.",
	"You've already proven you can start - now show you can finish.",
	"Half the time's gone, but the best effort comes now!",
	"Momentum is your friend - don't stop now!",
	"Midway check: your future self is proud of you already.",
	"Stay locked in. The goal is closer than it seems.",
	"You're shining already - keep that energy alive!",
}

var finalStretchMessages = []string{
	"Only 25% left - now's the time to give your best!",
	"You've come so far - don't let up now!",
	"This is where champions are made - finish with power!",
	"One last push! You're almost there!",
	"You started strong, now finish stronger.",
	"Final stretch - make it count!",
	"The top is near - keep climbing!",
	"Your focus now is your greatest strength.",
	"You're 75% done - don't stop until it's 100%.",
	"Greatness lives in the final effort. Give it your all!",
}

var completeMessages = []string{
	"You made it! Every second counts - and you just proved it!",
	"Victory! Timer complete and you nailed it!",
	"Another win in the books - your consistency is gold!",
	"Boom! That's how champions finish!",
	"Done and dusted - success unlocked!",
	"Timer's done - and you shined all the way through!",
	"Bullseye! You stayed the course and hit your mark!",
	"Session complete - your focus paid off big time!",
	"Mission accomplished - onward to greatness!",
	"You gave your best - and it shows. Well done!",
}

// Picker selects one message variant per notification, uniformly at
// random from the pool of its kind.
type Picker struct {
	rng *rand.Rand
}

// NewPicker creates a picker with a time-seeded source.
func NewPicker() *Picker {
	return &Picker{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewPickerWithSource creates a picker with the given source.
func NewPickerWithSource(source rand.Source) *Picker {
	return &Picker{rng: rand.New(source)}
}

// Pick returns a message for the given kind.
func (picker *Picker) Pick(kind Kind) string {
	pool := poolFor(kind)
	return pool[picker.rng.Intn(len(pool))]
}

func poolFor(kind Kind) []string {
	switch kind {
	case KindHalfway:
		return halfwayMessages
	case KindFinalStretch:
		return finalStretchMessages
	default:
		return completeMessages
	}
}
