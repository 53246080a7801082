package tracker

import (
	"github.com/avtrejo/corridor-counter/internal/geometry"
	"github.com/avtrejo/corridor-counter/internal/identity"
)

// updateSlots implements §4.3 Identity Tracker. Matching is strictly
// positional: current_cars[0] can only ever update slot1, current_cars[1]
// can only ever update slot2. A prior slot whose position has no box this
// frame is aged instead; once its absent_frames reaches 6 it is evicted
// and the corresponding return value is true for this call only
// (the transient "cleared_i" the state machine needs for probable_pass).
func (t *Tracker) updateSlots(cars []geometry.Box) (evictedSlot1, evictedSlot2 bool) {
	var next [2]*Slot

	for i := 0; i < 2 && i < len(cars); i++ {
		box := cars[i]
		prior := t.slotAt(i)
		id := identity.Fingerprint(box)
		if prior != nil && geometry.Overlap(box, prior.Box) > 0.5 {
			id = prior.ID
		}
		next[i] = &Slot{
			ID:            id,
			Box:           box,
			LastSeenFrame: t.currentFrame,
			AbsentFrames:  0,
		}
	}

	var evicted [2]bool
	for i := 0; i < 2; i++ {
		if next[i] != nil {
			continue
		}
		prior := t.slotAt(i)
		if prior == nil {
			continue
		}
		aged := *prior
		aged.AbsentFrames++
		aged.ActiveAOIs = nil
		if aged.AbsentFrames >= 6 {
			evicted[i] = true
			continue
		}
		next[i] = &aged
	}

	t.slot1, t.slot2 = next[0], next[1]
	return evicted[0], evicted[1]
}

func (t *Tracker) slotAt(i int) *Slot {
	if i == 0 {
		return t.slot1
	}
	return t.slot2
}

// occupiedCount returns num_cars: the number of occupied slots.
func (t *Tracker) occupiedCount() int {
	n := 0
	if t.slot1 != nil {
		n++
	}
	if t.slot2 != nil {
		n++
	}
	return n
}
