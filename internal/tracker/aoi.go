package tracker

import "github.com/avtrejo/corridor-counter/internal/geometry"

// evaluateAOIs implements §4.4 AOI Evaluator: resets each live slot's
// active_aois, then for every live slot and every AOI records membership
// on any non-zero overlap and latches the AOI's last_active_frame.
func (t *Tracker) evaluateAOIs() {
	for _, slot := range []*Slot{t.slot1, t.slot2} {
		if slot == nil {
			continue
		}
		slot.ActiveAOIs = nil
		for i := 0; i < 3; i++ {
			if geometry.Overlap(slot.Box, t.aois.box(i)) > 0 {
				slot.ActiveAOIs = append(slot.ActiveAOIs, aoiNames[i])
				t.lastActiveFrame[i] = t.currentFrame
			}
		}
	}
}

// aoiLatched reports the 5-frame visualization persistence window for AOI
// index i: true whenever current_frame - last_active_frame[i] <= 5. This
// does not participate in state transitions; the state machine reads
// lastActiveFrame directly.
func (t *Tracker) aoiLatched(i int) bool {
	return t.currentFrame-t.lastActiveFrame[i] <= 5
}
