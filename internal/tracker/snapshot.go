package tracker

import "github.com/avtrejo/corridor-counter/internal/geometry"

// SlotSnapshot is an immutable, defensive-copy view of one tracked slot
// for the visualization sink and telemetry broadcaster (Design Note "Slot
// ownership": these consumers never receive live references).
type SlotSnapshot struct {
	ID         string
	Box        geometry.Box
	ActiveAOIs []AOIName
}

// Snapshot is the per-frame view handed to the visualization sink and the
// telemetry broadcaster (§6 Visualization sink).
type Snapshot struct {
	Frame       int
	State       StateKind
	NumCars     int
	TotalPassed uint64
	Slot1       *SlotSnapshot
	Slot2       *SlotSnapshot
	AOILatched  [3]bool
}

func snapshotSlot(s *Slot) *SlotSnapshot {
	if s == nil {
		return nil
	}
	aois := make([]AOIName, len(s.ActiveAOIs))
	copy(aois, s.ActiveAOIs)
	return &SlotSnapshot{ID: s.ID, Box: s.Box, ActiveAOIs: aois}
}

func (t *Tracker) snapshot(numCars int) Snapshot {
	snap := Snapshot{
		Frame:       t.currentFrame,
		State:       t.state,
		NumCars:     numCars,
		TotalPassed: t.totalPassed,
		Slot1:       snapshotSlot(t.slot1),
		Slot2:       snapshotSlot(t.slot2),
	}
	for i := 0; i < 3; i++ {
		snap.AOILatched[i] = t.aoiLatched(i)
	}
	return snap
}
