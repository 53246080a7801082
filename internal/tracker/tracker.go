package tracker

// StepResult carries the outcome of processing one detection record: the
// resulting snapshot for visualization/telemetry, and whether this step
// incremented total_passed (the sole trigger for the emitter, §4.7).
type StepResult struct {
	Snapshot Snapshot
	Passed   bool
}

// Step processes one inbound detection record end to end: frame-gap /
// producer-restart handling (§4.1), box cleanup (§4.2), identity tracking
// (§4.3), AOI evaluation (§4.4), frame counter updates and the state
// machine (§4.5).
func (t *Tracker) Step(rec Record) StepResult {
	if t.lastProcessedFrame != -1 && rec.Frame < t.lastProcessedFrame {
		preserved := t.totalPassed
		t.reset()
		t.totalPassed = preserved
	}
	if t.lastProcessedFrame != -1 && rec.Frame > t.lastProcessedFrame+1 {
		gap := rec.Frame - t.lastProcessedFrame - 1
		t.emptyFrameCount += gap
	}
	t.lastProcessedFrame = rec.Frame
	t.currentFrame = rec.Frame

	cars := cleanup(rec.Detections)
	rawNumCars := len(cars)

	evictedSlot1, _ := t.updateSlots(cars)
	t.evaluateAOIs()

	switch {
	case rawNumCars == 0:
		t.emptyFrameCount++
		t.oneCarFrameCount = 0
	case rawNumCars == 1:
		t.oneCarFrameCount++
		t.emptyFrameCount = 0
	default:
		t.oneCarFrameCount = 0
		t.emptyFrameCount = 0
	}

	numCars := t.occupiedCount()
	if numCars == 1 {
		t.oneCarDuration++
	} else {
		t.oneCarDuration = 0
	}

	passed := t.runStateMachine(numCars, evictedSlot1)

	return StepResult{Snapshot: t.snapshot(numCars), Passed: passed}
}
