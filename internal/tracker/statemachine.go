package tracker

// runStateMachine implements §4.5. Transitions are evaluated in the listed
// order within the current state; the first matching condition wins. If
// none matches, the state is retained. Returns true if this call
// incremented total_passed.
func (t *Tracker) runStateMachine(numCars int, evictedSlot1 bool) bool {
	F := t.currentFrame
	passed := false

	switch t.state {

	case StateZeroCars:
		switch {
		case numCars == 1:
			t.state = StateOneCar
		case numCars == 2:
			t.state = StateTwoCars
		}

	case StateOneCar:
		switch {
		case numCars == 0 && t.slot1 == nil:
			t.state = StateZeroCars
		case numCars == 2:
			t.state = StateTwoCars
		case t.slot1 != nil && t.slot1.hasAllAOIs():
			t.state = StateNightPass
		case t.slot1 != nil && t.slot1.hasAOI(AOILeft):
			t.state = StateLeftState
		case t.slot1 != nil && t.slot1.hasAOI(AOIRight):
			t.state = StateRightState
		}

	case StateNightPass:
		if numCars == 0 && t.emptyFrameCount >= 7 {
			t.totalPassed++
			passed = true
			t.state = StateZeroCars
		}

	case StateTwoCars:
		if t.oneCarDuration >= 5 && t.slot1 != nil {
			switch {
			case F-t.lastActiveFrame[aoiIdxRight] > 5:
				t.state = StateProbablePass
			case F-t.lastActiveFrame[aoiIdxLeft] > 5:
				t.totalPassed++
				passed = true
				t.state = StateProbablePass
			}
		}

	case StateRightState:
		switch {
		case numCars == 0 && t.slot1 == nil:
			t.state = StateZeroCars
		case t.slot2 != nil && t.slot2.hasAnyAOI(AOILeft, AOIMiddle) && numCars > 1:
			t.state = StateTwoCarsLeft
		case F-t.lastActiveFrame[aoiIdxRight] > 5:
			t.state = StateZeroCars
		case t.slot1 != nil && t.slot1.hasAnyAOI(AOILeft, AOIMiddle) && numCars <= 1:
			if t.probablePassStart == 0 {
				t.probablePassStart = F
			} else if F-t.probablePassStart > 5 {
				t.state = StateProbablePass
			}
		default:
			t.probablePassStart = 0
		}

	case StateLeftState:
		switch {
		case F-t.lastActiveFrame[aoiIdxLeft] > 5:
			t.state = StateZeroCars
		case t.slot2 != nil && t.slot2.hasAnyAOI(AOIRight, AOIMiddle) && numCars > 1:
			t.state = StateTwoCarsLeft
		}

	case StateProbablePass:
		switch {
		case numCars == 0 || evictedSlot1:
			if t.probablePassStart == 0 {
				t.probablePassStart = F
			} else if F-t.probablePassStart > 5 {
				t.totalPassed++
				passed = true
				t.state = StateZeroCars
				t.probablePassStart = 0
			}
		case numCars == 2 && t.slot2 != nil && t.slot2.hasAOI(AOIRight):
			if t.rightActiveDuration == 0 {
				t.rightActiveDuration = F
			} else if F-t.rightActiveDuration > 5 {
				t.state = StateTwoCars
				t.rightActiveDuration = 0
			}
		default:
			if t.emptyFrameCount >= 6 {
				t.state = StateZeroCars
				t.probablePassStart = 0
				t.slot1 = nil
				t.slot2 = nil
			} else {
				t.rightActiveDuration = 0
			}
		}

	case StateTwoCarsLeft:
		if t.oneCarDuration >= 5 && t.slot1 != nil {
			switch {
			case t.slot1.hasAOI(AOILeft):
				t.state = StateLeftState
			case t.slot1.hasAOI(AOIRight):
				t.state = StateProbablePass
			}
		}
	}

	return passed
}
