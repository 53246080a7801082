package tracker

// StateKind is one of the 8 states the traversal state machine can be in.
// It's an explicit tagged value (Design Note "State as explicit variant")
// rather than a bare string; String reports any value outside the eight
// constants below as "unknown".
type StateKind int

const (
	StateZeroCars StateKind = iota
	StateOneCar
	StateTwoCars
	StateLeftState
	StateRightState
	StateNightPass
	StateProbablePass
	StateTwoCarsLeft
)

func (s StateKind) String() string {
	switch s {
	case StateZeroCars:
		return "zero_cars"
	case StateOneCar:
		return "one_car"
	case StateTwoCars:
		return "two_cars"
	case StateLeftState:
		return "left_state"
	case StateRightState:
		return "right_state"
	case StateNightPass:
		return "night_pass"
	case StateProbablePass:
		return "probable_pass"
	case StateTwoCarsLeft:
		return "2_cars_left"
	default:
		return "unknown"
	}
}

// Tracker is the frame-clock state machine described by §3-§5 of the
// corridor traversal spec: two identity slots, a 3-entry AOI latch table,
// the frame counters and the 8-state machine, all driven one record at a
// time by Step.
type Tracker struct {
	aois AOITable

	slot1 *Slot
	slot2 *Slot

	lastActiveFrame [3]int

	currentFrame        int
	lastProcessedFrame  int
	emptyFrameCount     int
	oneCarFrameCount    int
	oneCarDuration      int
	probablePassStart   int
	rightActiveDuration int

	state       StateKind
	totalPassed uint64
}

// New creates a Tracker for the given fixed AOI table, ready to consume
// the first detection record.
func New(aois AOITable) *Tracker {
	return &Tracker{
		aois:               aois,
		lastProcessedFrame: -1,
		state:              StateZeroCars,
	}
}

// TotalPassed returns the current monotonic total-passed counter.
func (t *Tracker) TotalPassed() uint64 { return t.totalPassed }

// State returns the tracker's current state.
func (t *Tracker) State() StateKind { return t.state }

// reset reinitializes all tracker state to its startup values, except the
// monotonic total-passed counter, which the spec requires survive a
// producer restart (§7 "Producer frame regression").
func (t *Tracker) reset() {
	t.slot1 = nil
	t.slot2 = nil
	t.lastActiveFrame = [3]int{}
	t.emptyFrameCount = 0
	t.oneCarFrameCount = 0
	t.oneCarDuration = 0
	t.probablePassStart = 0
	t.rightActiveDuration = 0
	t.state = StateZeroCars
	t.lastProcessedFrame = -1
}
