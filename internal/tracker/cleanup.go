package tracker

import (
	"sort"

	"github.com/avtrejo/corridor-counter/internal/geometry"
)

// cleanup implements §4.2 Box Cleanup: filters to the two recognized
// labels (already done by intake, but defensive here too), rounds each
// coordinate to one decimal place, sorts left-to-right, and discards a
// left box that is largely covered by the right one, keeping the more
// advanced vehicle. Returns at most two boxes.
func cleanup(detections []Detection) []geometry.Box {
	boxes := make([]geometry.Box, 0, len(detections))
	for _, d := range detections {
		if !isTrackedLabel(d.Label) {
			continue
		}
		boxes = append(boxes, d.Box.Round())
	}

	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].X < boxes[j].X })

	if len(boxes) == 2 && geometry.Overlap(boxes[0], boxes[1]) > 0.5 {
		return boxes[1:2]
	}
	if len(boxes) > 2 {
		return boxes[:2]
	}
	return boxes
}
