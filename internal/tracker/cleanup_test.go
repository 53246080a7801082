package tracker

import (
	"testing"

	"github.com/avtrejo/corridor-counter/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func TestCleanupSortsLeftToRight(t *testing.T) {
	boxes := cleanup([]Detection{
		{Label: string(LabelCar), Box: box(400)},
		{Label: string(LabelCar), Box: box(40)},
	})
	assert := assert.New(t)
	if assert.Len(boxes, 2) {
		assert.Equal(40.0, boxes[0].X)
		assert.Equal(400.0, boxes[1].X)
	}
}

func TestCleanupMergesSpuriousDuplicate(t *testing.T) {
	boxes := cleanup([]Detection{
		{Label: string(LabelCar), Box: geometry.Box{X: 300, Y: 180, W: 40, H: 80}},
		{Label: string(LabelCar), Box: geometry.Box{X: 305, Y: 180, W: 40, H: 80}},
	})
	if assert.Len(t, boxes, 1) {
		assert.Equal(t, 305.0, boxes[0].X, "the more advanced (rightmost) box is kept")
	}
}

func TestCleanupTruncatesToTwo(t *testing.T) {
	boxes := cleanup([]Detection{
		{Label: string(LabelCar), Box: box(40)},
		{Label: string(LabelCar), Box: box(200)},
		{Label: string(LabelCar), Box: box(400)},
	})
	assert.Len(t, boxes, 2)
}

func TestCleanupFiltersUntrackedLabels(t *testing.T) {
	boxes := cleanup([]Detection{
		{Label: "pedestrian", Box: box(40)},
		{Label: string(LabelServiceCar), Box: box(200)},
	})
	if assert.Len(t, boxes, 1) {
		assert.Equal(t, 200.0, boxes[0].X)
	}
}

func TestCleanupRoundsCoordinates(t *testing.T) {
	boxes := cleanup([]Detection{
		{Label: string(LabelCar), Box: geometry.Box{X: 15.249, Y: 180.05, W: 40.94, H: 79.951}},
	})
	if assert.Len(t, boxes, 1) {
		assert.InDelta(t, 15.2, boxes[0].X, 1e-9)
	}
}
