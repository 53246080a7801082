package tracker

import (
	"testing"

	"github.com/avtrejo/corridor-counter/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSlotsAssignsPositionally(t *testing.T) {
	tr := New(testAOIs())
	tr.updateSlots([]geometry.Box{box(40), box(400)})

	require.NotNil(t, tr.slot1)
	require.NotNil(t, tr.slot2)
	assert.Equal(t, 40.0, tr.slot1.Box.X)
	assert.Equal(t, 400.0, tr.slot2.Box.X)
}

func TestUpdateSlotsPreservesIDOnOverlap(t *testing.T) {
	tr := New(testAOIs())
	tr.updateSlots([]geometry.Box{box(40)})
	first := tr.slot1.ID

	tr.currentFrame = 2
	tr.updateSlots([]geometry.Box{box(55)}) // [55,95] vs prior [40,80]: overlaps > 0.5
	assert.Equal(t, first, tr.slot1.ID)
}

func TestUpdateSlotsAgesAbsentSlot(t *testing.T) {
	tr := New(testAOIs())
	tr.updateSlots([]geometry.Box{box(40), box(400)})

	evicted1, evicted2 := tr.updateSlots([]geometry.Box{box(80)})
	assert.False(t, evicted1)
	assert.False(t, evicted2)
	require.NotNil(t, tr.slot2)
	assert.Equal(t, 1, tr.slot2.AbsentFrames)
	assert.Equal(t, 400.0, tr.slot2.Box.X, "aged slot keeps its last-known box")
}

func TestUpdateSlotsEvictsAfterSixAbsentFrames(t *testing.T) {
	tr := New(testAOIs())
	tr.updateSlots([]geometry.Box{box(40), box(400)})

	var evicted2 bool
	for i := 0; i < 6; i++ {
		_, evicted2 = tr.updateSlots([]geometry.Box{box(40)})
	}
	assert.True(t, evicted2)
	assert.Nil(t, tr.slot2)
}

func TestOccupiedCount(t *testing.T) {
	tr := New(testAOIs())
	assert.Equal(t, 0, tr.occupiedCount())
	tr.updateSlots([]geometry.Box{box(40)})
	assert.Equal(t, 1, tr.occupiedCount())
	tr.updateSlots([]geometry.Box{box(40), box(400)})
	assert.Equal(t, 2, tr.occupiedCount())
}
