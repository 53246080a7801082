package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapDisjoint(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	b := Box{X: 20, Y: 20, W: 10, H: 10}
	require.Zero(t, Overlap(a, b))
}

func TestOverlapZeroAreaBox(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 0, H: 10}
	b := Box{X: 0, Y: 0, W: 10, H: 10}
	require.Zero(t, Overlap(a, b))
}

func TestOverlapAsymmetric(t *testing.T) {
	// b fully contains a: from a's perspective, full overlap.
	a := Box{X: 5, Y: 5, W: 5, H: 5}
	b := Box{X: 0, Y: 0, W: 20, H: 20}
	assert.InDelta(t, 1.0, Overlap(a, b), 1e-9)
	// from b's perspective, only a sixteenth of b's area (25 of 400) is covered.
	assert.InDelta(t, 0.0625, Overlap(b, a), 1e-9)
}

func TestOverlapSpuriousDuplicate(t *testing.T) {
	left := Box{X: 300, Y: 180, W: 40, H: 80}
	right := Box{X: 305, Y: 180, W: 40, H: 80}
	ratio := Overlap(left, right)
	assert.Greater(t, ratio, 0.5)
}

func TestRoundTo1(t *testing.T) {
	b := Box{X: 15.249, Y: 180.05, W: 40.94, H: 79.951}
	r := b.Round()
	assert.InDelta(t, 15.2, r.X, 1e-9)
	assert.InDelta(t, 180.1, r.Y, 1e-9)
	assert.InDelta(t, 40.9, r.W, 1e-9)
	assert.InDelta(t, 80.0, r.H, 1e-9)
}

func TestAreaNonPositive(t *testing.T) {
	assert.Zero(t, Box{W: -1, H: 10}.Area())
	assert.Zero(t, Box{W: 10, H: 0}.Area())
}
