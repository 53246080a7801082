// Package geometry implements the rectangle arithmetic the corridor
// tracker is built on: axis-aligned boxes and the asymmetric overlap
// ratio used throughout box cleanup, identity matching and AOI membership.
package geometry

import "math"

// Box is an axis-aligned rectangle (x, y, w, h) in detection image space.
// Coordinates are float64 because the detection producer may emit
// fractional pixel positions; callers that need the one-decimal rounding
// described by the box cleanup step should call Round.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Area returns the box's area. A box with non-positive width or height
// has zero area.
func (b Box) Area() float64 {
	if b.W <= 0 || b.H <= 0 {
		return 0
	}
	return b.W * b.H
}

// Round returns b with each coordinate rounded to one decimal place,
// matching the detection-intake rounding rule (§4.2).
func (b Box) Round() Box {
	return Box{
		X: roundTo1(b.X),
		Y: roundTo1(b.Y),
		W: roundTo1(b.W),
		H: roundTo1(b.H),
	}
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Overlap returns the fraction of a's area that intersects b: the
// intersection area divided by a's area. This ratio is intentionally
// asymmetric — Overlap(a, b) and Overlap(b, a) differ whenever a and b
// aren't the same size. Using a's area as the denominator is what makes
// box cleanup (§4.2) keep the more advanced (rightmost) of two heavily
// overlapping boxes: the smaller/leftmost box is the one whose area is
// tested against the intersection.
//
// Returns 0 if a has zero area or the two boxes are disjoint.
func Overlap(a, b Box) float64 {
	aArea := a.Area()
	if aArea == 0 {
		return 0
	}
	left := math.Max(a.X, b.X)
	right := math.Min(a.X+a.W, b.X+b.W)
	top := math.Max(a.Y, b.Y)
	bottom := math.Min(a.Y+a.H, b.Y+b.H)
	if right <= left || bottom <= top {
		return 0
	}
	return (right - left) * (bottom - top) / aArea
}
