// Package visualize is the debug renderer described in SPEC_FULL.md's
// "Visualization sink" section: it draws a Snapshot onto a synthetic
// canvas and shows it in a window, grounded on the teacher's own
// gocv.NewWindow/IMShow/PutText calls in main() and on
// gui_positions_advanced_slave.py's BoxGUI/InfoGUI drawing helpers. It
// only ever reads the latest snapshot posted to it. Render runs on the
// caller's goroutine and waits up to its delay for a key press, so a
// frame loop that calls it is held for that long on every call.
package visualize

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/avtrejo/corridor-counter/internal/geometry"
	"github.com/avtrejo/corridor-counter/internal/tracker"
)

var (
	colorLatched = color.RGBA{0, 200, 0, 0}
	colorStale   = color.RGBA{200, 0, 0, 0}
	colorSlot1   = color.RGBA{255, 200, 0, 0}
	colorSlot2   = color.RGBA{0, 200, 255, 0}
	colorText    = color.RGBA{255, 255, 255, 0}
	canvasSize   = image.Point{X: 680, Y: 400}
)

// Sink owns the debug window and the canvas it redraws each tick.
type Sink struct {
	window *gocv.Window
	aois   tracker.AOITable

	latest tracker.Snapshot
	have   bool
}

// New opens a window titled name showing the fixed AOI table aois.
func New(name string, aois tracker.AOITable) *Sink {
	window := gocv.NewWindow(name)
	window.SetWindowProperty(gocv.WindowPropertyAutosize, gocv.WindowAutosize)
	return &Sink{window: window, aois: aois}
}

// Push replaces the snapshot drawn on the next Render call. Called from
// the frame loop; never blocks since it's a plain, unguarded field write,
// which is safe only because Push and Render are called from the same
// goroutine (cmd/tracker's frame loop).
func (s *Sink) Push(snap tracker.Snapshot) {
	s.latest = snap
	s.have = true
}

// Render draws the latest pushed snapshot and returns false when the
// operator has closed the window (ESC), matching the teacher's
// `window.WaitKey(delay) == 27` exit check.
func (s *Sink) Render(waitMillis int) bool {
	img := gocv.NewMatWithSize(canvasSize.Y, canvasSize.X, gocv.MatTypeCV8UC3)
	defer img.Close()

	drawSnapshot(&img, s.aois, s.latest, s.have)

	s.window.IMShow(img)
	return s.window.WaitKey(waitMillis) != 27
}

// drawSnapshot renders the AOI table and, if have is true, the latest
// snapshot's slots and status text onto img. Split out from Render so it
// can be exercised without a display.
func drawSnapshot(img *gocv.Mat, aois tracker.AOITable, snap tracker.Snapshot, have bool) {
	drawAOIs(img, aois, snap, have)
	if !have {
		return
	}
	drawSlot(img, snap.Slot1, colorSlot1)
	drawSlot(img, snap.Slot2, colorSlot2)
	gocv.PutText(img, fmt.Sprintf("frame %d  state %s", snap.Frame, snap.State),
		image.Point{X: 8, Y: 20}, gocv.FontHersheySimplex, 0.5, colorText, 1)
	gocv.PutText(img, fmt.Sprintf("total_passed %d", snap.TotalPassed),
		image.Point{X: 8, Y: 40}, gocv.FontHersheySimplex, 0.5, colorText, 1)
}

func drawAOIs(img *gocv.Mat, aois tracker.AOITable, snap tracker.Snapshot, have bool) {
	names := [3]string{"L", "M", "R"}
	boxes := [3]image.Rectangle{rectOf(aois.Left), rectOf(aois.Middle), rectOf(aois.Right)}
	for i, r := range boxes {
		c := colorStale
		if have && snap.AOILatched[i] {
			c = colorLatched
		}
		gocv.Rectangle(img, r, c, 2)
		gocv.PutText(img, names[i], image.Point{X: r.Min.X, Y: r.Min.Y - 4},
			gocv.FontHersheySimplex, 0.4, c, 1)
	}
}

func drawSlot(img *gocv.Mat, slot *tracker.SlotSnapshot, c color.RGBA) {
	if slot == nil {
		return
	}
	r := rectOf(slot.Box)
	gocv.Rectangle(img, r, c, 2)
	gocv.PutText(img, slot.ID, image.Point{X: r.Min.X, Y: r.Min.Y - 4},
		gocv.FontHersheySimplex, 0.4, c, 1)
}

func rectOf(b geometry.Box) image.Rectangle {
	return image.Rect(int(b.X), int(b.Y), int(b.X+b.W), int(b.Y+b.H))
}

// Close releases the underlying window.
func (s *Sink) Close() error {
	return s.window.Close()
}
