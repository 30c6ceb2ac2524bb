package plotview

import (
	"image"
	"time"
)

// Canvas is the thin rendering adapter the host substrate implements:
// a web canvas, an SVG layer, or the in-memory ImageCanvas shipped with this
// package. The controller owns two buffer slots per axis; no other component
// writes to them.
type Canvas interface {
	// Size returns the pixel dimensions of the plotting area.
	Size() (width, height int)
	// SetSlot installs an image into one of the two buffer slots of an
	// axis. A nil image clears the slot.
	SetSlot(axis Axis, slot int, img *image.NRGBA)
	// SetSlotTransform positions a slot's image in pixel space.
	SetSlotTransform(axis Axis, slot int, m Matrix)
	// SetSlotVisible shows or hides a slot.
	SetSlotVisible(axis Axis, slot int, visible bool)
}

// LoadConfirmer is optionally implemented by Canvas substrates that can
// confirm when an installed image has finished decoding or uploading. When
// available, the controller swaps buffers on confirmation instead of waiting
// out the settle delay.
type LoadConfirmer interface {
	// NotifyLoaded arranges for fn to be called once the image most
	// recently installed into the slot is ready to display.
	NotifyLoaded(axis Axis, slot int, fn func())
}

// Viewport is the currently visible time window plus the pixel dimensions of
// the plotting area.
type Viewport struct {
	Range  TimeRange
	Width  int
	Height int
}

// slotState tracks one buffer slot: Idle -> Loading -> Displayed.
type slotState int

const (
	slotIdle slotState = iota
	slotLoading
	slotDisplayed
)

// axisSlots is the double-buffer bookkeeping for one axis.
type axisSlots struct {
	state  [2]slotState
	native [2]TimeRange
	// active is the currently displayed slot, or -1 when nothing is shown.
	active    int
	swapTimer Timer
	swapGen   uint64
}

// ViewportController owns the interactive pan/zoom gesture state, the
// double-buffered image display strategy, and the debounced viewport-settled
// notification that triggers a new data fetch.
//
// A fresh axis raster is written into the hidden buffer slot and made
// visible only after the canvas confirms the image loaded (or after the
// settle delay); until then, the previously displayed raster stays visible
// and interactive, so a blank or partial frame is never shown.
type ViewportController struct {
	canvas Canvas
	coords *CoordinateSystem
	sched  Scheduler

	settleDelay time.Duration
	debounce    time.Duration

	slots [NumAxes]axisSlots

	debounceTimer Timer
	onSettled     func(Viewport)
}

// NewViewportController creates a controller over the given canvas and
// coordinate system.
func NewViewportController(canvas Canvas, coords *CoordinateSystem, sched Scheduler, settleDelay, debounce time.Duration) *ViewportController {
	vc := &ViewportController{
		canvas:      canvas,
		coords:      coords,
		sched:       sched,
		settleDelay: settleDelay,
		debounce:    debounce,
	}
	for i := range vc.slots {
		vc.slots[i].active = -1
	}
	return vc
}

// OnViewportSettled registers the callback fired at most once per quiet
// period after the viewport changes. It is the sole trigger for a new data
// fetch; the host issues the fetch and routes the response back to the plot.
func (vc *ViewportController) OnViewportSettled(fn func(Viewport)) {
	vc.onSettled = fn
}

// Viewport returns the current visible window and pixel size.
func (vc *ViewportController) Viewport() Viewport {
	w, h := vc.canvas.Size()
	return Viewport{Range: vc.coords.VisibleRange(), Width: w, Height: h}
}

// OnData installs a freshly composited axis raster. A nil raster hides the
// axis entirely (the empty-axis case). Any pending swap for the axis is
// superseded: cancel and restart, never compound.
func (vc *ViewportController) OnData(axis Axis, raster *Raster, native TimeRange) {
	s := &vc.slots[axis]
	s.swapGen++
	if s.swapTimer != nil {
		s.swapTimer.Stop()
		s.swapTimer = nil
	}

	if raster == nil {
		for slot := range s.state {
			vc.canvas.SetSlot(axis, slot, nil)
			vc.canvas.SetSlotVisible(axis, slot, false)
			s.state[slot] = slotIdle
		}
		s.active = -1
		return
	}

	target := 0
	if s.active == 0 {
		target = 1
	}
	s.native[target] = native
	s.state[target] = slotLoading
	vc.canvas.SetSlot(axis, target, raster.NRGBA())
	vc.canvas.SetSlotTransform(axis, target, vc.transformFor(native))
	vc.canvas.SetSlotVisible(axis, target, false)

	gen := s.swapGen
	swap := func() {
		if s.swapGen != gen {
			// a newer raster arrived before this swap fired
			return
		}
		vc.swap(axis, target)
	}
	if lc, ok := vc.canvas.(LoadConfirmer); ok {
		lc.NotifyLoaded(axis, target, func() { vc.sched.Post(swap) })
	} else {
		s.swapTimer = vc.sched.After(vc.settleDelay, swap)
	}
}

// swap makes the target slot visible and hides the previously shown one.
func (vc *ViewportController) swap(axis Axis, target int) {
	s := &vc.slots[axis]
	s.swapTimer = nil
	prev := s.active
	vc.canvas.SetSlotTransform(axis, target, vc.transformFor(s.native[target]))
	vc.canvas.SetSlotVisible(axis, target, true)
	if prev >= 0 && prev != target {
		vc.canvas.SetSlotVisible(axis, prev, false)
		s.state[prev] = slotIdle
	}
	s.state[target] = slotDisplayed
	s.active = target
	Logger().Debug("axis raster swapped", "axis", int(axis), "slot", target)
}

// Zoom scales the visible window by factor around the pivot pixel and gives
// immediate visual feedback by re-rendering the displayed rasters under the
// new transform, at zero network cost. factor < 1 zooms in.
func (vc *ViewportController) Zoom(factor, pivotPx float64) {
	vc.coords.ApplyZoom(factor, pivotPx)
	vc.refreshTransforms()
	vc.bumpSettle()
}

// Pan shifts the visible window by the given pixel distance.
func (vc *ViewportController) Pan(deltaPx float64) {
	vc.coords.ApplyPan(deltaPx)
	vc.refreshTransforms()
	vc.bumpSettle()
}

// SetTimeRange installs a new baseline range, resetting the gesture
// transform to identity. It repositions the displayed rasters but does not
// fetch; the host decides whether to.
func (vc *ViewportController) SetTimeRange(r TimeRange) {
	vc.coords.SetTimeRange(r)
	vc.refreshTransforms()
}

// refreshTransforms repositions every visible slot so the displayed rasters
// track the current visible window.
func (vc *ViewportController) refreshTransforms() {
	for axis := Axis(0); axis < NumAxes; axis++ {
		s := &vc.slots[axis]
		if s.active < 0 {
			continue
		}
		vc.canvas.SetSlotTransform(axis, s.active, vc.transformFor(s.native[s.active]))
	}
}

// transformFor computes the affine pixel transform that positions a raster
// rendered over its native time window into the currently visible window:
// a horizontal scale by the ratio of the two window durations plus the
// offset between their start times. The vertical axis is untouched; value
// domains are only ever updated together with a fresh raster.
func (vc *ViewportController) transformFor(native TimeRange) Matrix {
	vis := vc.coords.VisibleRange()
	visDur := float64(vis.Duration())
	if visDur <= 0 {
		return Identity()
	}
	w, _ := vc.canvas.Size()
	scale := float64(native.Duration()) / visDur
	offset := float64(native.Start.Sub(vis.Start)) / visDur * float64(w)
	return Translate(offset, 0).Multiply(Scale(scale, 1))
}

// bumpSettle restarts the debounce timer: the settled callback fires only
// after the gesture has paused for the debounce interval. A stale timer from
// a previous gesture is always invalidated before a new one is armed.
func (vc *ViewportController) bumpSettle() {
	if vc.debounceTimer != nil {
		vc.debounceTimer.Stop()
	}
	vc.debounceTimer = vc.sched.After(vc.debounce, func() {
		vc.debounceTimer = nil
		if vc.onSettled != nil {
			vc.onSettled(vc.Viewport())
		}
	})
}
