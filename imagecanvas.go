package plotview

import (
	"image"

	"golang.org/x/image/draw"
)

// ImageCanvas is the reference Canvas implementation: buffer slots are plain
// in-memory images composited on demand into a single frame. It implements
// LoadConfirmer (an in-memory image is ready the moment it is installed), so
// plots rendering into it swap buffers without waiting out the settle
// delay.
//
// Hosts targeting a real substrate (web canvas, SVG) implement Canvas
// themselves; ImageCanvas doubles as executable documentation of the
// expected behavior.
type ImageCanvas struct {
	width  int
	height int
	slots  [NumAxes][2]canvasSlot
}

type canvasSlot struct {
	img       *image.NRGBA
	transform Matrix
	visible   bool
}

// NewImageCanvas creates a canvas with the given pixel dimensions.
func NewImageCanvas(width, height int) *ImageCanvas {
	c := &ImageCanvas{width: width, height: height}
	for a := range c.slots {
		for s := range c.slots[a] {
			c.slots[a][s].transform = Identity()
		}
	}
	return c
}

// Size returns the canvas dimensions.
func (c *ImageCanvas) Size() (width, height int) { return c.width, c.height }

// SetSlot installs an image into a buffer slot. Nil clears the slot.
func (c *ImageCanvas) SetSlot(axis Axis, slot int, img *image.NRGBA) {
	c.slots[axis][slot].img = img
}

// SetSlotTransform positions a slot's image in pixel space.
func (c *ImageCanvas) SetSlotTransform(axis Axis, slot int, m Matrix) {
	c.slots[axis][slot].transform = m
}

// SetSlotVisible shows or hides a slot.
func (c *ImageCanvas) SetSlotVisible(axis Axis, slot int, visible bool) {
	c.slots[axis][slot].visible = visible
}

// NotifyLoaded implements LoadConfirmer. In-memory images need no decode,
// so confirmation is immediate.
func (c *ImageCanvas) NotifyLoaded(axis Axis, slot int, fn func()) {
	fn()
}

// Visible reports whether a slot is currently shown.
func (c *ImageCanvas) Visible(axis Axis, slot int) bool {
	return c.slots[axis][slot].visible
}

// Render composites every visible slot, under its transform, into a single
// frame. Slot images are resampled bilinearly, which is what the gesture
// feedback path relies on: a zoomed or panned view of the existing raster
// until fresh data arrives.
func (c *ImageCanvas) Render() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for a := range c.slots {
		for s := range c.slots[a] {
			sl := &c.slots[a][s]
			if !sl.visible || sl.img == nil {
				continue
			}
			draw.ApproxBiLinear.Transform(dst, sl.transform.Aff3(), sl.img, sl.img.Bounds(), draw.Over, nil)
		}
	}
	return dst
}
