package plotview

import "time"

// AttributeConfig is the host-owned presentation state for one attribute.
// The core reads it and never mutates it. A zero Color (fully transparent)
// means "no explicit color chosen"; the plot assigns one from its palette.
type AttributeConfig struct {
	// Name is the opaque attribute identifier.
	Name string
	// Axis is the Y axis the attribute is drawn against.
	Axis Axis
	// Color tints the attribute's raster.
	Color RGBA
	// Width is the line width in pixels; values below 1 are treated as 1.
	Width int
	// Hidden excludes the attribute from compositing without forgetting
	// its cached raster.
	Hidden bool
}

// lineWidth returns the effective width.
func (c AttributeConfig) lineWidth() int {
	if c.Width < 1 {
		return 1
	}
	return c.Width
}

// RawImage is the image provider's output for one attribute: an opaque
// monochrome presence mask plus the ranges it was rendered over. Entries are
// replaced wholesale on each fetch, never mutated.
type RawImage struct {
	// PNG is the encoded payload: raw PNG bytes, bare base64, or a
	// data:image/png;base64 URL.
	PNG []byte
	// XRange is the time window the image spans.
	XRange TimeRange
	// YRange is the value range the image spans on its axis.
	YRange ValueRange
}

// AxisData is one axis's slice of a provider response: the raw image for
// every attribute on the axis plus the native ranges they were rendered
// over.
type AxisData struct {
	Images map[string]*RawImage
	XRange TimeRange
	YRange ValueRange
}

// DataUpdate is a full provider response routed through Plot.SetData.
type DataUpdate struct {
	// Issued is when the fetch producing this update was issued. Updates
	// whose Issued precedes an already-applied one are stale and dropped
	// silently. A zero Issued always applies.
	Issued time.Time
	// Axes holds per-axis data; a missing axis clears that axis.
	Axes map[Axis]*AxisData
	// Descriptors, if non-nil, replaces the hover descriptors.
	Descriptors map[string]*Descriptor
}
