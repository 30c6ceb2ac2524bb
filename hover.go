package plotview

import (
	"math"
	"sort"
	"time"
)

// Descriptor is the per-pixel-column statistical summary the provider ships
// alongside each attribute's raster. It exists solely for hover inspection;
// rendering never reads it. Columns are listed in monotonically
// non-decreasing pixel order, with parallel slices for the per-column
// statistics.
type Descriptor struct {
	// TotalPoints is how many samples the provider aggregated.
	TotalPoints int
	// Indices are the pixel columns that contain at least one sample.
	Indices []int
	// Min and Max bound the sample values in each column.
	Min []float64
	Max []float64
	// Count is the number of samples in each column.
	Count []int
	// Timestamp is a representative sample time per column, in epoch
	// milliseconds.
	Timestamp []float64
}

// columnAt returns the index into the parallel slices of the last column
// whose pixel position does not exceed x, falling back to the first column
// when x precedes all of them. ok is false for an empty descriptor.
func (d *Descriptor) columnAt(x int) (i int, ok bool) {
	if d == nil || len(d.Indices) == 0 {
		return 0, false
	}
	// first column strictly beyond x
	n := sort.Search(len(d.Indices), func(i int) bool { return d.Indices[i] > x })
	if n == 0 {
		return 0, true
	}
	return n - 1, true
}

// HoverValue is what a tooltip shows for the sample column nearest the
// pointer.
type HoverValue struct {
	Attribute string
	Time      time.Time
	// Count is how many samples the column aggregates. When Count is 1,
	// Value holds the single sample; otherwise Min and Max describe the
	// aggregate and Value is unset.
	Count int
	Value float64
	Min   float64
	Max   float64
	// X is the pixel column the result came from.
	X int
}

// HoverInspector computes, from a pointer position, the nearest sample per
// attribute and the data to show in a tooltip.
type HoverInspector struct {
	coords  *CoordinateSystem
	configs []AttributeConfig
	descs   map[string]*Descriptor
}

// NewHoverInspector creates an inspector bound to the plot's coordinate
// system.
func NewHoverInspector(coords *CoordinateSystem) *HoverInspector {
	return &HoverInspector{coords: coords}
}

// SetConfigs installs the declaration-ordered attribute configs.
func (h *HoverInspector) SetConfigs(configs []AttributeConfig) {
	h.configs = configs
}

// SetDescriptors installs the latest provider descriptors.
func (h *HoverInspector) SetDescriptors(descs map[string]*Descriptor) {
	h.descs = descs
}

// Locate finds, among all visible attributes, the one whose [min, max] band
// at the column nearest pixelX lies closest (in pixel Y) to the query
// point. Ties go to the earliest-declared attribute. ok is false when no
// attributes are configured or no descriptor data is loaded yet.
func (h *HoverInspector) Locate(pixelX, pixelY float64) (HoverValue, bool) {
	var best HoverValue
	bestDist := -1.0

	for _, cfg := range h.configs {
		if cfg.Hidden {
			continue
		}
		desc := h.descs[cfg.Name]
		i, ok := desc.columnAt(int(pixelX))
		if !ok {
			continue
		}
		// columns whose stats arrived null carry no comparable band
		if math.IsNaN(desc.Min[i]) || math.IsNaN(desc.Max[i]) {
			continue
		}
		lo := h.coords.MapValue(cfg.Axis, desc.Max[i]) // max maps to the smaller Y
		hi := h.coords.MapValue(cfg.Axis, desc.Min[i])
		dist := 0.0
		switch {
		case pixelY < lo:
			dist = lo - pixelY
		case pixelY > hi:
			dist = pixelY - hi
		}
		if bestDist >= 0 && dist >= bestDist {
			continue
		}
		bestDist = dist
		best = HoverValue{
			Attribute: cfg.Name,
			Time:      time.UnixMilli(int64(desc.Timestamp[i])),
			Count:     desc.Count[i],
			Min:       desc.Min[i],
			Max:       desc.Max[i],
			X:         desc.Indices[i],
		}
		if best.Count == 1 {
			best.Value = desc.Min[i]
		}
	}
	return best, bestDist >= 0
}
