package plotview

import (
	"fmt"
	"math"
	"time"
)

// Axis identifies one of the two Y axes. Exactly two axes exist for the
// lifetime of a plot; an attribute belongs to exactly one of them.
type Axis int

const (
	// AxisLeft is Y axis 0.
	AxisLeft Axis = 0
	// AxisRight is Y axis 1.
	AxisRight Axis = 1
	// NumAxes is the number of Y axes.
	NumAxes = 2
)

// Valid reports whether a is one of the two supported axes.
func (a Axis) Valid() bool { return a >= 0 && a < NumAxes }

// ScaleType selects how an axis maps values to pixels.
type ScaleType int

const (
	// ScaleLinear maps values linearly.
	ScaleLinear ScaleType = iota
	// ScaleLog maps values by their base-10 logarithm.
	ScaleLog
)

// String returns the wire name of the scale type ("linear" or "log").
func (s ScaleType) String() string {
	if s == ScaleLog {
		return "log"
	}
	return "linear"
}

// ParseScaleType converts a wire name back to a ScaleType.
func ParseScaleType(s string) (ScaleType, error) {
	switch s {
	case "linear", "":
		return ScaleLinear, nil
	case "log":
		return ScaleLog, nil
	}
	return ScaleLinear, fmt.Errorf("plotview: unknown scale type %q", s)
}

// TimeRange is a half-open-ish window [Start, End] on the time axis. It is
// an immutable value: ranges are replaced wholesale, never mutated.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (r TimeRange) Duration() time.Duration { return r.End.Sub(r.Start) }

// IsZero reports whether the range is the zero value.
func (r TimeRange) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

// At returns the time at fraction f of the range (f=0 is Start, f=1 is End).
func (r TimeRange) At(f float64) time.Time {
	return r.Start.Add(time.Duration(f * float64(r.Duration())))
}

// ValueRange is a [Min, Max] interval on a value axis.
type ValueRange struct {
	Min float64
	Max float64
}

// Padded returns the range grown by 5% at each end for visual headroom, so
// a line never sits exactly on the plot edge. On log axes the padding is
// applied in log space. A degenerate range (Min == Max) is replaced by an
// invented one around the constant value.
func (v ValueRange) Padded(scale ScaleType) ValueRange {
	if v.Min == v.Max {
		switch c := v.Min; {
		case c > 0:
			return ValueRange{Min: c / 2, Max: 1.5 * c}
		case c == 0:
			return ValueRange{Min: -0.5, Max: 0.5}
		default:
			return ValueRange{Min: 1.5 * c, Max: c / 2}
		}
	}
	if scale == ScaleLog {
		cl := v.clampPositive()
		logMin := math.Log10(cl.Min)
		logMax := math.Log10(cl.Max)
		pad := 0.05 * (logMax - logMin)
		return ValueRange{
			Min: math.Pow(10, logMin-pad),
			Max: math.Pow(10, logMax+pad),
		}
	}
	pad := 0.05 * (v.Max - v.Min)
	return ValueRange{Min: v.Min - pad, Max: v.Max + pad}
}

// clampPositive forces both bounds strictly positive so they can be
// log-mapped. Zero or negative bounds clamp to the smallest positive
// representable value instead of failing.
func (v ValueRange) clampPositive() ValueRange {
	out := v
	if out.Min <= 0 {
		out.Min = math.SmallestNonzeroFloat64
	}
	if out.Max <= out.Min {
		out.Max = out.Min * 10
	}
	return out
}

// ViewportTransform is the accumulated pan/zoom state applied on top of the
// baseline time range. Identity leaves the baseline window visible;
// Zoom scales the window duration around a pivot and Offset shifts it, both
// expressed as fractions of the baseline duration.
type ViewportTransform struct {
	Zoom   float64
	Offset float64
}

// IdentityTransform returns the transform that shows exactly the baseline
// range.
func IdentityTransform() ViewportTransform {
	return ViewportTransform{Zoom: 1, Offset: 0}
}

// IsIdentity reports whether the transform is the identity.
func (t ViewportTransform) IsIdentity() bool { return t.Zoom == 1 && t.Offset == 0 }

// CoordinateSystem owns the time (X) scale and the two Y scales and converts
// between data space and pixel space. Time is always linear over the pixel
// width; each Y axis is independently linear or logarithmic.
//
// Pixel space has x growing rightwards from 0 and y growing downwards from
// 0, so MapValue of the domain maximum is 0 and of the domain minimum is the
// pixel height.
type CoordinateSystem struct {
	width     int
	height    int
	base      TimeRange
	transform ViewportTransform
	axes      [NumAxes]AxisScale
}

// AxisScale describes one Y axis: its scale type and the current data
// domain. The domain tracks the most recent data update; the type changes
// only by explicit user action.
type AxisScale struct {
	Type   ScaleType
	Domain ValueRange
}

// NewCoordinateSystem creates a coordinate system over the given pixel size
// and baseline time range. Both axes start linear with a unit domain until
// the first data update supplies a real one.
func NewCoordinateSystem(width, height int, base TimeRange) *CoordinateSystem {
	cs := &CoordinateSystem{
		width:     width,
		height:    height,
		base:      base,
		transform: IdentityTransform(),
	}
	for i := range cs.axes {
		cs.axes[i] = AxisScale{Type: ScaleLinear, Domain: ValueRange{Min: 0, Max: 1}}
	}
	return cs
}

// Size returns the pixel dimensions.
func (cs *CoordinateSystem) Size() (width, height int) { return cs.width, cs.height }

// SetSize updates the pixel dimensions.
func (cs *CoordinateSystem) SetSize(width, height int) {
	cs.width = width
	cs.height = height
}

// BaseRange returns the baseline time range (before pan/zoom).
func (cs *CoordinateSystem) BaseRange() TimeRange { return cs.base }

// SetTimeRange installs a new baseline time range and resets any active
// pan/zoom transform to identity: the new range is a fresh baseline.
func (cs *CoordinateSystem) SetTimeRange(r TimeRange) {
	cs.base = r
	cs.transform = IdentityTransform()
}

// Transform returns the current pan/zoom transform.
func (cs *CoordinateSystem) Transform() ViewportTransform { return cs.transform }

// VisibleRange returns the time window currently mapped to the pixel width,
// i.e. the baseline range with the pan/zoom transform applied.
func (cs *CoordinateSystem) VisibleRange() TimeRange {
	d := float64(cs.base.Duration())
	start := cs.base.Start.Add(time.Duration(cs.transform.Offset * d))
	return TimeRange{
		Start: start,
		End:   start.Add(time.Duration(cs.transform.Zoom * d)),
	}
}

// MapTime converts a time to a pixel X coordinate.
func (cs *CoordinateSystem) MapTime(t time.Time) float64 {
	vis := cs.VisibleRange()
	d := float64(vis.Duration())
	if d <= 0 {
		d = 1
	}
	return float64(t.Sub(vis.Start)) / d * float64(cs.width)
}

// InvertTime converts a pixel X coordinate back to a time.
func (cs *CoordinateSystem) InvertTime(px float64) time.Time {
	vis := cs.VisibleRange()
	return vis.Start.Add(time.Duration(px / float64(cs.width) * float64(vis.Duration())))
}

// MapValue converts a value on the given axis to a pixel Y coordinate.
// On a log axis, values at or below zero map below the plot (positive
// infinity is avoided by clamping to the domain floor).
func (cs *CoordinateSystem) MapValue(axis Axis, v float64) float64 {
	sc := cs.axes[axis]
	var f float64
	if sc.Type == ScaleLog {
		dom := sc.Domain.clampPositive()
		if v < dom.Min {
			v = dom.Min
		}
		logMin := math.Log10(dom.Min)
		logMax := math.Log10(dom.Max)
		f = (math.Log10(v) - logMin) / (logMax - logMin)
	} else {
		span := sc.Domain.Max - sc.Domain.Min
		if span == 0 {
			span = 1
		}
		f = (v - sc.Domain.Min) / span
	}
	return (1 - f) * float64(cs.height)
}

// InvertValue converts a pixel Y coordinate back to a value on the given
// axis.
func (cs *CoordinateSystem) InvertValue(axis Axis, py float64) float64 {
	sc := cs.axes[axis]
	f := 1 - py/float64(cs.height)
	if sc.Type == ScaleLog {
		dom := sc.Domain.clampPositive()
		logMin := math.Log10(dom.Min)
		logMax := math.Log10(dom.Max)
		return math.Pow(10, logMin+f*(logMax-logMin))
	}
	return sc.Domain.Min + f*(sc.Domain.Max-sc.Domain.Min)
}

// AxisScale returns the scale of the given axis.
func (cs *CoordinateSystem) AxisScale(axis Axis) AxisScale { return cs.axes[axis] }

// SetAxisDomain installs a new data domain for the axis. On a log axis a
// domain touching or crossing zero is clamped to the smallest positive
// representable bound rather than rejected.
func (cs *CoordinateSystem) SetAxisDomain(axis Axis, dom ValueRange) {
	if cs.axes[axis].Type == ScaleLog {
		clamped := dom.clampPositive()
		if clamped != dom {
			Logger().Debug("clamped non-positive log domain",
				"axis", int(axis), "min", dom.Min, "max", dom.Max)
		}
		dom = clamped
	}
	cs.axes[axis].Domain = dom
}

// SetAxisScaleType switches the axis between linear and log. The pixel range
// is preserved; the previous domain shape is discarded and replaced with a
// neutral one, since the next data update supplies a fresh domain
// appropriate to the new type.
func (cs *CoordinateSystem) SetAxisScaleType(axis Axis, t ScaleType) {
	if cs.axes[axis].Type == t {
		return
	}
	cs.axes[axis].Type = t
	if t == ScaleLog {
		cs.axes[axis].Domain = ValueRange{Min: 1, Max: 10}
	} else {
		cs.axes[axis].Domain = ValueRange{Min: 0, Max: 1}
	}
}

// ApplyZoom scales the visible window by factor around the given pixel X
// pivot. factor < 1 zooms in (shorter window), factor > 1 zooms out. The
// transform accumulates on top of any previous gesture state.
func (cs *CoordinateSystem) ApplyZoom(factor float64, pivotPx float64) {
	if factor <= 0 {
		return
	}
	p := pivotPx / float64(cs.width)
	// Keep the time under the pivot stationary while the window scales.
	cs.transform.Offset += p * cs.transform.Zoom * (1 - factor)
	cs.transform.Zoom *= factor
}

// ApplyPan shifts the visible window by the given pixel distance. Positive
// deltas move the window later in time (content slides left).
func (cs *CoordinateSystem) ApplyPan(deltaPx float64) {
	cs.transform.Offset += deltaPx / float64(cs.width) * cs.transform.Zoom
}
