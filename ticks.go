package plotview

import (
	"time"

	"gonum.org/v1/plot"
)

// Tick is one axis tick: the data value it marks, its pixel position under
// the current scales, and a label. Minor ticks carry no label.
type Tick struct {
	Value float64
	Pixel float64
	Label string
	Minor bool
}

// ValueTicks computes tick marks for a Y axis over its current domain,
// using log-spaced ticks on log axes. The host's axis-label adapter renders
// them; this core only supplies positions and text.
func (cs *CoordinateSystem) ValueTicks(axis Axis) []Tick {
	sc := cs.axes[axis]
	var ticker plot.Ticker
	if sc.Type == ScaleLog {
		ticker = plot.LogTicks{Prec: -1}
	} else {
		ticker = plot.DefaultTicks{}
	}
	dom := sc.Domain
	if sc.Type == ScaleLog {
		dom = dom.clampPositive()
	}
	raw := ticker.Ticks(dom.Min, dom.Max)
	out := make([]Tick, 0, len(raw))
	for _, t := range raw {
		out = append(out, Tick{
			Value: t.Value,
			Pixel: cs.MapValue(axis, t.Value),
			Label: t.Label,
			Minor: t.IsMinor(),
		})
	}
	return out
}

// TimeTicks computes tick marks for the time axis over the currently
// visible window.
func (cs *CoordinateSystem) TimeTicks() []Tick {
	vis := cs.VisibleRange()
	ticker := plot.TimeTicks{}
	raw := ticker.Ticks(
		float64(vis.Start.UnixNano())/float64(time.Second),
		float64(vis.End.UnixNano())/float64(time.Second),
	)
	out := make([]Tick, 0, len(raw))
	for _, t := range raw {
		at := time.Unix(0, int64(t.Value*float64(time.Second)))
		out = append(out, Tick{
			Value: t.Value,
			Pixel: cs.MapTime(at),
			Label: t.Label,
			Minor: t.IsMinor(),
		})
	}
	return out
}
