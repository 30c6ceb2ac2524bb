package plotview

// Plot is the top-level orchestrator: it wires the coordinate system, raster
// cache, per-axis compositors, viewport controller, and hover inspector
// together and exposes the contract the host UI programs against.
//
// A Plot is single-threaded: every method must be called on its
// scheduler's loop (from other goroutines, marshal through
// Scheduler.Post). Internal async work (raster decode, settle and debounce
// timers) is delivered back onto the same loop, so no additional locking
// exists anywhere in the core.
type Plot struct {
	sched   Scheduler
	ownLoop *RunLoop

	canvas      Canvas
	coords      *CoordinateSystem
	cache       *AttributeRasterCache
	compositors [NumAxes]*AxisCompositor
	viewport    *ViewportController
	hover       *HoverInspector

	palette Palette
	configs []AttributeConfig

	onChange func(Viewport)
	onError  func(error)

	// lastApplied is the issue time of the most recently applied data
	// update; responses issued earlier are stale and dropped.
	lastApplied int64
}

// New creates a plot rendering into the given canvas, showing the initial
// time range. Unless WithScheduler is given, the plot starts its own RunLoop
// and Close must be called to stop it.
func New(canvas Canvas, initial TimeRange, opts ...Option) *Plot {
	o := defaultPlotOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Plot{canvas: canvas, palette: o.palette}
	if o.sched != nil {
		p.sched = o.sched
	} else {
		p.ownLoop = NewRunLoop()
		p.sched = p.ownLoop
	}

	w, h := canvas.Size()
	p.coords = NewCoordinateSystem(w, h, initial)
	p.cache = NewAttributeRasterCache(p.sched)
	p.viewport = NewViewportController(canvas, p.coords, p.sched, o.settleDelay, o.debounce)
	p.hover = NewHoverInspector(p.coords)
	for axis := Axis(0); axis < NumAxes; axis++ {
		axis := axis
		p.compositors[axis] = NewAxisCompositor(axis, p.cache, p.applyResult)
	}
	p.viewport.OnViewportSettled(func(v Viewport) {
		if p.onChange != nil {
			p.onChange(v)
		}
	})
	return p
}

// Close stops the plot's own run loop, if it started one. A plot sharing a
// scheduler via WithScheduler is unaffected.
func (p *Plot) Close() {
	if p.ownLoop != nil {
		p.ownLoop.Close()
	}
}

// Scheduler returns the loop the plot runs on, for hosts that need to
// marshal calls onto it.
func (p *Plot) Scheduler() Scheduler { return p.sched }

// OnChange registers the callback invoked at most once per settled viewport
// change, carrying the visible time window and pixel dimensions the next
// fetch should cover.
func (p *Plot) OnChange(fn func(Viewport)) { p.onChange = fn }

// OnError registers the callback surfacing fetch failures reported via
// FetchFailed. Decode failures are not surfaced here; they degrade to
// excluding the affected attribute.
func (p *Plot) OnError(fn func(error)) { p.onError = fn }

// SetConfig installs the full declaration-ordered attribute configuration.
// Attributes with no color get one assigned from the palette. This triggers
// recompositing only, without a fetch, for axes whose attributes already have
// cached raw images.
func (p *Plot) SetConfig(configs []AttributeConfig) {
	p.configs = assignColors(p.palette, configs)
	p.hover.SetConfigs(p.configs)
	for axis := Axis(0); axis < NumAxes; axis++ {
		p.compositors[axis].SetAttributeConfigs(p.axisConfigs(axis))
		p.compositors[axis].Recomposite()
	}
}

// Config returns the effective configuration, with palette colors filled
// in.
func (p *Plot) Config() []AttributeConfig { return p.configs }

// axisConfigs filters the declaration-ordered configs down to one axis.
func (p *Plot) axisConfigs(axis Axis) []AttributeConfig {
	var out []AttributeConfig
	for _, cfg := range p.configs {
		if cfg.Axis == axis {
			out = append(out, cfg)
		}
	}
	return out
}

// SetData applies a provider response: raw images are routed to the two
// axis compositors and descriptors to the hover inspector. Out-of-order
// responses are detected by their issue time; only the most recently issued
// one is ever applied, older ones are dropped silently.
func (p *Plot) SetData(upd *DataUpdate) {
	if issued := upd.Issued.UnixNano(); !upd.Issued.IsZero() {
		if issued < p.lastApplied {
			Logger().Debug("dropping superseded response",
				"issued", upd.Issued, "error", ErrStaleResponse)
			return
		}
		p.lastApplied = issued
	}
	if upd.Descriptors != nil {
		p.hover.SetDescriptors(upd.Descriptors)
	}
	for axis := Axis(0); axis < NumAxes; axis++ {
		p.compositors[axis].SetData(upd.Axes[axis])
	}
}

// SetDescriptions replaces the hover descriptors without touching rasters.
func (p *Plot) SetDescriptions(descs map[string]*Descriptor) {
	p.hover.SetDescriptors(descs)
}

// SetTimeRange installs a new baseline time range, resetting any active
// pan/zoom transform to identity. It does not fetch: the host decides
// whether the new range warrants one.
func (p *Plot) SetTimeRange(r TimeRange) {
	p.viewport.SetTimeRange(r)
}

// SetYAxisScale switches an axis between linear and log scale and
// recomposites that axis from cached rasters. No network fetch is involved;
// the next data update supplies a domain appropriate to the new scale.
func (p *Plot) SetYAxisScale(axis Axis, t ScaleType) {
	if !axis.Valid() {
		return
	}
	p.coords.SetAxisScaleType(axis, t)
	p.compositors[axis].Recomposite()
}

// FetchFailed tells the plot a fetch issued for it failed. The currently
// displayed rasters are left untouched; the error is surfaced through
// OnError for the host's own error display.
func (p *Plot) FetchFailed(err error) {
	Logger().Debug("provider fetch failed", "error", err)
	if p.onError != nil {
		p.onError(err)
	}
}

// Zoom scales the visible window by factor around the pivot pixel X.
// factor < 1 zooms in. The displayed rasters are re-rendered immediately
// under the new transform; a fetch is only triggered once the gesture
// settles.
func (p *Plot) Zoom(factor, pivotPx float64) { p.viewport.Zoom(factor, pivotPx) }

// Pan shifts the visible window by the given pixel distance.
func (p *Plot) Pan(deltaPx float64) { p.viewport.Pan(deltaPx) }

// Viewport returns the currently visible window and pixel size.
func (p *Plot) Viewport() Viewport { return p.viewport.Viewport() }

// Coords exposes the coordinate system for hosts rendering axes, grids, or
// crosshairs.
func (p *Plot) Coords() *CoordinateSystem { return p.coords }

// Hover computes the tooltip content for a pointer position.
func (p *Plot) Hover(pixelX, pixelY float64) (HoverValue, bool) {
	return p.hover.Locate(pixelX, pixelY)
}

// applyResult consumes a completed axis composite: the axis domain follows
// the data's native value range, padded for visual headroom, and the raster
// goes into the hidden buffer slot to be swapped in once settled.
func (p *Plot) applyResult(res AxisResult) {
	if res.Raster != nil {
		scale := p.coords.AxisScale(res.Axis).Type
		p.coords.SetAxisDomain(res.Axis, res.YRange.Padded(scale))
	}
	p.viewport.OnData(res.Axis, res.Raster, res.XRange)
}
