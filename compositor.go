package plotview

// rasterLoader is the slice of AttributeRasterCache the compositor needs.
type rasterLoader interface {
	Load(attr string, raw *RawImage, cfg AttributeConfig, fn func(*ColoredRaster, error))
	Has(attr string) bool
}

// attrState tags one attribute's progress within a composite cycle.
type attrState int

const (
	attrPending attrState = iota
	attrReady
	attrFailed
)

// AxisResult is one completed composite for an axis.
type AxisResult struct {
	Axis Axis
	// Raster is the combined axis raster. Nil means the axis is empty and
	// its display should be hidden.
	Raster *Raster
	// XRange and YRange are the data's native ranges, as rendered by the
	// provider.
	XRange TimeRange
	YRange ValueRange
	// Failed lists attributes excluded from this composite because their
	// rasters could not be decoded.
	Failed []string
}

// AxisCompositor owns the set of attributes assigned to one Y axis and
// composites their colored rasters into a single combined raster. It emits
// only when every attribute in the cycle has either succeeded or failed
// decode: a partially updated chart is never shown.
//
// Composite order is deterministic: attributes are painted in declaration
// order, later ones over earlier ones, so the last-declared attribute wins
// at overlaps.
type AxisCompositor struct {
	axis   Axis
	cache  rasterLoader
	onDone func(AxisResult)

	configs []AttributeConfig
	data    *AxisData

	// gen invalidates in-flight cycles: a newer SetData or recomposite
	// supersedes an older one before it emits.
	gen     uint64
	pending map[string]attrState
	ready   map[string]*ColoredRaster
	failed  []string
}

// NewAxisCompositor creates a compositor for one axis. done receives every
// completed composite.
func NewAxisCompositor(axis Axis, cache rasterLoader, done func(AxisResult)) *AxisCompositor {
	return &AxisCompositor{
		axis:   axis,
		cache:  cache,
		onDone: done,
	}
}

// SetAttributeConfigs installs the declaration-ordered configs for this
// axis. It does not recomposite by itself; callers follow up with SetData or
// Recomposite.
func (ac *AxisCompositor) SetAttributeConfigs(configs []AttributeConfig) {
	ac.configs = configs
}

// SetData starts a new composite cycle over a fresh provider payload.
// Attributes configured for the axis but missing from the payload keep their
// previously cached raw image, so presentation changes keep working for
// them.
func (ac *AxisCompositor) SetData(data *AxisData) {
	ac.data = data
	ac.begin(func(cfg AttributeConfig) (*RawImage, bool) {
		if data == nil {
			return nil, false
		}
		raw, ok := data.Images[cfg.Name]
		return raw, ok
	})
}

// Recomposite re-runs the composite from cached raw images only, with no
// provider involvement. Used when color, width, visibility, or the axis
// scale type change.
func (ac *AxisCompositor) Recomposite() {
	ac.begin(func(cfg AttributeConfig) (*RawImage, bool) {
		// nil raw = recolor-only load from the cache
		return nil, ac.cache.Has(cfg.Name)
	})
}

func (ac *AxisCompositor) begin(source func(AttributeConfig) (*RawImage, bool)) {
	ac.gen++
	gen := ac.gen
	ac.pending = make(map[string]attrState)
	ac.ready = make(map[string]*ColoredRaster)
	ac.failed = nil

	type load struct {
		cfg AttributeConfig
		raw *RawImage
	}
	var loads []load
	for _, cfg := range ac.configs {
		if cfg.Hidden {
			continue
		}
		raw, ok := source(cfg)
		if !ok {
			continue
		}
		loads = append(loads, load{cfg: cfg, raw: raw})
	}

	if len(loads) == 0 {
		ac.emitEmpty()
		return
	}

	for _, l := range loads {
		ac.pending[l.cfg.Name] = attrPending
	}
	for _, l := range loads {
		name := l.cfg.Name
		ac.cache.Load(name, l.raw, l.cfg, func(cr *ColoredRaster, err error) {
			if ac.gen != gen {
				return
			}
			if err != nil {
				ac.pending[name] = attrFailed
				ac.failed = append(ac.failed, name)
			} else {
				ac.pending[name] = attrReady
				ac.ready[name] = cr
			}
			ac.maybeEmit()
		})
	}
}

// maybeEmit composites and emits once no attribute remains pending.
func (ac *AxisCompositor) maybeEmit() {
	for _, st := range ac.pending {
		if st == attrPending {
			return
		}
	}
	if len(ac.ready) == 0 {
		ac.emitEmpty()
		return
	}

	var combined *Raster
	var xr TimeRange
	var yr ValueRange
	if ac.data != nil {
		xr = ac.data.XRange
		yr = ac.data.YRange
	}
	// Paint in declaration order so later attributes end up on top.
	for _, cfg := range ac.configs {
		cr, ok := ac.ready[cfg.Name]
		if !ok {
			continue
		}
		if combined == nil {
			combined = NewRaster(cr.Raster.Width(), cr.Raster.Height())
			if ac.data == nil {
				xr = cr.XRange
				yr = cr.YRange
			}
		}
		combined.DrawOver(cr.Raster)
	}

	Logger().Debug("axis composite complete",
		"axis", int(ac.axis), "attributes", len(ac.ready), "failed", len(ac.failed))
	ac.onDone(AxisResult{
		Axis:   ac.axis,
		Raster: combined,
		XRange: xr,
		YRange: yr,
		Failed: ac.failed,
	})
}

// emitEmpty reports an axis with nothing to draw. Emitted immediately when
// the attribute list is empty; the caller hides that axis's raster.
func (ac *AxisCompositor) emitEmpty() {
	var xr TimeRange
	var yr ValueRange
	if ac.data != nil {
		xr = ac.data.XRange
		yr = ac.data.YRange
	}
	ac.onDone(AxisResult{Axis: ac.axis, Raster: nil, XRange: xr, YRange: yr, Failed: ac.failed})
}
