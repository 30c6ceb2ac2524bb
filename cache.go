package plotview

import "image/color"

// ColoredRaster is the cached, tinted rendering of one attribute's raw
// image. It is derived purely from (raw image, color, width); time-range
// changes never invalidate it, since recoloring is independent of axis
// scale.
type ColoredRaster struct {
	Raster *Raster
	XRange TimeRange
	YRange ValueRange
}

// recolorKey identifies one tint of a raw image.
type recolorKey struct {
	color color.NRGBA
	width int
}

type cacheEntry struct {
	raw     *RawImage
	mask    *Mask
	key     recolorKey
	colored *ColoredRaster
	gen     uint64

	// waitFn and waitKey are the most recent waiter on the pending decode.
	// A recolor-only Load that arrives mid-decode parks here instead of
	// failing, and the decode completion delivers to it with its own key.
	waitFn  func(*ColoredRaster, error)
	waitKey recolorKey
}

// AttributeRasterCache owns one decoded raster per attribute and knows how
// to recolor or rethicken its monochrome mask into a colored layer without
// re-fetching. Entries are only ever replaced wholesale, so a reader holding
// a ColoredRaster keeps a consistent value while a newer load is pending.
//
// All methods must be called on the scheduler's loop; decode work runs off
// loop and completions are posted back.
type AttributeRasterCache struct {
	sched   Scheduler
	entries map[string]*cacheEntry
	// decode is swappable for tests.
	decode func([]byte) (*Mask, error)
}

// NewAttributeRasterCache creates an empty cache on the given scheduler.
func NewAttributeRasterCache(s Scheduler) *AttributeRasterCache {
	return &AttributeRasterCache{
		sched:   s,
		entries: make(map[string]*cacheEntry),
		decode:  decodeMask,
	}
}

// Load produces the colored raster for an attribute and delivers it to fn on
// the loop. A nil raw reuses the attribute's current raw image (a
// recolor-only load, e.g. after a config change); otherwise raw replaces the
// previous image and is decoded asynchronously. A recolor-only load that
// arrives while that decode is still in flight waits for it rather than
// failing, and resolves with the new color once the mask is ready.
//
// fn receives a *DecodeError when the payload cannot be decoded, or when a
// recolor-only load finds no raw image cached. A load superseded by a newer
// Load or Invalidate for the same attribute never calls fn.
func (c *AttributeRasterCache) Load(attr string, raw *RawImage, cfg AttributeConfig, fn func(*ColoredRaster, error)) {
	e := c.entries[attr]
	if e == nil {
		e = &cacheEntry{}
		c.entries[attr] = e
	}
	e.gen++
	gen := e.gen

	key := recolorKey{color: cfg.Color.NRGBA(), width: cfg.lineWidth()}

	if raw == nil || raw == e.raw {
		switch {
		case e.raw == nil:
			c.sched.Post(func() {
				fn(nil, &DecodeError{Attribute: attr, Err: errNoRawImage})
			})
		case e.mask == nil:
			// decode still in flight; park as the latest waiter so the
			// completion delivers with this load's color and width
			e.waitFn = fn
			e.waitKey = key
		default:
			c.sched.Post(func() {
				if e.gen != gen || c.entries[attr] != e {
					return
				}
				fn(c.recolor(e, key), nil)
			})
		}
		return
	}

	e.raw = raw
	e.mask = nil
	e.colored = nil
	e.waitFn = fn
	e.waitKey = key

	payload := raw.PNG
	go func() {
		mask, err := c.decode(payload)
		c.sched.Post(func() {
			if c.entries[attr] != e || e.raw != raw {
				// superseded by a newer image while decoding
				return
			}
			deliver, deliverKey := e.waitFn, e.waitKey
			e.waitFn = nil
			if err != nil {
				// forget the raw so recolor-only loads fail fast instead
				// of waiting on a decode that will never finish
				e.raw = nil
				Logger().Warn("raster decode failed", "attribute", attr, "error", err)
				if deliver != nil {
					deliver(nil, &DecodeError{Attribute: attr, Err: err})
				}
				return
			}
			e.mask = mask
			if deliver != nil {
				deliver(c.recolor(e, deliverKey), nil)
			}
		})
	}()
}

// recolor returns the tinted raster for the entry, reusing the cached one
// when the key matches. Recoloring is pure: the same (mask, color, width)
// always yields pixel-identical output.
func (c *AttributeRasterCache) recolor(e *cacheEntry, key recolorKey) *ColoredRaster {
	if e.colored != nil && e.key == key {
		return e.colored
	}
	mask := e.mask
	if key.width > 1 {
		mask = mask.Spread(key.width - 1)
	}
	tinted := mask.Tint(FromColor(key.color))
	e.key = key
	e.colored = &ColoredRaster{
		Raster: tinted,
		XRange: e.raw.XRange,
		YRange: e.raw.YRange,
	}
	return e.colored
}

// Get returns the attribute's current colored raster, if one is ready.
func (c *AttributeRasterCache) Get(attr string) (*ColoredRaster, bool) {
	e := c.entries[attr]
	if e == nil || e.colored == nil {
		return nil, false
	}
	return e.colored, true
}

// Has reports whether a raw image is cached for the attribute, i.e. whether
// a recolor-only Load can deliver, immediately or once the pending decode
// completes.
func (c *AttributeRasterCache) Has(attr string) bool {
	e := c.entries[attr]
	return e != nil && e.raw != nil
}

// Invalidate drops the attribute's entry entirely. Any load in flight for it
// is superseded.
func (c *AttributeRasterCache) Invalidate(attr string) {
	delete(c.entries, attr)
}
