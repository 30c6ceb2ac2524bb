package plotview

import "image"

// Mask is the presence/absence channel of a provider raster. Values range
// from 0 (no samples in this pixel) to 255 (fully covered). The provider
// draws lines in a single color; only the alpha channel carries information,
// so a decoded raw image reduces to a Mask.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a new empty mask with the given dimensions.
// All values are initialized to 0 (fully transparent).
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// MaskFromAlpha creates a mask from an image's alpha channel.
func MaskFromAlpha(img image.Image) *Mask {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mask := NewMask(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// a is 0-65535, shift by 8 to get 0-255
			mask.data[y*w+x] = uint8(a >> 8)
		}
	}

	return mask
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Spread returns a new mask where every value is the maximum of all values
// within radius px of it (Chebyshev distance). This is how a 1px provider
// line is thickened client-side without a re-fetch. Spread(0) returns a
// plain copy.
func (m *Mask) Spread(px int) *Mask {
	out := NewMask(m.width, m.height)
	if px <= 0 {
		copy(out.data, m.data)
		return out
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			v := m.data[y*m.width+x]
			if v == 0 {
				continue
			}
			for dy := -px; dy <= px; dy++ {
				for dx := -px; dx <= px; dx++ {
					if out.At(x+dx, y+dy) < v {
						out.Set(x+dx, y+dy, v)
					}
				}
			}
		}
	}
	return out
}

// Tint produces a raster of the given color with the mask as its alpha
// channel. The color's own alpha scales the mask.
func (m *Mask) Tint(c RGBA) *Raster {
	r := NewRaster(m.width, m.height)
	cr := uint8(clamp255(c.R * 255))
	cg := uint8(clamp255(c.G * 255))
	cb := uint8(clamp255(c.B * 255))
	for i, a := range m.data {
		if a == 0 {
			continue
		}
		pi := i * 4
		r.pix[pi+0] = cr
		r.pix[pi+1] = cg
		r.pix[pi+2] = cb
		r.pix[pi+3] = uint8(clamp255(float64(a) * c.A))
	}
	return r
}
