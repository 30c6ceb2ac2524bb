package plotview

import (
	"image"
	"image/color"
)

// Raster is a rectangular pixel buffer holding one rendered layer: either a
// single attribute's tinted line mask or a whole axis composite. Pixels are
// non-premultiplied RGBA, 4 bytes per pixel.
type Raster struct {
	width  int
	height int
	pix    []uint8
}

// NewRaster creates a new fully transparent raster with the given dimensions.
func NewRaster(width, height int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the width of the raster.
func (r *Raster) Width() int { return r.width }

// Height returns the height of the raster.
func (r *Raster) Height() int { return r.height }

// Bounds returns the raster dimensions as an image.Rectangle.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// SetPixel sets the color of a single pixel.
// Coordinates outside the raster bounds are ignored.
func (r *Raster) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	i := (y*r.width + x) * 4
	r.pix[i+0] = uint8(clamp255(c.R * 255))
	r.pix[i+1] = uint8(clamp255(c.G * 255))
	r.pix[i+2] = uint8(clamp255(c.B * 255))
	r.pix[i+3] = uint8(clamp255(c.A * 255))
}

// PixelAt returns the color of a single pixel.
// Returns Transparent for coordinates outside the raster bounds.
func (r *Raster) PixelAt(x, y int) RGBA {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Transparent
	}
	i := (y*r.width + x) * 4
	return RGBA{
		R: float64(r.pix[i+0]) / 255,
		G: float64(r.pix[i+1]) / 255,
		B: float64(r.pix[i+2]) / 255,
		A: float64(r.pix[i+3]) / 255,
	}
}

// Clone creates a copy of the raster.
func (r *Raster) Clone() *Raster {
	clone := NewRaster(r.width, r.height)
	copy(clone.pix, r.pix)
	return clone
}

// NRGBA returns the raster as a standard library image sharing the same
// backing pixels. Mutating one mutates the other.
func (r *Raster) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.pix,
		Stride: r.width * 4,
		Rect:   r.Bounds(),
	}
}

// RasterFromImage copies an image into a new raster. The image's bounds
// origin is translated to (0, 0).
func RasterFromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	r := NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			i := (y*w + x) * 4
			r.pix[i+0] = c.R
			r.pix[i+1] = c.G
			r.pix[i+2] = c.B
			r.pix[i+3] = c.A
		}
	}
	return r
}

// DrawOver composites src over r using standard alpha compositing. The two
// rasters must have the same dimensions; mismatched source pixels outside
// r's bounds are ignored.
func (r *Raster) DrawOver(src *Raster) {
	w, h := src.width, src.height
	if w > r.width {
		w = r.width
	}
	if h > r.height {
		h = r.height
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := (y*src.width + x) * 4
			sa := src.pix[si+3]
			if sa == 0 {
				continue
			}
			di := (y*r.width + x) * 4
			if sa == 255 {
				copy(r.pix[di:di+4], src.pix[si:si+4])
				continue
			}
			out := sourceOver(src.pixelRGBA(si), r.pixelRGBA(di))
			r.pix[di+0] = uint8(clamp255(out.R * 255))
			r.pix[di+1] = uint8(clamp255(out.G * 255))
			r.pix[di+2] = uint8(clamp255(out.B * 255))
			r.pix[di+3] = uint8(clamp255(out.A * 255))
		}
	}
}

func (r *Raster) pixelRGBA(i int) RGBA {
	return RGBA{
		R: float64(r.pix[i+0]) / 255,
		G: float64(r.pix[i+1]) / 255,
		B: float64(r.pix[i+2]) / 255,
		A: float64(r.pix[i+3]) / 255,
	}
}

// sourceOver blends source over destination using alpha compositing.
func sourceOver(src, dst RGBA) RGBA {
	srcA := src.A
	dstA := dst.A
	invSrcA := 1.0 - srcA

	outA := srcA + dstA*invSrcA
	if outA == 0 {
		return RGBA{}
	}

	outR := (src.R*srcA + dst.R*dstA*invSrcA) / outA
	outG := (src.G*srcA + dst.G*dstA*invSrcA) / outA
	outB := (src.B*srcA + dst.B*dstA*invSrcA) / outA

	return RGBA{R: outR, G: outG, B: outB, A: outA}
}
