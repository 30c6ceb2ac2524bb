package plotview

import (
	"image"
	"image/color"
	"testing"
)

func maskWithPoints(w, h int, pts ...image.Point) *Mask {
	m := NewMask(w, h)
	for _, p := range pts {
		m.Set(p.X, p.Y, 255)
	}
	return m
}

func TestMaskFromAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(3, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	m := MaskFromAlpha(img)
	if got := m.At(1, 2); got != 255 {
		t.Errorf("At(1,2) = %d, want 255", got)
	}
	if got := m.At(3, 0); got != 128 {
		t.Errorf("At(3,0) = %d, want 128", got)
	}
	if got := m.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %d, want 0", got)
	}
	// out of bounds reads are zero
	if got := m.At(-1, 7); got != 0 {
		t.Errorf("At(-1,7) = %d, want 0", got)
	}
}

func TestMaskSpread(t *testing.T) {
	tests := []struct {
		name string
		px   int
		want int // covered pixels after spreading a single center point
	}{
		{"no spread", 0, 1},
		{"one pixel", 1, 9},
		{"two pixels", 2, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := maskWithPoints(9, 9, image.Pt(4, 4))
			out := m.Spread(tt.px)
			covered := 0
			for y := 0; y < 9; y++ {
				for x := 0; x < 9; x++ {
					if out.At(x, y) > 0 {
						covered++
					}
				}
			}
			if covered != tt.want {
				t.Errorf("Spread(%d) covered %d pixels, want %d", tt.px, covered, tt.want)
			}
		})
	}
}

func TestMaskSpreadClipsAtEdges(t *testing.T) {
	m := maskWithPoints(4, 4, image.Pt(0, 0))
	out := m.Spread(1)
	if got := out.At(1, 1); got != 255 {
		t.Errorf("At(1,1) = %d, want 255", got)
	}
	// nothing wrapped around
	if got := out.At(3, 3); got != 0 {
		t.Errorf("At(3,3) = %d, want 0", got)
	}
}

func TestMaskTint(t *testing.T) {
	m := NewMask(2, 1)
	m.Set(0, 0, 255)
	m.Set(1, 0, 128)

	r := m.Tint(RGB(1, 0, 0))
	if got := r.PixelAt(0, 0).NRGBA(); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("full-coverage pixel = %+v", got)
	}
	got := r.PixelAt(1, 0).NRGBA()
	if got.R != 255 || got.A != 128 {
		t.Errorf("half-coverage pixel = %+v, want red at alpha 128", got)
	}
}

func TestMaskTintColorAlphaScales(t *testing.T) {
	m := NewMask(1, 1)
	m.Set(0, 0, 200)
	r := m.Tint(RGBA{R: 0, G: 0, B: 1, A: 0.5})
	if got := r.PixelAt(0, 0).NRGBA().A; got != 100 {
		t.Errorf("alpha = %d, want 100", got)
	}
}
