// Command plotdemo demonstrates the plotview incremental rendering core.
//
// It feeds the plot synthetic pre-rasterized attribute images (the kind an
// archive image provider would return), lets the compositor layer them, and
// writes the composited frame to a PNG. A second frame is written after a
// zoom gesture to show the affine re-render of the cached rasters.
package main

import (
	"bytes"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/tsarchive/plotview"
)

func main() {
	var (
		width   = flag.Int("width", 800, "plot width in pixels")
		height  = flag.Int("height", 400, "plot height in pixels")
		output  = flag.String("output", "plot.png", "output file")
		zoomed  = flag.String("zoomed", "plot_zoomed.png", "output file for the zoomed frame")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		plotview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	end := time.Now()
	window := plotview.TimeRange{Start: end.Add(-time.Hour), End: end}

	canvas := plotview.NewImageCanvas(*width, *height)
	p := plotview.New(canvas, window)
	defer p.Close()

	p.Scheduler().Post(func() {
		p.SetConfig([]plotview.AttributeConfig{
			{Name: "demo/pressure", Axis: plotview.AxisLeft, Width: 2},
			{Name: "demo/temperature", Axis: plotview.AxisLeft, Width: 1},
			{Name: "demo/current", Axis: plotview.AxisRight, Width: 1},
		})
		p.SetData(syntheticUpdate(*width, *height, window))
	})

	// Decode and compositing run asynchronously on the plot's loop; give
	// them a moment before reading frames back.
	time.Sleep(300 * time.Millisecond)

	saveFrame(p, canvas, *output)

	p.Scheduler().Post(func() {
		p.Zoom(0.5, float64(*width)/2)
	})
	time.Sleep(100 * time.Millisecond)

	saveFrame(p, canvas, *zoomed)

	p.Scheduler().Post(func() {
		if hv, ok := p.Hover(float64(*width)/2, float64(*height)/2); ok {
			log.Printf("hover at center: %s count=%d [%g, %g]",
				hv.Attribute, hv.Count, hv.Min, hv.Max)
		}
	})
	time.Sleep(100 * time.Millisecond)
}

func saveFrame(p *plotview.Plot, canvas *plotview.ImageCanvas, path string) {
	done := make(chan *image.NRGBA, 1)
	p.Scheduler().Post(func() { done <- canvas.Render() })
	frame := <-done

	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d)", path, frame.Rect.Dx(), frame.Rect.Dy())
}

// syntheticUpdate fakes a provider response: one alpha-mask PNG per
// attribute, rasterized the way a server-side renderer would.
func syntheticUpdate(w, h int, window plotview.TimeRange) *plotview.DataUpdate {
	left := &plotview.AxisData{
		Images: map[string]*plotview.RawImage{
			"demo/pressure":    curveImage(w, h, window, func(t float64) float64 { return math.Sin(t*4*math.Pi)*0.4 + 0.5 }),
			"demo/temperature": curveImage(w, h, window, func(t float64) float64 { return 0.3 + 0.2*t }),
		},
		XRange: window,
		YRange: plotview.ValueRange{Min: 0, Max: 1},
	}
	right := &plotview.AxisData{
		Images: map[string]*plotview.RawImage{
			"demo/current": curveImage(w, h, window, func(t float64) float64 { return math.Abs(math.Sin(t * 7 * math.Pi)) }),
		},
		XRange: window,
		YRange: plotview.ValueRange{Min: 0, Max: 12},
	}
	return &plotview.DataUpdate{
		Issued: time.Now(),
		Axes: map[plotview.Axis]*plotview.AxisData{
			plotview.AxisLeft:  left,
			plotview.AxisRight: right,
		},
	}
}

// curveImage rasterizes f over [0,1]x[0,1] into a w-by-h alpha mask PNG.
func curveImage(w, h int, window plotview.TimeRange, f func(t float64) float64) *plotview.RawImage {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		t := float64(x) / float64(w-1)
		v := f(t)
		y := int((1 - v) * float64(h-1))
		if y >= 0 && y < h {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatalf("Failed to encode synthetic raster: %v", err)
	}
	return &plotview.RawImage{
		PNG:    buf.Bytes(),
		XRange: window,
		YRange: plotview.ValueRange{Min: 0, Max: 1},
	}
}
