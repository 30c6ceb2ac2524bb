// Package plotview implements the client-side rendering core of a
// time-series archive viewer.
//
// # Overview
//
// Large historical datasets (potentially millions of samples) are never
// shipped to the client. Instead, an external image provider downsamples
// each attribute server-side into a monochrome raster plus a per-pixel-column
// statistical descriptor. plotview owns everything that happens after that:
// it maintains a pannable/zoomable time axis with two independent value axes,
// tints and composites the per-attribute rasters locally when only
// presentation (color, width, visibility) changes, double-buffers image
// swaps so a new frame never flickers in half-decoded, and decides when a
// viewport change actually warrants asking the host for a fresh fetch.
//
// # Quick start
//
//	canvas := plotview.NewImageCanvas(800, 400)
//	p := plotview.New(canvas, plotview.TimeRange{Start: t0, End: t1})
//	p.OnChange(func(v plotview.Viewport) {
//	    // issue a provider fetch for v, then call p.SetData with the result
//	})
//	p.SetConfig([]plotview.AttributeConfig{
//	    {Name: "sensor/a/temp", Axis: plotview.AxisLeft, Color: plotview.Hex("#e41a1c"), Width: 1},
//	})
//
// # Architecture
//
// The package is a pure state-computation layer. Rendering is delegated to a
// Canvas implementation supplied by the host (an image-backed reference
// implementation, ImageCanvas, is included). The pieces:
//
//   - CoordinateSystem: time and dual Y-axis scales, data <-> pixel mapping
//   - AttributeRasterCache: raw raster decode plus pure recolor/thicken
//   - AxisCompositor: all-or-nothing per-axis composition
//   - ViewportController: double buffering, gesture transforms, debounce
//   - HoverInspector: nearest-sample lookup for tooltips
//   - Plot: the orchestrator wiring the above together
//
// All state lives on a single event loop (see Scheduler); no method of Plot
// is safe for concurrent use from multiple goroutines unless marshalled
// through the loop.
package plotview
