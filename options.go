package plotview

import "time"

// Option configures a Plot during creation.
//
// Example:
//
//	p := plotview.New(canvas, initial,
//	    plotview.WithSettleDelay(200*time.Millisecond),
//	)
type Option func(*plotOptions)

type plotOptions struct {
	sched       Scheduler
	settleDelay time.Duration
	debounce    time.Duration
	palette     Palette
}

func defaultPlotOptions() plotOptions {
	return plotOptions{
		settleDelay: 150 * time.Millisecond,
		debounce:    100 * time.Millisecond,
		palette:     DefaultPalette,
	}
}

// WithScheduler runs the plot on an existing scheduler instead of a
// freshly started RunLoop. Use this to share one loop between several plots
// or to drive tests deterministically.
func WithScheduler(s Scheduler) Option {
	return func(o *plotOptions) { o.sched = s }
}

// WithSettleDelay sets how long a freshly installed raster rests in its
// hidden buffer slot before being swapped visible, when the canvas cannot
// confirm image loads itself. The default of 150ms is empirical: long
// enough to exceed typical decode latency. Substrates implementing
// LoadConfirmer ignore this entirely.
func WithSettleDelay(d time.Duration) Option {
	return func(o *plotOptions) { o.settleDelay = d }
}

// WithDebounceInterval sets the quiet period a pan/zoom gesture must hold
// before the viewport counts as settled and the change callback fires.
// Default 100ms.
func WithDebounceInterval(d time.Duration) Option {
	return func(o *plotOptions) { o.debounce = d }
}

// WithPalette replaces the fallback color palette used for attributes whose
// config leaves the color unset.
func WithPalette(p Palette) Option {
	return func(o *plotOptions) { o.palette = p }
}
