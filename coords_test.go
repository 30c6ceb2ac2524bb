package plotview

import (
	"math"
	"testing"
	"time"
)

func testRange(dur time.Duration) TimeRange {
	start := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	return TimeRange{Start: start, End: start.Add(dur)}
}

func TestMapTimeInvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		dur  time.Duration
	}{
		{"one minute", time.Minute},
		{"one hour", time.Hour},
		{"one day", 24 * time.Hour},
		{"one year", 365 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewCoordinateSystem(800, 400, testRange(tt.dur))
			for x := 0.0; x <= 800; x += 50 {
				got := cs.MapTime(cs.InvertTime(x))
				if math.Abs(got-x) > 0.01 {
					t.Errorf("MapTime(InvertTime(%v)) = %v, want within 0.01", x, got)
				}
			}
		})
	}
}

func TestMapValueLinear(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.SetAxisDomain(AxisLeft, ValueRange{Min: 0, Max: 100})

	tests := []struct {
		v    float64
		want float64
	}{
		{0, 400},
		{100, 0},
		{50, 200},
		{25, 300},
	}
	for _, tt := range tests {
		if got := cs.MapValue(AxisLeft, tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("MapValue(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	for _, tt := range tests {
		if got := cs.InvertValue(AxisLeft, tt.want); math.Abs(got-tt.v) > 1e-9 {
			t.Errorf("InvertValue(%v) = %v, want %v", tt.want, got, tt.v)
		}
	}
}

func TestMapValueLog(t *testing.T) {
	cs := NewCoordinateSystem(800, 300, testRange(time.Hour))
	cs.SetAxisScaleType(AxisRight, ScaleLog)
	cs.SetAxisDomain(AxisRight, ValueRange{Min: 1, Max: 1000})

	tests := []struct {
		v    float64
		want float64
	}{
		{1, 300},
		{1000, 0},
		{10, 200},
		{100, 100},
	}
	for _, tt := range tests {
		if got := cs.MapValue(AxisRight, tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("MapValue(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	// the left axis stays linear and unaffected
	if got := cs.AxisScale(AxisLeft).Type; got != ScaleLinear {
		t.Errorf("left axis type = %v, want linear", got)
	}
}

func TestLogDomainClampsNonPositive(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.SetAxisScaleType(AxisLeft, ScaleLog)
	cs.SetAxisDomain(AxisLeft, ValueRange{Min: -5, Max: 10})

	dom := cs.AxisScale(AxisLeft).Domain
	if dom.Min <= 0 {
		t.Fatalf("log domain min = %v, want > 0", dom.Min)
	}
	if dom.Min != math.SmallestNonzeroFloat64 {
		t.Errorf("log domain min = %v, want smallest positive", dom.Min)
	}
	if dom.Max != 10 {
		t.Errorf("log domain max = %v, want 10", dom.Max)
	}
	// mapping must not produce NaN or Inf
	for _, v := range []float64{-1, 0, 5, 10} {
		if got := cs.MapValue(AxisLeft, v); math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("MapValue(%v) = %v after clamp", v, got)
		}
	}
}

func TestScaleTypeSwitchResetsDomain(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.SetAxisDomain(AxisLeft, ValueRange{Min: -50, Max: 50})

	cs.SetAxisScaleType(AxisLeft, ScaleLog)
	if dom := cs.AxisScale(AxisLeft).Domain; dom.Min <= 0 {
		t.Errorf("domain after switch to log = %+v, want positive", dom)
	}
	// switching to the same type keeps the domain
	cs.SetAxisDomain(AxisLeft, ValueRange{Min: 2, Max: 20})
	cs.SetAxisScaleType(AxisLeft, ScaleLog)
	if dom := cs.AxisScale(AxisLeft).Domain; dom != (ValueRange{Min: 2, Max: 20}) {
		t.Errorf("domain changed on no-op switch: %+v", dom)
	}
}

func TestSetTimeRangeResetsTransform(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.ApplyZoom(0.5, 400)
	cs.ApplyPan(120)
	if cs.Transform().IsIdentity() {
		t.Fatal("transform still identity after gesture")
	}

	cs.SetTimeRange(testRange(2 * time.Hour))
	if !cs.Transform().IsIdentity() {
		t.Errorf("transform = %+v after SetTimeRange, want identity", cs.Transform())
	}
	if cs.VisibleRange() != cs.BaseRange() {
		t.Errorf("visible range %v != base range %v", cs.VisibleRange(), cs.BaseRange())
	}
}

func TestApplyZoomKeepsPivotStationary(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	pivot := 600.0
	before := cs.InvertTime(pivot)
	cs.ApplyZoom(0.25, pivot)
	after := cs.InvertTime(pivot)
	if d := after.Sub(before); d > time.Second || d < -time.Second {
		t.Errorf("time under pivot moved by %v during zoom", d)
	}
	// window shrank to a quarter
	if got, want := cs.VisibleRange().Duration(), 15*time.Minute; got != want {
		t.Errorf("visible duration = %v, want %v", got, want)
	}
}

func TestApplyZoomAccumulates(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.ApplyZoom(0.5, 0)
	cs.ApplyZoom(0.5, 0)
	if got, want := cs.VisibleRange().Duration(), 15*time.Minute; got != want {
		t.Errorf("visible duration = %v, want %v", got, want)
	}
}

func TestApplyPan(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.ApplyPan(400) // half the width = half the window
	vis := cs.VisibleRange()
	wantStart := cs.BaseRange().Start.Add(30 * time.Minute)
	if !vis.Start.Equal(wantStart) {
		t.Errorf("visible start = %v, want %v", vis.Start, wantStart)
	}
	if vis.Duration() != time.Hour {
		t.Errorf("pan changed duration to %v", vis.Duration())
	}
}

func TestValueRangePadded(t *testing.T) {
	tests := []struct {
		name  string
		in    ValueRange
		scale ScaleType
		want  ValueRange
	}{
		{"constant positive", ValueRange{Min: 8, Max: 8}, ScaleLinear, ValueRange{Min: 4, Max: 12}},
		{"constant zero", ValueRange{Min: 0, Max: 0}, ScaleLinear, ValueRange{Min: -0.5, Max: 0.5}},
		{"constant negative", ValueRange{Min: -8, Max: -8}, ScaleLinear, ValueRange{Min: -12, Max: -4}},
		{"linear pad", ValueRange{Min: 0, Max: 100}, ScaleLinear, ValueRange{Min: -5, Max: 105}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Padded(tt.scale)
			if math.Abs(got.Min-tt.want.Min) > 1e-9 || math.Abs(got.Max-tt.want.Max) > 1e-9 {
				t.Errorf("Padded(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	t.Run("log pad", func(t *testing.T) {
		got := ValueRange{Min: 1, Max: 1000}.Padded(ScaleLog)
		// 5% of three decades = 0.15 decades each way
		if math.Abs(got.Min-math.Pow(10, -0.15)) > 1e-9 {
			t.Errorf("log padded min = %v", got.Min)
		}
		if math.Abs(got.Max-math.Pow(10, 3.15)) > 1e-6 {
			t.Errorf("log padded max = %v", got.Max)
		}
	})

	t.Run("log pad clamps nonpositive", func(t *testing.T) {
		got := ValueRange{Min: -2, Max: 100}.Padded(ScaleLog)
		if got.Min <= 0 || math.IsNaN(got.Min) {
			t.Errorf("log padded min = %v, want positive", got.Min)
		}
	})
}

func TestParseScaleType(t *testing.T) {
	tests := []struct {
		in      string
		want    ScaleType
		wantErr bool
	}{
		{"linear", ScaleLinear, false},
		{"log", ScaleLog, false},
		{"", ScaleLinear, false},
		{"banana", ScaleLinear, true},
	}
	for _, tt := range tests {
		got, err := ParseScaleType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScaleType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseScaleType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
