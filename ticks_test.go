package plotview

import (
	"testing"
	"time"
)

func TestValueTicksLinear(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.SetAxisDomain(AxisLeft, ValueRange{Min: 0, Max: 100})

	ticks := cs.ValueTicks(AxisLeft)
	if len(ticks) == 0 {
		t.Fatal("no ticks for a plain linear domain")
	}
	var labeled int
	for _, tick := range ticks {
		if tick.Value < 0 || tick.Value > 100 {
			t.Errorf("tick %v outside domain", tick.Value)
		}
		if tick.Pixel < -1e-9 || tick.Pixel > 400+1e-9 {
			t.Errorf("tick pixel %v outside range", tick.Pixel)
		}
		if !tick.Minor {
			if tick.Label == "" {
				t.Errorf("major tick at %v has no label", tick.Value)
			}
			labeled++
		}
	}
	if labeled < 2 {
		t.Errorf("only %d labeled ticks", labeled)
	}
}

func TestValueTicksLog(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.SetAxisScaleType(AxisRight, ScaleLog)
	cs.SetAxisDomain(AxisRight, ValueRange{Min: 1, Max: 1000})

	ticks := cs.ValueTicks(AxisRight)
	if len(ticks) == 0 {
		t.Fatal("no ticks for a log domain")
	}
	for _, tick := range ticks {
		if tick.Value <= 0 {
			t.Errorf("log tick at non-positive value %v", tick.Value)
		}
	}
}

func TestValueTicksLogClampedDomain(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(time.Hour))
	cs.SetAxisScaleType(AxisLeft, ScaleLog)
	cs.SetAxisDomain(AxisLeft, ValueRange{Min: -5, Max: 10})

	// must not panic or emit non-positive ticks
	for _, tick := range cs.ValueTicks(AxisLeft) {
		if tick.Value <= 0 {
			t.Errorf("tick at %v on a clamped log axis", tick.Value)
		}
	}
}

func TestTimeTicks(t *testing.T) {
	cs := NewCoordinateSystem(800, 400, testRange(6*time.Hour))

	ticks := cs.TimeTicks()
	if len(ticks) == 0 {
		t.Fatal("no time ticks over a six-hour window")
	}
	for _, tick := range ticks {
		if tick.Pixel < -1e-6 || tick.Pixel > 800+1e-6 {
			t.Errorf("time tick pixel %v outside plot", tick.Pixel)
		}
	}
}
