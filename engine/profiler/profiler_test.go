package profiler

import (
	"testing"
	"time"
)

func TestTickMeasuresFPS(t *testing.T) {
	p := NewProfiler(false)
	p.SetInterval(time.Millisecond)

	if p.FPS() != 0 {
		t.Errorf("FPS() before first interval = %v, want 0", p.FPS())
	}

	time.Sleep(2 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("Tick() = false after interval elapsed")
	}
	if p.FPS() <= 0 {
		t.Errorf("FPS() = %v, want > 0", p.FPS())
	}
}

func TestTickBeforeInterval(t *testing.T) {
	p := NewProfiler(false)
	p.SetInterval(time.Hour)

	for i := 0; i < 10; i++ {
		if p.Tick() {
			t.Fatalf("Tick() #%d = true before interval elapsed", i)
		}
	}
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(true)
	p.SetInterval(0)
	p.SetInterval(-time.Second)
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}
