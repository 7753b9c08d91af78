package game

import (
	"math"
	"testing"
)

func TestDateFromTickEpoch(t *testing.T) {
	d := DateFromTick(0)
	if d.Year != 2024 || d.Month != 6 || d.Day != 1 || d.Hour != 0 || d.Minute != 0 {
		t.Fatalf("unexpected epoch date: %+v", d)
	}
}

func TestDateFromTickDecomposition(t *testing.T) {
	// One day, two hours and five minutes past the epoch.
	d := DateFromTick(TicksPerDay + 2*60 + 5)
	if d.Month != 6 || d.Day != 2 || d.Hour != 2 || d.Minute != 5 {
		t.Fatalf("unexpected date: %+v", d)
	}

	// Half a year later the calendar wraps into the next year.
	d = DateFromTick(6 * TicksPerMonth)
	if d.Year != 2025 || d.Month != 0 || d.Day != 1 {
		t.Fatalf("expected year rollover, got %+v", d)
	}
}

func TestDateFromTickMonotonic(t *testing.T) {
	prev := DateFromTick(0)
	for tick := 1; tick < 3*TicksPerMonth; tick += 37 {
		d := DateFromTick(tick)
		prevKey := prev.Year*10000 + prev.Month*100 + prev.Day
		key := d.Year*10000 + d.Month*100 + d.Day
		if key < prevKey {
			t.Fatalf("date went backwards at tick %d: %+v -> %+v", tick, prev, d)
		}
		prev = d
	}
}

func TestSeasonalityFactorBoundsAndPeriod(t *testing.T) {
	for m := 0; m < 12; m++ {
		f := SeasonalityFactor(m)
		if f < 0.7-1e-9 || f > 1.3+1e-9 {
			t.Fatalf("month %d: factor %f out of [0.7, 1.3]", m, f)
		}
		if diff := math.Abs(f - SeasonalityFactor(m+12)); diff > 1e-12 {
			t.Fatalf("month %d: factor not periodic, diff %g", m, diff)
		}
	}
}

func TestSeasonalityFactorShape(t *testing.T) {
	if SeasonalityFactor(6) <= SeasonalityFactor(0) {
		t.Fatalf("expected summer peak above winter trough")
	}
	if math.Abs(SeasonalityFactor(6)-1.3) > 1e-9 {
		t.Fatalf("expected peak 1.3 at month 6, got %f", SeasonalityFactor(6))
	}
	if math.Abs(SeasonalityFactor(0)-0.7) > 1e-9 {
		t.Fatalf("expected trough 0.7 at month 0, got %f", SeasonalityFactor(0))
	}
}
