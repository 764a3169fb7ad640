package manager

import (
	"testing"
	"time"
)

func hourlySeries(n int) []HourlyPoint {
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	series := make([]HourlyPoint, 0, n)
	for i := 0; i < n; i++ {
		series = append(series, HourlyPoint{
			Time:        start.Add(time.Duration(i) * time.Hour),
			Temperature: float64(i),
		})
	}
	return series
}

func TestNextHoursFullWindow(t *testing.T) {
	series := hourlySeries(24)

	window := NextHours(series, series[5].Time, 6)

	if len(window) != 6 {
		t.Fatalf("window length %d, want 6", len(window))
	}
	for i, point := range window {
		if want := series[5+i]; point != want {
			t.Fatalf("window[%d] = %+v, want %+v", i, point, want)
		}
	}
}

func TestNextHoursShortTail(t *testing.T) {
	series := hourlySeries(24)

	window := NextHours(series, series[21].Time, 6)

	if len(window) != 3 {
		t.Fatalf("window length %d, want 3", len(window))
	}
	if window[0] != series[21] || window[2] != series[23] {
		t.Fatalf("window holds wrong entries: %+v", window)
	}
}

func TestNextHoursSkipsPastEntries(t *testing.T) {
	series := hourlySeries(24)

	// an observation time between two entries starts at the next full hour
	from := series[5].Time.Add(30 * time.Minute)
	window := NextHours(series, from, 6)

	if len(window) != 6 {
		t.Fatalf("window length %d, want 6", len(window))
	}
	if window[0] != series[6] {
		t.Fatalf("window starts at %+v, want %+v", window[0], series[6])
	}
}

func TestNextHoursEdges(t *testing.T) {
	series := hourlySeries(24)

	if got := NextHours(nil, time.Now(), 6); len(got) != 0 {
		t.Fatalf("empty series produced %d entries", len(got))
	}
	if got := NextHours(series, series[23].Time.Add(time.Hour), 6); len(got) != 0 {
		t.Fatalf("exhausted series produced %d entries", len(got))
	}
	if got := NextHours(series, series[0].Time, 0); len(got) != 0 {
		t.Fatalf("zero window produced %d entries", len(got))
	}
}
