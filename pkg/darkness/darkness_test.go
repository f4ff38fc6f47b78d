package darkness

import (
	"testing"
	"time"

	"github.com/tcvlabs/moonclock/pkg/ephem"
	"github.com/tcvlabs/moonclock/pkg/lunar"
)

func loadTable(t *testing.T) *lunar.TermTable {
	t.Helper()
	tbl, err := lunar.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	return tbl
}

func TestComputeWindowMidLatitude(t *testing.T) {
	tbl := loadTable(t)
	loc := ephem.Location{LatitudeDeg: 43.4516, LongitudeDeg: -80.4925}

	w, err := ComputeWindow(time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC), loc, tbl)
	if err != nil {
		t.Fatalf("ComputeWindow() error = %v", err)
	}

	if w.State != Normal {
		t.Fatalf("State = %v, expected Normal", w.State)
	}
	if !w.Dawn.After(w.Dusk) {
		t.Fatalf("Dawn %v not after Dusk %v", w.Dawn, w.Dusk)
	}
	// Late March at this latitude gives roughly eight hours of
	// astronomical darkness.
	if w.Dark < 7*time.Hour || w.Dark > 9*time.Hour+30*time.Minute {
		t.Errorf("Dark = %v, expected near 8h", w.Dark)
	}
	// Dusk falls in the late local evening, which is early UT the next day.
	if d := w.Dusk.Sub(time.Date(2025, 3, 27, 1, 19, 0, 0, time.UTC)); d < -30*time.Minute || d > 30*time.Minute {
		t.Errorf("Dusk = %v, expected near 2025-03-27T01:19Z", w.Dusk)
	}
	if w.Moonless != w.Dark-w.MoonUp {
		t.Errorf("Moonless = %v, expected Dark - MoonUp = %v", w.Moonless, w.Dark-w.MoonUp)
	}
}

func TestComputeWindowMoonOverlap(t *testing.T) {
	tbl := loadTable(t)

	// Full-moon night in mid-January 2025: the Moon rides high nearly all
	// night, so most of the dark span is washed out.
	loc := ephem.Location{LatitudeDeg: 40, LongitudeDeg: -75}
	w, err := ComputeWindow(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), loc, tbl)
	if err != nil {
		t.Fatalf("ComputeWindow() error = %v", err)
	}

	if w.State != Normal {
		t.Fatalf("State = %v, expected Normal", w.State)
	}
	if w.MoonUp < 8*time.Hour {
		t.Errorf("MoonUp = %v, expected most of the night", w.MoonUp)
	}
	if w.Moonless > 2*time.Hour {
		t.Errorf("Moonless = %v, expected under 2h on a full-moon night", w.Moonless)
	}
}

func TestComputeWindowTerminalStates(t *testing.T) {
	tbl := loadTable(t)

	t.Run("arctic midsummer", func(t *testing.T) {
		loc := ephem.Location{LatitudeDeg: 70}
		w, err := ComputeWindow(time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC), loc, tbl)
		if err != nil {
			t.Fatalf("ComputeWindow() error = %v", err)
		}
		if w.State != PerpetualTwilight {
			t.Fatalf("State = %v, expected PerpetualTwilight", w.State)
		}
		if w.Dark != 0 || w.MoonUp != 0 || w.Moonless != 0 {
			t.Errorf("durations = %v/%v/%v, expected all zero", w.Dark, w.MoonUp, w.Moonless)
		}
		if !w.Dusk.IsZero() || !w.Dawn.IsZero() {
			t.Errorf("Dusk/Dawn = %v/%v, expected zero values", w.Dusk, w.Dawn)
		}
	})

	t.Run("polar midwinter", func(t *testing.T) {
		loc := ephem.Location{LatitudeDeg: 85}
		w, err := ComputeWindow(time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC), loc, tbl)
		if err != nil {
			t.Fatalf("ComputeWindow() error = %v", err)
		}
		if w.State != PerpetualNight {
			t.Fatalf("State = %v, expected PerpetualNight", w.State)
		}
		if w.Dark != 24*time.Hour {
			t.Errorf("Dark = %v, expected the full 24h span", w.Dark)
		}
		if w.Moonless < 0 || w.Moonless > w.Dark {
			t.Errorf("Moonless = %v outside [0, Dark]", w.Moonless)
		}
	})
}

func TestComputeWindowInvariants(t *testing.T) {
	tbl := loadTable(t)

	locations := []ephem.Location{
		{LatitudeDeg: 0},
		{LatitudeDeg: 30, LongitudeDeg: 120},
		{LatitudeDeg: -33.9, LongitudeDeg: 18.4},
		{LatitudeDeg: 55, LongitudeDeg: 10},
		{LatitudeDeg: -45, LongitudeDeg: -70},
	}
	dates := []time.Time{
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
	}

	for _, loc := range locations {
		for _, date := range dates {
			w, err := ComputeWindow(date, loc, tbl)
			if err != nil {
				t.Fatalf("ComputeWindow(%v, lat %.1f) error = %v", date, loc.LatitudeDeg, err)
			}
			if w.Moonless < 0 {
				t.Errorf("%v lat %.1f: negative Moonless %v", date, loc.LatitudeDeg, w.Moonless)
			}
			if w.MoonUp < 0 || w.MoonUp > w.Dark {
				t.Errorf("%v lat %.1f: MoonUp %v outside [0, Dark=%v]",
					date, loc.LatitudeDeg, w.MoonUp, w.Dark)
			}
			if w.Moonless+w.MoonUp != w.Dark {
				t.Errorf("%v lat %.1f: Moonless %v + MoonUp %v != Dark %v",
					date, loc.LatitudeDeg, w.Moonless, w.MoonUp, w.Dark)
			}
			if w.State == Normal && w.Dark > 20*time.Hour {
				t.Errorf("%v lat %.1f: implausible Dark %v for a normal night",
					date, loc.LatitudeDeg, w.Dark)
			}
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{Normal, "normal"},
		{PerpetualTwilight, "perpetual twilight"},
		{PerpetualNight, "perpetual night"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, expected %q", tt.state, got, tt.expected)
		}
	}
}
