package riseset

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/ephem"
	"github.com/tcvlabs/moonclock/pkg/solar"
)

func assertWithin(t *testing.T, name string, got, expected time.Time, tolerance time.Duration) {
	t.Helper()
	diff := got.Sub(expected)
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		t.Errorf("%s = %v, expected within %v of %v", name, got, tolerance, expected)
	}
}

func TestFindCrossingEquinoxSun(t *testing.T) {
	// Mid-latitude site near Philadelphia on the 2024 March equinox: the
	// day should run close to twelve hours.
	loc := ephem.Location{LatitudeDeg: 40, LongitudeDeg: -75}

	rise, err := FindCrossing(solar.Position,
		time.Date(2024, 3, 20, 5, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 17, 0, 0, 0, time.UTC),
		loc, SolarHorizonDeg, Rising)
	if err != nil {
		t.Fatalf("sunrise FindCrossing() error = %v", err)
	}
	if rise.Classification != Crossed {
		t.Fatalf("sunrise classification = %v, expected Crossed", rise.Classification)
	}
	if !rise.Converged || rise.Iterations > maxIterations {
		t.Errorf("sunrise converged = %v after %d iterations", rise.Converged, rise.Iterations)
	}

	set, err := FindCrossing(solar.Position,
		time.Date(2024, 3, 20, 17, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 21, 5, 0, 0, 0, time.UTC),
		loc, SolarHorizonDeg, Setting)
	if err != nil {
		t.Fatalf("sunset FindCrossing() error = %v", err)
	}
	if set.Classification != Crossed {
		t.Fatalf("sunset classification = %v, expected Crossed", set.Classification)
	}

	// Expected about 11:03 and 23:13 UT.
	assertWithin(t, "sunrise", rise.Time, time.Date(2024, 3, 20, 11, 2, 0, 0, time.UTC), 10*time.Minute)
	assertWithin(t, "sunset", set.Time, time.Date(2024, 3, 20, 23, 13, 0, 0, time.UTC), 10*time.Minute)

	day := set.Time.Sub(rise.Time)
	if day < 11*time.Hour+30*time.Minute || day > 12*time.Hour+50*time.Minute {
		t.Errorf("day length = %v, expected near 12h", day)
	}
}

func TestFindCrossingTerminal(t *testing.T) {
	tests := []struct {
		name     string
		loc      ephem.Location
		start    time.Time
		end      time.Time
		target   float64
		dir      Direction
		expected Classification
	}{
		{
			name:     "midsummer arctic twilight never ends",
			loc:      ephem.Location{LatitudeDeg: 70},
			start:    time.Date(2025, 6, 21, 18, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 6, 22, 6, 0, 0, 0, time.UTC),
			target:   AstronomicalTwilightDeg,
			dir:      Setting,
			expected: AlwaysAbove,
		},
		{
			name:     "midwinter polar sun never nears twilight",
			loc:      ephem.Location{LatitudeDeg: 85},
			start:    time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC),
			target:   AstronomicalTwilightDeg,
			dir:      Setting,
			expected: NeverReaches,
		},
		{
			name:     "midsummer arctic sun never rises above -1",
			loc:      ephem.Location{LatitudeDeg: 80},
			start:    time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC),
			target:   SolarHorizonDeg,
			dir:      Rising,
			expected: AlwaysAbove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := FindCrossing(solar.Position, tt.start, tt.end, tt.loc, tt.target, tt.dir)
			if err != nil {
				t.Fatalf("FindCrossing() error = %v", err)
			}
			if ev.Classification != tt.expected {
				t.Errorf("classification = %v, expected %v", ev.Classification, tt.expected)
			}
		})
	}
}

func TestFindCrossingWindowValidation(t *testing.T) {
	loc := ephem.Location{LatitudeDeg: 40, LongitudeDeg: -75}
	valid := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	_, err := FindCrossing(solar.Position, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), valid,
		loc, SolarHorizonDeg, Rising)
	if !errors.Is(err, astrotime.ErrInvalidTime) {
		t.Errorf("pre-1980 window start error = %v, expected ErrInvalidTime", err)
	}

	_, err = FindCrossing(solar.Position, valid, valid, loc, SolarHorizonDeg, Rising)
	if err == nil {
		t.Error("empty window succeeded, expected error")
	}

	_, err = FindCrossing(solar.Position, valid, valid.Add(-time.Hour), loc, SolarHorizonDeg, Rising)
	if err == nil {
		t.Error("inverted window succeeded, expected error")
	}
}

func TestMoonEffectiveHorizonDeg(t *testing.T) {
	pos := ephem.CelestialPosition{ParallaxDeg: 0.95}
	got := MoonEffectiveHorizonDeg(pos)
	expected := 0.7275*0.95 - 34.0/60.0
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("MoonEffectiveHorizonDeg() = %v, expected %v", got, expected)
	}
	// Typical parallax values keep the target slightly above the geometric
	// horizon.
	if got < 0 || got > 0.3 {
		t.Errorf("effective horizon %v outside the plausible band", got)
	}
}

func TestAltitudeAt(t *testing.T) {
	loc := ephem.Location{LatitudeDeg: 40, LongitudeDeg: -75}

	noon, err := astrotime.ToInstant(time.Date(2024, 3, 20, 17, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ToInstant() error = %v", err)
	}
	midnight, err := astrotime.ToInstant(time.Date(2024, 3, 20, 5, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ToInstant() error = %v", err)
	}

	if alt := AltitudeAt(solar.Position, noon, loc); alt < 40 || alt > 55 {
		t.Errorf("noon solar altitude = %.2f, expected mid-day height", alt)
	}
	if alt := AltitudeAt(solar.Position, midnight, loc); alt > -30 {
		t.Errorf("midnight solar altitude = %.2f, expected deep below horizon", alt)
	}
}
