package lunar

import (
	"math"
	"testing"

	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/ephem"
)

// Reference case from Meeus example 47.a: the Moon on 1992 April 12 at
// 0h TD (JDE 2448724.5).
func TestPositionMeeus(t *testing.T) {
	tbl, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}

	inst := astrotime.Instant{TD: (2448724.5 - astrotime.J2000) / 36525.0}
	pos := Position(inst, tbl)

	if math.Abs(pos.EclipticLonDeg-133.167265) > 5e-4 {
		t.Errorf("apparent longitude = %.6f, expected 133.167265", pos.EclipticLonDeg)
	}
	if math.Abs(pos.EclipticLatDeg-(-3.229126)) > 1e-4 {
		t.Errorf("ecliptic latitude = %.6f, expected -3.229126", pos.EclipticLatDeg)
	}
	if math.Abs(pos.DistanceKM-368409.7) > 0.5 {
		t.Errorf("distance = %.1f km, expected 368409.7", pos.DistanceKM)
	}
	if math.Abs(pos.RADeg-134.688470) > 1e-3 {
		t.Errorf("RA = %.6f, expected 134.688470", pos.RADeg)
	}
	if math.Abs(pos.DecDeg-13.768368) > 1e-3 {
		t.Errorf("Dec = %.6f, expected 13.768368", pos.DecDeg)
	}
	if math.Abs(pos.ParallaxDeg-0.991990) > 1e-4 {
		t.Errorf("parallax = %.6f, expected 0.991990", pos.ParallaxDeg)
	}
}

// With every table amplitude zeroed the longitude collapses to the mean
// longitude plus nutation, apart from the small additive planetary terms,
// and the distance is exactly the mean value.
func TestPositionZeroAmplitudeTable(t *testing.T) {
	zero := &TermTable{
		Longitude: []PeriodicTerm{{D: 0, M: 0, MPrime: 1, F: 0, Amplitude: 0}},
		Distance:  []PeriodicTerm{{D: 0, M: 0, MPrime: 1, F: 0, Amplitude: 0}},
		Latitude:  []PeriodicTerm{{D: 0, M: 0, MPrime: 0, F: 1, Amplitude: 0}},
	}

	inst := astrotime.Instant{TD: (2448724.5 - astrotime.J2000) / 36525.0}
	pos := Position(inst, zero)

	T := inst.TD
	meanLon := ephem.NormalizeDeg(218.3164591 + 481267.88134236*T -
		0.0013268*T*T + T*T*T/538841.0 - T*T*T*T/65194000.0)
	nut := ephem.NutationAndObliquity(T)
	expected := ephem.NormalizeDeg(meanLon + nut.LongitudeDeg)

	// The additive terms contribute at most a few thousandths of a degree.
	if diff := ephem.WrapDeg180(pos.EclipticLonDeg - expected); math.Abs(diff) > 0.01 {
		t.Errorf("longitude = %.6f, expected within 0.01 of %.6f", pos.EclipticLonDeg, expected)
	}
	if math.Abs(pos.EclipticLatDeg) > 0.005 {
		t.Errorf("latitude = %.6f, expected near 0", pos.EclipticLatDeg)
	}
	if pos.DistanceKM != meanDistanceKM {
		t.Errorf("distance = %v, expected exactly %v", pos.DistanceKM, meanDistanceKM)
	}
}

func TestPositionStaysInRange(t *testing.T) {
	tbl, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}

	// A coarse sweep over a saros-length span.
	for jde := 2451545.0; jde < 2458123.0; jde += 197.0 {
		inst := astrotime.Instant{TD: (jde - astrotime.J2000) / 36525.0}
		pos := Position(inst, tbl)

		if pos.EclipticLonDeg < 0 || pos.EclipticLonDeg >= 360 {
			t.Fatalf("JDE %.1f: longitude %.4f outside [0, 360)", jde, pos.EclipticLonDeg)
		}
		if math.Abs(pos.EclipticLatDeg) > 5.5 {
			t.Fatalf("JDE %.1f: latitude %.4f outside the lunar band", jde, pos.EclipticLatDeg)
		}
		if pos.DistanceKM < 356000 || pos.DistanceKM > 407000 {
			t.Fatalf("JDE %.1f: distance %.0f km outside perigee-apogee bounds", jde, pos.DistanceKM)
		}
		if pos.ParallaxDeg < 0.88 || pos.ParallaxDeg > 1.05 {
			t.Fatalf("JDE %.1f: parallax %.4f implausible", jde, pos.ParallaxDeg)
		}
	}
}
