package ephem

import "github.com/soniakeys/unit"

// Nutation holds the nutation corrections and the obliquity of the ecliptic
// for one instant, all in decimal degrees.
type Nutation struct {
	LongitudeDeg     float64 // nutation in longitude, delta-psi
	ObliquityDeg     float64 // nutation in obliquity, delta-epsilon
	TrueObliquityDeg float64 // mean obliquity plus delta-epsilon
}

// NutationAndObliquity computes nutation in longitude and obliquity and the
// true obliquity of the ecliptic for T Julian centuries of dynamical time
// since J2000.0.
//
// Uses the abridged series from Meeus, Astronomical Algorithms, chapter 22,
// accurate to 0.5 arcseconds in longitude and 0.1 arcseconds in obliquity,
// which is ample for dial-needle output.
func NutationAndObliquity(T float64) Nutation {
	// Longitude of the ascending node of the Moon's mean orbit.
	omega := NormalizeDeg(125.04452 - 1934.136261*T)

	// Mean longitudes of the Sun and the Moon.
	l := NormalizeDeg(280.4665 + 36000.7698*T)
	lp := NormalizeDeg(218.3165 + 481267.8813*T)

	dPsi := unit.FromSexa('-', 0, 0, 17.20)*SinDeg(omega) +
		unit.FromSexa('-', 0, 0, 1.32)*SinDeg(2*l) +
		unit.FromSexa('-', 0, 0, 0.23)*SinDeg(2*lp) +
		unit.FromSexa(0, 0, 0, 0.21)*SinDeg(2*omega)

	dEps := unit.FromSexa(0, 0, 0, 9.20)*CosDeg(omega) +
		unit.FromSexa(0, 0, 0, 0.57)*CosDeg(2*l) +
		unit.FromSexa(0, 0, 0, 0.10)*CosDeg(2*lp) +
		unit.FromSexa('-', 0, 0, 0.09)*CosDeg(2*omega)

	// Mean obliquity, Meeus equation 22.2. Valid within a couple of
	// millennia of J2000.0.
	eps0 := unit.FromSexa(0, 23, 26, 21.448) +
		unit.FromSexa('-', 0, 0, 46.8150)*T +
		unit.FromSexa('-', 0, 0, 0.00059)*T*T +
		unit.FromSexa(0, 0, 0, 0.001813)*T*T*T

	return Nutation{
		LongitudeDeg:     dPsi,
		ObliquityDeg:     dEps,
		TrueObliquityDeg: eps0 + dEps,
	}
}
