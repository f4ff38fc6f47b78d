// Package solar computes the apparent place of the Sun with the closed-form
// low-accuracy method of Meeus, Astronomical Algorithms, chapter 25. The
// result is good to about 0.01 degrees, well inside dial-needle resolution.
package solar

import (
	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/ephem"
)

// AU is the astronomical unit in kilometers.
const AU = 149597870.7

// Position returns the Sun's apparent ecliptic and equatorial coordinates
// at the given instant. Purely closed-form; polynomials in dynamical-time
// centuries, no iteration.
func Position(inst astrotime.Instant) ephem.CelestialPosition {
	T := inst.TD

	// Geometric mean longitude and mean anomaly.
	l0 := ephem.NormalizeDeg(280.46646 + 36000.76983*T + 0.0003032*T*T)
	m := ephem.NormalizeDeg(357.52911 + 35999.05029*T - 0.0001537*T*T)

	// Eccentricity of the Earth's orbit.
	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T

	// Equation of center.
	c := (1.914602-0.004817*T-0.000014*T*T)*ephem.SinDeg(m) +
		(0.019993-0.000101*T)*ephem.SinDeg(2*m) +
		0.000289*ephem.SinDeg(3*m)

	// True longitude and true anomaly.
	theta := ephem.NormalizeDeg(l0 + c)
	nu := m + c

	// Radius vector in AU.
	r := 1.000001018 * (1 - e*e) / (1 + e*ephem.CosDeg(nu))

	// Apparent longitude, corrected for nutation and aberration.
	omega := ephem.NormalizeDeg(125.04 - 1934.136*T)
	lambda := ephem.NormalizeDeg(theta - 0.00569 - 0.00478*ephem.SinDeg(omega))

	// Apparent RA and declination use the true obliquity shifted by the
	// same Omega term, Meeus equation 25.8.
	nut := ephem.NutationAndObliquity(T)
	eps := nut.TrueObliquityDeg + 0.00256*ephem.CosDeg(omega)
	ra, dec := ephem.EclipticToEquatorial(lambda, 0, eps)

	return ephem.CelestialPosition{
		EclipticLonDeg: lambda,
		EclipticLatDeg: 0,
		DistanceKM:     r * AU,
		RADeg:          ra,
		DecDeg:         dec,
		ParallaxDeg:    ephem.AsinDeg(6378.14 / (r * AU)),
	}
}
