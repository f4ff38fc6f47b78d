// Package lunar computes the Moon's apparent place from a loaded
// periodic-term table (Meeus, Astronomical Algorithms, chapter 47) and
// derives the illumination phase from Sun-Moon elongation. Unlike the solar
// position there is no closed form: the table drives a trigonometric
// summation over roughly sixty rows per series, which is why the table must
// be loaded before any lunar computation.
package lunar

import (
	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/ephem"
)

// meanDistanceKM is the constant part of the Moon's geocentric distance;
// the table's distance series perturbs around it.
const meanDistanceKM = 385000.56

// equatorialRadiusKM is the Earth's equatorial radius used for the
// horizontal parallax.
const equatorialRadiusKM = 6378.14

// Position returns the Moon's apparent ecliptic and equatorial coordinates
// at the given instant by summing the loaded term table.
func Position(inst astrotime.Instant, tbl *TermTable) ephem.CelestialPosition {
	T := inst.TD

	// Fundamental arguments, polynomials in dynamical-time centuries.
	lp := ephem.NormalizeDeg(218.3164591 + 481267.88134236*T -
		0.0013268*T*T + T*T*T/538841.0 - T*T*T*T/65194000.0)
	d := ephem.NormalizeDeg(297.8502042 + 445267.1115168*T -
		0.0016300*T*T + T*T*T/545868.0 - T*T*T*T/113065000.0)
	m := ephem.NormalizeDeg(357.5291092 + 35999.0502909*T -
		0.0001536*T*T + T*T*T/24490000.0)
	mp := ephem.NormalizeDeg(134.9634114 + 477198.8676313*T +
		0.0089970*T*T + T*T*T/69699.0 - T*T*T*T/14712000.0)
	f := ephem.NormalizeDeg(93.2720993 + 483202.0175273*T -
		0.0034029*T*T - T*T*T/3526000.0 + T*T*T*T/863310000.0)

	// Planetary perturbation arguments and the eccentricity correction
	// for rows involving the Sun's mean anomaly.
	a1 := ephem.NormalizeDeg(119.75 + 131.849*T)
	a2 := ephem.NormalizeDeg(53.09 + 479264.290*T)
	a3 := ephem.NormalizeDeg(313.45 + 481266.484*T)
	e := 1.0 - 0.002516*T - 0.0000074*T*T

	sigL := sumSeries(tbl.Longitude, false, d, m, mp, f, e)
	sigL += 3958.0*ephem.SinDeg(a1) +
		1962.0*ephem.SinDeg(lp-f) +
		318.0*ephem.SinDeg(a2)

	sigR := sumSeries(tbl.Distance, true, d, m, mp, f, e)

	sigB := sumSeries(tbl.Latitude, false, d, m, mp, f, e)
	sigB += -2235.0*ephem.SinDeg(lp) +
		382.0*ephem.SinDeg(a3) +
		175.0*ephem.SinDeg(a1-f) +
		175.0*ephem.SinDeg(a1+f) +
		127.0*ephem.SinDeg(lp-mp) -
		115.0*ephem.SinDeg(lp+mp)

	lambda := ephem.NormalizeDeg(lp + sigL/1e6)
	beta := sigB / 1e6
	delta := meanDistanceKM + sigR/1e3

	nut := ephem.NutationAndObliquity(T)
	apparentLambda := ephem.NormalizeDeg(lambda + nut.LongitudeDeg)
	ra, dec := ephem.EclipticToEquatorial(apparentLambda, beta, nut.TrueObliquityDeg)

	return ephem.CelestialPosition{
		EclipticLonDeg: apparentLambda,
		EclipticLatDeg: beta,
		DistanceKM:     delta,
		RADeg:          ra,
		DecDeg:         dec,
		ParallaxDeg:    ephem.AsinDeg(equatorialRadiusKM / delta),
	}
}

// sumSeries accumulates one perturbation series. Rows whose argument
// combination involves the Sun's mean anomaly are scaled by E (or E squared)
// because the Earth's orbital eccentricity drifts from the table's
// reference epoch.
func sumSeries(terms []PeriodicTerm, cosine bool, d, m, mp, f, e float64) float64 {
	var sum float64
	for _, t := range terms {
		arg := ephem.NormalizeDeg(float64(t.D)*d + float64(t.M)*m +
			float64(t.MPrime)*mp + float64(t.F)*f)

		var trig float64
		if cosine {
			trig = ephem.CosDeg(arg)
		} else {
			trig = ephem.SinDeg(arg)
		}

		mult := 1.0
		switch t.M {
		case 1, -1:
			mult = e
		case 2, -2:
			mult = e * e
		}
		sum += mult * t.Amplitude * trig
	}
	return sum
}
