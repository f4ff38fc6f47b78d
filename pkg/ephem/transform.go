package ephem

// EclipticToEquatorial converts apparent ecliptic longitude and latitude to
// right ascension and declination, given the obliquity of the ecliptic.
// All arguments and results are decimal degrees; RA is in [0, 360).
func EclipticToEquatorial(lonDeg, latDeg, obliquityDeg float64) (raDeg, decDeg float64) {
	raDeg = NormalizeDeg(Atan2Deg(
		SinDeg(lonDeg)*CosDeg(obliquityDeg)-TanDeg(latDeg)*SinDeg(obliquityDeg),
		CosDeg(lonDeg)))
	decDeg = AsinDeg(SinDeg(latDeg)*CosDeg(obliquityDeg) +
		CosDeg(latDeg)*SinDeg(obliquityDeg)*SinDeg(lonDeg))
	return raDeg, decDeg
}

// ToHorizontal converts apparent equatorial coordinates to local horizontal
// coordinates for an observer. apparentSiderealDeg is the apparent sidereal
// time at Greenwich in degrees. The returned azimuth is measured from north
// through east in [0, 360); altitude is geometric, uncorrected for
// refraction (rise/set targets bake refraction into the target altitude).
func ToHorizontal(raDeg, decDeg, apparentSiderealDeg float64, loc Location) (altDeg, azDeg float64) {
	h := LocalHourAngle(raDeg, apparentSiderealDeg, loc)

	lat := loc.LatitudeDeg
	altDeg = AsinDeg(SinDeg(lat)*SinDeg(decDeg) +
		CosDeg(lat)*CosDeg(decDeg)*CosDeg(h))

	// Meeus measures azimuth from south; shift to the north convention.
	azDeg = NormalizeDeg(Atan2Deg(
		SinDeg(h),
		CosDeg(h)*SinDeg(lat)-TanDeg(decDeg)*CosDeg(lat)) + 180)
	return altDeg, azDeg
}

// LocalHourAngle returns the body's local hour angle in [-180, 180),
// negative east of the meridian (before transit).
func LocalHourAngle(raDeg, apparentSiderealDeg float64, loc Location) float64 {
	return WrapDeg180(apparentSiderealDeg + loc.LongitudeDeg - raDeg)
}
