// Package astrotime converts wall-clock timestamps into the time frame the
// position packages work in: Julian Day, Julian centuries, dynamical time
// via a smooth delta-T approximation, and mean/apparent sidereal time at
// Greenwich.
package astrotime

import (
	"errors"
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/tcvlabs/moonclock/pkg/ephem"
)

// ErrInvalidTime is returned when a timestamp falls outside the plausible
// operating range, which guards against an unset or corrupted RTC.
var ErrInvalidTime = errors.New("timestamp outside plausible range")

// Operating range accepted by ToInstant. An unset RTC typically reports
// 1970 or an all-ones date; both land outside this window.
var (
	MinValidTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxValidTime = time.Date(2150, 1, 1, 0, 0, 0, 0, time.UTC)
)

// J2000 is the Julian Day of the standard epoch J2000.0.
const J2000 = 2451545.0

// Instant is one fully derived moment in time. It is immutable once
// constructed; every engine computation takes one explicitly rather than
// reading the clock itself.
type Instant struct {
	Time time.Time

	JD  float64 // Julian Day of the UT timestamp
	JDE float64 // Julian Ephemeris Day (JD + delta-T)

	T  float64 // Julian centuries of JD since J2000.0
	TD float64 // Julian centuries of JDE since J2000.0

	DeltaTSec float64

	MeanSiderealDeg     float64 // Greenwich mean sidereal time
	ApparentSiderealDeg float64 // corrected for nutation in longitude
}

// ToInstant derives the full time frame for a wall-clock timestamp.
// Timestamps outside the plausible operating range fail with ErrInvalidTime.
func ToInstant(t time.Time) (Instant, error) {
	t = t.UTC()
	if t.Before(MinValidTime) || !t.Before(MaxValidTime) {
		return Instant{}, fmt.Errorf("%w: %s", ErrInvalidTime, t.Format(time.RFC3339))
	}
	return FromJD(julian.TimeToJD(t)), nil
}

// FromJD derives an Instant from a UT Julian Day without the range guard.
// Used by the solver when stepping candidate times inside a window that has
// already been validated.
func FromJD(jd float64) Instant {
	t := julian.JDToTime(jd)
	dt := DeltaT(t)
	jde := jd + dt/86400.0

	inst := Instant{
		Time:      t,
		JD:        jd,
		JDE:       jde,
		T:         (jd - J2000) / 36525.0,
		TD:        (jde - J2000) / 36525.0,
		DeltaTSec: dt,
	}

	inst.MeanSiderealDeg = meanSiderealDeg(jd, inst.T)
	nut := ephem.NutationAndObliquity(inst.TD)
	inst.ApparentSiderealDeg = ephem.NormalizeDeg(
		inst.MeanSiderealDeg + nut.LongitudeDeg*ephem.CosDeg(nut.TrueObliquityDeg))
	return inst
}

// DeltaT approximates TD minus UT in seconds with the Espenak-Meeus
// polynomial fitted for 2005-2050. It stays smooth and close enough for
// dial precision across the whole operating range.
func DeltaT(t time.Time) float64 {
	y := float64(t.Year()) + float64(t.YearDay())/365.25 - 2000.0
	return 62.92 + 0.32217*y + 0.005589*y*y
}

// meanSiderealDeg evaluates Greenwich mean sidereal time for any instant,
// Meeus equation 12.4.
func meanSiderealDeg(jd, T float64) float64 {
	return ephem.NormalizeDeg(280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0)
}
