// Package riseset finds the UT instant at which a body crosses a target
// altitude: horizon rise/set for Sun or Moon, or a twilight depression angle
// for the Sun. One solver serves every body and target because the body is
// abstracted behind a position function.
package riseset

import (
	"fmt"
	"math"
	"time"

	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/ephem"
)

// Standard target altitudes in degrees.
const (
	// SolarHorizonDeg is the Sun's effective rise/set altitude:
	// refraction plus semi-diameter.
	SolarHorizonDeg = -0.8333

	// AstronomicalTwilightDeg is the solar depression below which the sky
	// is fully dark.
	AstronomicalTwilightDeg = -18.0
)

const (
	// maxIterations bounds the refinement loop. Exceeding it is not an
	// error; the last candidate is good enough for dial precision.
	maxIterations = 5

	// convergedSec stops the refinement once successive candidates agree
	// within this many seconds.
	convergedSec = 2.0

	// Mean rate of hour-angle advance in degrees per day (sidereal).
	hourAngleRateDeg = 360.98564736629
)

// Direction selects which crossing of the target altitude to search for.
type Direction int

const (
	Rising Direction = iota
	Setting
)

func (d Direction) String() string {
	if d == Rising {
		return "rising"
	}
	return "setting"
}

// Classification describes the outcome of a crossing search.
type Classification int

const (
	// Crossed means a crossing time was found.
	Crossed Classification = iota

	// AlwaysAbove means the body stays above the target altitude through
	// the window (circumpolar relative to the target).
	AlwaysAbove

	// NeverReaches means the body stays below the target altitude.
	NeverReaches
)

func (c Classification) String() string {
	switch c {
	case Crossed:
		return "crossed"
	case AlwaysAbove:
		return "always above"
	default:
		return "never reaches"
	}
}

// HorizonEvent is the result of a crossing search: either a UT time, or a
// terminal classification when no crossing exists in the window. Terminal
// classifications are valid outputs, not errors.
type HorizonEvent struct {
	Classification Classification
	Time           time.Time
	Converged      bool
	Iterations     int
}

// PositionFunc abstracts over the solar and lunar position routines.
type PositionFunc func(astrotime.Instant) ephem.CelestialPosition

// MoonEffectiveHorizonDeg returns the Moon's rise/set target altitude for a
// position: 0.7275 times the horizontal parallax minus 34 arcminutes of
// refraction, which folds in semi-diameter and parallax.
func MoonEffectiveHorizonDeg(pos ephem.CelestialPosition) float64 {
	return 0.7275*pos.ParallaxDeg - 34.0/60.0
}

// FindCrossing searches the window for the body reaching targetAltDeg in
// the given direction and returns the crossing nearest the window midpoint.
//
// The caller chooses the window bounds: the Moon's rise/set cadence of
// roughly 24h50m does not line up with the calendar day, so pairing an
// evening with its following morning is the aggregator's job, not the
// solver's.
func FindCrossing(pos PositionFunc, start, end time.Time, loc ephem.Location, targetAltDeg float64, dir Direction) (HorizonEvent, error) {
	if _, err := astrotime.ToInstant(start); err != nil {
		return HorizonEvent{}, fmt.Errorf("window start: %w", err)
	}
	if _, err := astrotime.ToInstant(end); err != nil {
		return HorizonEvent{}, fmt.Errorf("window end: %w", err)
	}
	if !end.After(start) {
		return HorizonEvent{}, fmt.Errorf("empty search window [%s, %s]", start, end)
	}

	// Start from the window midpoint and refine: the analytic hour-angle
	// estimate assumes a fixed declination, so each candidate recomputes
	// the body's true position, which matters most for the Moon whose
	// coordinates shift substantially within a day.
	jd := (julianDay(start) + julianDay(end)) / 2

	ev := HorizonEvent{Classification: Crossed}
	for i := 0; i < maxIterations; i++ {
		ev.Iterations = i + 1
		inst := astrotime.FromJD(jd)
		p := pos(inst)

		cosH := (ephem.SinDeg(targetAltDeg) -
			ephem.SinDeg(loc.LatitudeDeg)*ephem.SinDeg(p.DecDeg)) /
			(ephem.CosDeg(loc.LatitudeDeg) * ephem.CosDeg(p.DecDeg))
		if cosH < -1 || cosH > 1 {
			alt, _ := ephem.ToHorizontal(p.RADeg, p.DecDeg, inst.ApparentSiderealDeg, loc)
			if alt > targetAltDeg {
				ev.Classification = AlwaysAbove
			} else {
				ev.Classification = NeverReaches
			}
			ev.Time = inst.Time
			return ev, nil
		}

		targetH := ephem.AcosDeg(cosH)
		if dir == Rising {
			targetH = -targetH
		}

		nowH := ephem.LocalHourAngle(p.RADeg, inst.ApparentSiderealDeg, loc)
		deltaDays := ephem.WrapDeg180(targetH-nowH) / hourAngleRateDeg
		jd += deltaDays

		if math.Abs(deltaDays)*86400.0 < convergedSec {
			ev.Converged = true
			break
		}
	}

	ev.Time = astrotime.FromJD(jd).Time
	return ev, nil
}

// AltitudeAt returns the body's geometric altitude at one instant.
func AltitudeAt(pos PositionFunc, inst astrotime.Instant, loc ephem.Location) float64 {
	p := pos(inst)
	alt, _ := ephem.ToHorizontal(p.RADeg, p.DecDeg, inst.ApparentSiderealDeg, loc)
	return alt
}

func julianDay(t time.Time) float64 {
	inst, _ := astrotime.ToInstant(t)
	return inst.JD
}
