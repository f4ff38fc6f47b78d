// Package darkness composes twilight bounds and moon visibility into the
// usable-darkness interval for one night: the span between evening
// astronomical-twilight end and the following morning's twilight start,
// minus the time the Moon spends above its effective horizon inside that
// span.
package darkness

import (
	"fmt"
	"time"

	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/ephem"
	"github.com/tcvlabs/moonclock/pkg/lunar"
	"github.com/tcvlabs/moonclock/pkg/riseset"
	"github.com/tcvlabs/moonclock/pkg/solar"
)

// State classifies the night. Terminal states are valid outputs that the
// display renders distinctly; they are not errors and not a zero duration.
type State int

const (
	// Normal means astronomical darkness begins and ends within the night.
	Normal State = iota

	// PerpetualTwilight means the Sun never drops below the astronomical
	// twilight depression (high-latitude summer).
	PerpetualTwilight

	// PerpetualNight means the Sun never climbs above the twilight
	// depression (high-latitude winter); the whole span counts as dark.
	PerpetualNight
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case PerpetualTwilight:
		return "perpetual twilight"
	default:
		return "perpetual night"
	}
}

// Window is the usable-darkness result for one evening and its following
// morning.
type Window struct {
	State State

	// Dusk is the evening astronomical-twilight end, Dawn the next
	// morning's twilight start. Zero values under PerpetualTwilight.
	Dusk time.Time
	Dawn time.Time

	Dark     time.Duration // Dawn minus Dusk
	MoonUp   time.Duration // overlap of "Moon above horizon" with the dark span
	Moonless time.Duration // Dark minus MoonUp, never negative
}

// ComputeWindow builds the darkness window for the night beginning on the
// given civil date at the observer's location. The evening search window
// runs from the observer's local solar noon for twelve hours, the morning
// window for the following twelve, so each evening pairs with its own
// following morning.
func ComputeWindow(date time.Time, loc ephem.Location, tbl *lunar.TermTable) (Window, error) {
	moonPos := func(inst astrotime.Instant) ephem.CelestialPosition {
		return lunar.Position(inst, tbl)
	}

	noon := localSolarNoon(date, loc)
	eveEnd := noon.Add(12 * time.Hour)
	mornEnd := noon.Add(24 * time.Hour)

	dusk, err := riseset.FindCrossing(solar.Position, noon, eveEnd, loc,
		riseset.AstronomicalTwilightDeg, riseset.Setting)
	if err != nil {
		return Window{}, fmt.Errorf("dusk search: %w", err)
	}
	dawn, err := riseset.FindCrossing(solar.Position, eveEnd, mornEnd, loc,
		riseset.AstronomicalTwilightDeg, riseset.Rising)
	if err != nil {
		return Window{}, fmt.Errorf("dawn search: %w", err)
	}

	var w Window
	switch {
	case dusk.Classification == riseset.AlwaysAbove || dawn.Classification == riseset.AlwaysAbove:
		// The Sun never reaches the twilight depression: no usable
		// darkness at all tonight.
		w.State = PerpetualTwilight
		return w, nil
	case dusk.Classification == riseset.NeverReaches || dawn.Classification == riseset.NeverReaches:
		// The Sun stays below the depression around the clock.
		w.State = PerpetualNight
		w.Dusk, w.Dawn = noon, mornEnd
	default:
		w.State = Normal
		w.Dusk, w.Dawn = dusk.Time, dawn.Time
	}

	if !w.Dawn.After(w.Dusk) {
		// Degenerate ordering from a barely-converged solve; treat as no
		// darkness rather than a negative span.
		w.Dawn = w.Dusk
	}
	w.Dark = w.Dawn.Sub(w.Dusk)

	up, err := moonUpWithin(moonPos, w.Dusk, w.Dawn, loc)
	if err != nil {
		return Window{}, err
	}
	w.MoonUp = up
	if w.MoonUp > w.Dark {
		w.MoonUp = w.Dark
	}
	w.Moonless = w.Dark - w.MoonUp
	return w, nil
}

// moonUpWithin measures how long the Moon sits above its effective horizon
// between dusk and dawn.
func moonUpWithin(moonPos riseset.PositionFunc, dusk, dawn time.Time, loc ephem.Location) (time.Duration, error) {
	if !dawn.After(dusk) {
		return 0, nil
	}

	duskInst, err := astrotime.ToInstant(dusk)
	if err != nil {
		return 0, err
	}
	mid := dusk.Add(dawn.Sub(dusk) / 2)
	midInst, err := astrotime.ToInstant(mid)
	if err != nil {
		return 0, err
	}

	h0 := riseset.MoonEffectiveHorizonDeg(moonPos(midInst))

	rise, err := riseset.FindCrossing(moonPos, dusk, dawn, loc, h0, riseset.Rising)
	if err != nil {
		return 0, err
	}
	set, err := riseset.FindCrossing(moonPos, dusk, dawn, loc, h0, riseset.Setting)
	if err != nil {
		return 0, err
	}

	if rise.Classification == riseset.AlwaysAbove || set.Classification == riseset.AlwaysAbove {
		return dawn.Sub(dusk), nil
	}
	if rise.Classification == riseset.NeverReaches || set.Classification == riseset.NeverReaches {
		return 0, nil
	}

	// Walk the dark span with the crossings that actually fall inside it.
	// At most one rise and one set can occur: successive moon rises are
	// about 24h50m apart, longer than any night.
	type crossing struct {
		at     time.Time
		rising bool
	}
	var events []crossing
	if within(rise.Time, dusk, dawn) {
		events = append(events, crossing{rise.Time, true})
	}
	if within(set.Time, dusk, dawn) {
		events = append(events, crossing{set.Time, false})
	}
	if len(events) == 2 && events[1].at.Before(events[0].at) {
		events[0], events[1] = events[1], events[0]
	}

	up := riseset.AltitudeAt(moonPos, duskInst, loc) >= h0
	cur := dusk
	var total time.Duration
	for _, ev := range events {
		if up {
			total += ev.at.Sub(cur)
		}
		cur = ev.at
		up = ev.rising
	}
	if up {
		total += dawn.Sub(cur)
	}
	return total, nil
}

func within(t, lo, hi time.Time) bool {
	return t.After(lo) && t.Before(hi)
}

// localSolarNoon approximates the observer's local solar noon in UT for a
// civil date: 12h UT shifted by four minutes per degree of longitude. The
// equation of time is ignored; the value only anchors search windows.
func localSolarNoon(date time.Time, loc ephem.Location) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	return d.Add(-time.Duration(loc.LongitudeDeg * 4 * float64(time.Minute)))
}
