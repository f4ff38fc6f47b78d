package lunar

import (
	"math"

	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/ephem"
	"github.com/tcvlabs/moonclock/pkg/solar"
)

// SynodicMonth is the average length of the lunar cycle in days.
const SynodicMonth = 29.530588853

// Eight 45-degree elongation octants, anchored so New is centered on 0
// degrees and Full on 180.
var phaseNames = [8]string{
	"New",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// PhaseResult describes the Moon's illumination phase at one instant.
type PhaseResult struct {
	ElongationDeg float64 // Sun-to-Moon ecliptic elongation [0, 360)
	Illumination  float64 // illuminated fraction [0, 1]
	AgeDays       float64 // days since new moon [0, SynodicMonth)
	Waxing        bool
	Name          string  // octant name
	DialValue     float64 // elongation/360, drives the phase indicator
}

// Phase computes Sun-Moon elongation and the derived illumination values.
// The illuminated fraction uses the flat-disk model (1 - cos E)/2, which
// ignores distance-dependent limb effects but is ample for needle
// deflection.
func Phase(inst astrotime.Instant, tbl *TermTable) PhaseResult {
	sun := solar.Position(inst)
	moon := Position(inst, tbl)

	elongation := ephem.NormalizeDeg(moon.EclipticLonDeg - sun.EclipticLonDeg)
	octant := int(math.Floor(ephem.NormalizeDeg(elongation+22.5)/45.0)) % 8

	return PhaseResult{
		ElongationDeg: elongation,
		Illumination:  (1 - ephem.CosDeg(elongation)) / 2,
		AgeDays:       elongation / 360.0 * SynodicMonth,
		Waxing:        elongation < 180,
		Name:          phaseNames[octant],
		DialValue:     elongation / 360.0,
	}
}
