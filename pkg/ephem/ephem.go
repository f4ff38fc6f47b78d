// Package ephem provides the shared celestial types and coordinate-frame
// transforms used by the solar and lunar position packages: nutation and
// obliquity of the ecliptic, ecliptic to equatorial conversion, and the
// equatorial to horizontal (altitude/azimuth) transform for a fixed observer.
//
// All angles are decimal degrees unless a name says otherwise, and all
// longitudes are east-positive.
package ephem

import (
	"math"

	"github.com/soniakeys/unit"
)

// Location is the fixed observer site. It is constructed once from
// configuration and shared read-only by every computation.
type Location struct {
	LatitudeDeg  float64
	LongitudeDeg float64 // east-positive
	ElevationM   float64
}

// CelestialPosition holds the apparent place of a body at one instant.
type CelestialPosition struct {
	// Apparent ecliptic coordinates of date.
	EclipticLonDeg float64
	EclipticLatDeg float64

	// Geocentric distance. For the Moon this is the center-to-center
	// distance in kilometers; for the Sun it is the radius vector
	// converted from AU.
	DistanceKM float64

	// Apparent equatorial coordinates of date.
	RADeg  float64
	DecDeg float64

	// Equatorial horizontal parallax. Negligible for the Sun, about a
	// degree for the Moon, where it feeds the effective rise/set horizon.
	ParallaxDeg float64
}

// DegToRad converts decimal degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// RadToDeg converts radians to decimal degrees.
func RadToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// SinDeg returns the sine of an angle given in degrees.
func SinDeg(deg float64) float64 { return math.Sin(DegToRad(deg)) }

// CosDeg returns the cosine of an angle given in degrees.
func CosDeg(deg float64) float64 { return math.Cos(DegToRad(deg)) }

// TanDeg returns the tangent of an angle given in degrees.
func TanDeg(deg float64) float64 { return math.Tan(DegToRad(deg)) }

// AsinDeg returns the arcsine in degrees.
func AsinDeg(x float64) float64 { return RadToDeg(math.Asin(x)) }

// AcosDeg returns the arccosine in degrees.
func AcosDeg(x float64) float64 { return RadToDeg(math.Acos(x)) }

// Atan2Deg returns the two-argument arctangent in degrees.
func Atan2Deg(y, x float64) float64 { return RadToDeg(math.Atan2(y, x)) }

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float64) float64 { return unit.PMod(deg, 360) }

// WrapDeg180 wraps an angle into [-180, 180).
func WrapDeg180(deg float64) float64 {
	return unit.PMod(deg+180, 360) - 180
}
