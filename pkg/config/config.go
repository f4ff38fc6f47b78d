// Package config holds the moonclock's static configuration: the observer
// site, local-time presentation rules, and dial scaling. It is loaded once
// at process start and read-only afterwards.
package config

import (
	"fmt"

	"github.com/tcvlabs/moonclock/pkg/ephem"
)

// DST strategies for local-time display. The engine itself works in UT;
// these only shape the digital clock face.
const (
	DSTNone   = "none"
	DSTCanada = "canada"
)

// DefaultMaxDarknessHours scales the darkness dial: a fully deflected
// needle means this many moonless hours.
const DefaultMaxDarknessHours = 14.0

// Data is the complete engine configuration.
type Data struct {
	Location LocationData `yaml:"location"`

	// UTCOffsetSeconds and DSTStrategy control local-time display.
	UTCOffsetSeconds int    `yaml:"utc_offset_seconds"`
	DSTStrategy      string `yaml:"dst_strategy"`

	// MaxDarknessHours caps the darkness dial scale.
	MaxDarknessHours float64 `yaml:"max_darkness_hours"`

	// TablePath optionally overrides the embedded periodic-term table.
	TablePath string `yaml:"table_path"`

	Debug bool `yaml:"debug"`
}

// LocationData is the fixed observer site, east-positive longitude.
type LocationData struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Elevation float64 `yaml:"elevation"`
}

// Provider abstracts the configuration source so the daemon does not care
// whether settings come from a file or are injected by tests.
type Provider interface {
	LoadConfig() (*Data, error)
}

// Validate applies defaults and checks ranges.
func (d *Data) Validate() error {
	if d.Location.Latitude < -90 || d.Location.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", d.Location.Latitude)
	}
	if d.Location.Longitude < -180 || d.Location.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", d.Location.Longitude)
	}
	if d.MaxDarknessHours == 0 {
		d.MaxDarknessHours = DefaultMaxDarknessHours
	}
	if d.MaxDarknessHours < 0 || d.MaxDarknessHours > 24 {
		return fmt.Errorf("max_darkness_hours %.1f out of range (0, 24]", d.MaxDarknessHours)
	}
	switch d.DSTStrategy {
	case "":
		d.DSTStrategy = DSTNone
	case DSTNone, DSTCanada:
	default:
		return fmt.Errorf("unknown dst_strategy %q", d.DSTStrategy)
	}
	return nil
}

// EphemLocation converts the configured site into the shared read-only
// location value passed to every computation.
func (d *Data) EphemLocation() ephem.Location {
	return ephem.Location{
		LatitudeDeg:  d.Location.Latitude,
		LongitudeDeg: d.Location.Longitude,
		ElevationM:   d.Location.Elevation,
	}
}
