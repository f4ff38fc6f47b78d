package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/darkness"
	"github.com/tcvlabs/moonclock/pkg/ephem"
	"github.com/tcvlabs/moonclock/pkg/lunar"
)

func main() {
	var timeStr string
	var lat, lon float64
	flag.StringVar(&timeStr, "time", "", "UTC time to calculate phase for (RFC3339 format, e.g., 2024-01-15T12:00:00Z)")
	flag.Float64Var(&lat, "lat", 43.4516, "observer latitude in degrees")
	flag.Float64Var(&lon, "lon", -80.4925, "observer longitude in degrees, east positive")
	flag.Parse()

	var t time.Time
	if timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	table, err := lunar.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading term table: %v\n", err)
		os.Exit(1)
	}

	inst, err := astrotime.ToInstant(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	phase := lunar.Phase(inst, table)

	fmt.Printf("Moon Phase for %s\n", t.Format(time.RFC3339))
	fmt.Printf("  Phase Name:   %s\n", phase.Name)
	fmt.Printf("  Illumination: %.1f%%\n", phase.Illumination*100)
	fmt.Printf("  Age:          %.1f days\n", phase.AgeDays)
	fmt.Printf("  Elongation:   %.1f°\n", phase.ElongationDeg)
	fmt.Printf("  Dial Value:   %.4f\n", phase.DialValue)
	if phase.Waxing {
		fmt.Printf("  Direction:    Waxing\n")
	} else {
		fmt.Printf("  Direction:    Waning\n")
	}

	loc := ephem.Location{LatitudeDeg: lat, LongitudeDeg: lon}
	w, err := darkness.ComputeWindow(t, loc, table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing darkness window: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Darkness for the night of %s at %.4f, %.4f\n",
		t.Format("2006-01-02"), lat, lon)
	if w.State != darkness.Normal {
		fmt.Printf("  State:        %s\n", w.State)
		return
	}
	fmt.Printf("  Twilight End:   %s\n", w.Dusk.Format(time.RFC3339))
	fmt.Printf("  Twilight Start: %s\n", w.Dawn.Format(time.RFC3339))
	fmt.Printf("  Dark Sky:       %s\n", w.Dark.Round(time.Minute))
	fmt.Printf("  Moon Up:        %s\n", w.MoonUp.Round(time.Minute))
	fmt.Printf("  Moonless:       %s\n", w.Moonless.Round(time.Minute))
}
