// Package engine runs the moonclock's refresh cycle: it turns the current
// instant into the two analog dial values and the digital display strings,
// recomputing the lunar phase every cycle and the darkness window once per
// civil date. Each refresh is a pure function of its inputs except for the
// cached previous outputs, which the display keeps showing across a cycle
// whose timestamp fails validation.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/tcvlabs/moonclock/internal/log"
	"github.com/tcvlabs/moonclock/pkg/astrotime"
	"github.com/tcvlabs/moonclock/pkg/config"
	"github.com/tcvlabs/moonclock/pkg/darkness"
	"github.com/tcvlabs/moonclock/pkg/ephem"
	"github.com/tcvlabs/moonclock/pkg/lunar"
)

// Outputs is one refresh cycle's worth of display state.
type Outputs struct {
	ComputedAt time.Time

	Phase  lunar.PhaseResult
	Window darkness.Window

	// Normalized dial values in [0, 1).
	PhaseDial    float64
	DarknessDial float64

	// Text for the digital display collaborator.
	ClockText    string
	PhaseText    string
	DarknessText string
}

// Engine owns the immutable term table and location and the small amount of
// cycle-to-cycle state. It is driven from a single scheduler goroutine.
type Engine struct {
	cfg   *config.Data
	loc   ephem.Location
	table *lunar.TermTable

	dials   DialDriver
	display DisplayDriver

	prev     Outputs
	havePrev bool

	windowDate time.Time
	window     darkness.Window
}

// New builds an engine. Either driver may be nil, in which case that output
// is skipped.
func New(cfg *config.Data, table *lunar.TermTable, dials DialDriver, display DisplayDriver) *Engine {
	return &Engine{
		cfg:     cfg,
		loc:     cfg.EphemLocation(),
		table:   table,
		dials:   dials,
		display: display,
	}
}

// Refresh recomputes all outputs for the given wall-clock time and pushes
// them to the drivers. On an invalid timestamp it returns the previous
// cycle's outputs along with the error so the dials hold steady until the
// clock recovers.
func (e *Engine) Refresh(now time.Time) (Outputs, error) {
	inst, err := astrotime.ToInstant(now)
	if err != nil {
		return e.prev, err
	}

	local := LocalTime(e.cfg, now)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	if !date.Equal(e.windowDate) {
		w, err := darkness.ComputeWindow(date, e.loc, e.table)
		if err != nil {
			return e.prev, fmt.Errorf("darkness window: %w", err)
		}
		e.window = w
		e.windowDate = date
		log.Infow("darkness window recomputed",
			"date", date.Format("2006-01-02"),
			"state", w.State.String(),
			"dark", w.Dark.String(),
			"moonless", w.Moonless.String())
	}

	phase := lunar.Phase(inst, e.table)

	out := Outputs{
		ComputedAt:   now,
		Phase:        phase,
		Window:       e.window,
		PhaseDial:    phase.DialValue,
		DarknessDial: darknessDial(e.window, e.cfg.MaxDarknessHours),
		ClockText:    local.Format("15:04:05"),
		PhaseText:    phase.Name,
		DarknessText: darknessText(e.window),
	}

	e.push(out)
	e.prev = out
	e.havePrev = true
	return out, nil
}

// push hands the outputs to the hardware collaborators. Driver failures are
// logged and otherwise ignored; the next cycle retries.
func (e *Engine) push(out Outputs) {
	if e.dials != nil {
		if err := e.dials.SetDial(ChannelMoonPhase, out.PhaseDial); err != nil {
			log.Errorf("phase dial: %v", err)
		}
		if err := e.dials.SetDial(ChannelMoonlessHours, out.DarknessDial); err != nil {
			log.Errorf("darkness dial: %v", err)
		}
	}
	if e.display != nil {
		lines := []string{out.ClockText, out.PhaseText, out.DarknessText}
		if err := e.display.ShowText(lines); err != nil {
			log.Errorf("display: %v", err)
		}
	}
}

// darknessDial scales the moonlight-free duration against the configured
// maximum. Terminal states pin the needle rather than reading as a zero
// duration: perpetual twilight parks it at rest, perpetual night at full
// deflection.
func darknessDial(w darkness.Window, maxHours float64) float64 {
	switch w.State {
	case darkness.PerpetualTwilight:
		return 0
	case darkness.PerpetualNight:
		return maxDial
	}
	return math.Min(w.Moonless.Hours()/maxHours, maxDial)
}

// maxDial keeps dial values inside [0, 1).
const maxDial = 0.999

func darknessText(w darkness.Window) string {
	switch w.State {
	case darkness.PerpetualTwilight:
		return "NO DARK SKY"
	case darkness.PerpetualNight:
		return "DARK ALL DAY"
	}
	h := int(w.Moonless.Hours())
	m := int(w.Moonless.Minutes()) % 60
	return fmt.Sprintf("%dH%02dM MOONLESS", h, m)
}
