package main

import (
	"strings"

	"github.com/tcvlabs/moonclock/internal/log"
)

// consoleDials stands in for the DAC driver when running off-device.
type consoleDials struct{}

func (c *consoleDials) SetDial(channel int, value float64) error {
	log.Infow("dial", "channel", channel, "value", value)
	return nil
}

// consoleDisplay stands in for the dot-matrix driver when running
// off-device.
type consoleDisplay struct{}

func (c *consoleDisplay) ShowText(lines []string) error {
	log.Infof("display: %s", strings.Join(lines, " | "))
	return nil
}
