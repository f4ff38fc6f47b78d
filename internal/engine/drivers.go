package engine

// DAC channels for the two analog indicators.
const (
	ChannelMoonPhase = iota
	ChannelMoonlessHours
)

// DialDriver is the DAC/amplifier collaborator behind the analog
// indicators. Values are normalized to [0, 1).
type DialDriver interface {
	SetDial(channel int, value float64) error
}

// DisplayDriver is the dot-matrix collaborator for the digital clock face.
type DisplayDriver interface {
	ShowText(lines []string) error
}
