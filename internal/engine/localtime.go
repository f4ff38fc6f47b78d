package engine

import (
	"time"

	"github.com/tcvlabs/moonclock/pkg/config"
)

// LocalTime maps a UT timestamp onto the configured local clock face:
// fixed UTC offset plus the optional DST strategy. The engine computes in
// UT throughout; this only shapes display output.
func LocalTime(cfg *config.Data, t time.Time) time.Time {
	local := t.UTC().Add(time.Duration(cfg.UTCOffsetSeconds) * time.Second)
	if cfg.DSTStrategy == config.DSTCanada {
		local = local.Add(canadaDSTOffset(local))
	}
	return local
}

// canadaDSTOffset implements the Canadian rule: clocks advance one hour at
// 02:00 standard time on the second Sunday of March and fall back at 02:00
// daylight time (01:00 standard) on the first Sunday of November.
func canadaDSTOffset(standard time.Time) time.Duration {
	switch {
	case standard.Month() < time.March || standard.Month() > time.November:
		return 0
	case standard.Month() == time.March:
		start := nthWeekday(standard.Year(), time.March, time.Sunday, 2)
		if standard.Day() > start || (standard.Day() == start && standard.Hour() >= 2) {
			return time.Hour
		}
		return 0
	case standard.Month() == time.November:
		end := nthWeekday(standard.Year(), time.November, time.Sunday, 1)
		if standard.Day() < end || (standard.Day() == end && standard.Hour() < 1) {
			return time.Hour
		}
		return 0
	default:
		return time.Hour
	}
}

// nthWeekday returns the day of month of the n-th given weekday.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) int {
	count := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == weekday {
			count++
			if count == n {
				return d.Day()
			}
		}
	}
	return 0
}
