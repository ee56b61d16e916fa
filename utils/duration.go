// utils/duration.go
package utils

import (
	"fmt"
	"time"
)

// FormatDuration renders d as "[D ]HH:MM:SS[.ffffff]", the format the
// statistics consumers already parse.
func FormatDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	micros := int64(d / time.Microsecond)

	days := micros / (24 * 3600 * 1e6)
	micros -= days * 24 * 3600 * 1e6
	hours := micros / (3600 * 1e6)
	micros -= hours * 3600 * 1e6
	minutes := micros / (60 * 1e6)
	micros -= minutes * 60 * 1e6
	seconds := micros / 1e6
	micros -= seconds * 1e6

	s := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	if days > 0 {
		s = fmt.Sprintf("%d %s", days, s)
	}
	if micros > 0 {
		s += fmt.Sprintf(".%06d", micros)
	}
	if neg {
		s = "-" + s
	}
	return s
}
