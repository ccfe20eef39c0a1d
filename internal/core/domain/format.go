package domain

import (
	"fmt"
	"strings"
	"time"
)

const secondsPerDay = 86400

// FormatUptime renders an elapsed duration as a compact "Xd Xh Xm Xs"
// string. Zero-valued units are omitted; seconds are always present.
func FormatUptime(elapsed time.Duration) string {
	total := int(elapsed.Seconds())

	days := total / secondsPerDay
	hours := total % secondsPerDay / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	sb := &strings.Builder{}
	if days > 0 {
		fmt.Fprintf(sb, "%dd ", days)
	}
	if hours > 0 {
		fmt.Fprintf(sb, "%dh ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(sb, "%dm ", minutes)
	}
	fmt.Fprintf(sb, "%ds", seconds)

	return sb.String()
}

// Zone returns the fixed-offset location for a whole-hour UTC offset.
func Zone(offsetHours int) *time.Location {
	return time.FixedZone(ZoneLabel(offsetHours), offsetHours*3600)
}

// ZoneLabel renders an hour offset as a GMT label, e.g. "GMT+7" or "GMT-3".
func ZoneLabel(offsetHours int) string {
	if offsetHours < 0 {
		return fmt.Sprintf("GMT-%d", -offsetHours)
	}

	return fmt.Sprintf("GMT+%d", offsetHours)
}
