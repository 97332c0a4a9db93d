package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Daypart bias values carried on the traveler profile.
const (
	DaypartEarly    = "early"
	DaypartBalanced = "balanced"
	DaypartLate     = "late"
)

// Canonical anchor times in minutes since midnight. The daypart shift is
// applied to all of them at once so the whole day moves together.
const (
	AnchorBreakfast    = 7 * 60
	AnchorMorningStart = 9 * 60
	AnchorLunch        = 12 * 60
	AnchorDinner       = 19 * 60
)

const minutesPerDay = 1440

// ToClock renders minutes since midnight as "HH:MM", clamped to [0, 1439].
func ToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > minutesPerDay-1 {
		minutes = minutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ToMinutes parses an "HH:MM" clock string into minutes since midnight,
// clamped to [0, 1439]. Returns -1 when the string is not a clock time.
func ToMinutes(clock string) int {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return -1
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	if hours < 0 || mins < 0 || mins > 59 {
		return -1
	}
	total := hours*60 + mins
	if total > minutesPerDay-1 {
		total = minutesPerDay - 1
	}
	return total
}

// DaypartShift maps a qualitative daypart bias to a minute offset applied to
// every anchor time. Unknown values behave as balanced.
func DaypartShift(bias string) int {
	switch strings.ToLower(strings.TrimSpace(bias)) {
	case DaypartEarly:
		return -120
	case DaypartLate:
		return 120
	default:
		return 0
	}
}
