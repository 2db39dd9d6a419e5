package attendance

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// WorkedHours returns the hours between in and out, rounded to 2 places.
// A missing or unparseable time, or an out-time not after the in-time,
// yields zero. Shifts that cross midnight are not recognised.
func WorkedHours(in, out TimeOfDay) decimal.Decimal {
	if !in.Valid || !out.Valid {
		return decimal.Zero
	}
	inMin, ok := clockMinutes(in.Value)
	if !ok {
		return decimal.Zero
	}
	outMin, ok := clockMinutes(out.Value)
	if !ok {
		return decimal.Zero
	}
	diff := outMin - inMin
	if diff <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(diff)).Div(sixty).Round(2)
}

// ExpectedHours applies DefaultSchedule to a canonical date.
func ExpectedHours(date string) decimal.Decimal {
	return DefaultSchedule.ForDate(date)
}

// clockMinutes reads the first two ':'-separated fields of s as hours and
// minutes. Extra fields such as seconds are ignored.
func clockMinutes(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}
