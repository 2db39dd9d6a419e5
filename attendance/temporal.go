package attendance

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// SERIAL DATE/TIME DECODING
// =============================================================================
// Spreadsheets store dates as days since 1899-12-30 and times as a fraction
// of a day. Serial 25569 is 1970-01-01 UTC.

const (
	unixEpochSerial = 25569
	secondsPerDay   = 86400
	minutesPerDay   = 1440

	// DateLayout is the canonical record date format.
	DateLayout = "2006-01-02"
)

// DecodeDate converts a date cell to its canonical text. Serial numbers are
// decoded in UTC; text passes through unchanged and is not validated.
func DecodeDate(c Cell) string {
	if serial, ok := c.NumberValue(); ok {
		return SerialToDate(serial)
	}
	return c.String()
}

// SerialToDate formats a spreadsheet date serial as YYYY-MM-DD (UTC).
func SerialToDate(serial float64) string {
	secs := (serial - unixEpochSerial) * secondsPerDay
	whole := math.Floor(secs)
	nanos := int64((secs - whole) * float64(time.Second))
	return time.Unix(int64(whole), nanos).UTC().Format(DateLayout)
}

// TimeOfDay is a decoded clock value. Valid is false when the source had no
// value; that is the "missing" sentinel used by leave detection.
type TimeOfDay struct {
	Value string
	Valid bool
}

// MissingTime is the zero TimeOfDay.
var MissingTime = TimeOfDay{}

// ClockTime wraps a known clock string.
func ClockTime(s string) TimeOfDay { return TimeOfDay{Value: s, Valid: true} }

func (t TimeOfDay) String() string {
	if !t.Valid {
		return ""
	}
	return t.Value
}

// DecodeTime converts a time cell to a TimeOfDay. Numbers are fractions of a
// 24h day rendered as HH:MM; text passes through, whitespace included.
// Absent cells and empty text decode to MissingTime.
func DecodeTime(c Cell) TimeOfDay {
	switch c.Kind() {
	case KindNumber:
		v, _ := c.NumberValue()
		return ClockTime(SerialToClock(v))
	case KindText:
		s, _ := c.TextValue()
		if s == "" {
			return MissingTime
		}
		return ClockTime(s)
	default:
		return MissingTime
	}
}

// SerialToClock formats a day fraction as HH:MM. Half minutes round up.
func SerialToClock(fraction float64) string {
	totalMinutes := int64(math.Floor(fraction*minutesPerDay + 0.5))
	hours := floorDiv(totalMinutes, 60)
	minutes := totalMinutes % 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
