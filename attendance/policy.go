/*
policy.go - Fixed working-week policy

PURPOSE:
  Expected hours depend only on the weekday of a record's date. The table
  is fixed; it is exposed as a value so reports and exports can show it.

POLICY:
  Monday-Friday  8.5h
  Saturday       4h
  Sunday         0h
  Allowed leaves per report: 2

WEEKDAY BASIS:
  A canonical date "YYYY-MM-DD" is read as midnight UTC. Text that does not
  parse has no weekday and is scheduled like a weekday (8.5h).

SEE ALSO:
  - hours.go: ExpectedHours, WorkedHours
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowedLeaves is the leave allowance carried on every EmployeeReport.
const AllowedLeaves = 2

// WeeklySchedule maps each weekday to its expected hours.
type WeeklySchedule [7]decimal.Decimal

var (
	fullDay = decimal.RequireFromString("8.5")
	halfDay = decimal.NewFromInt(4)
)

// DefaultSchedule is the only schedule the analyzer applies.
var DefaultSchedule = WeeklySchedule{
	time.Sunday:    decimal.Zero,
	time.Monday:    fullDay,
	time.Tuesday:   fullDay,
	time.Wednesday: fullDay,
	time.Thursday:  fullDay,
	time.Friday:    fullDay,
	time.Saturday:  halfDay,
}

// For returns the expected hours for a weekday.
func (s WeeklySchedule) For(day time.Weekday) decimal.Decimal {
	return s[day]
}

// ForDate returns the expected hours for a canonical date. Unparseable
// dates get the weekday allowance.
func (s WeeklySchedule) ForDate(date string) decimal.Decimal {
	t, ok := ParseDate(date)
	if !ok {
		return fullDay
	}
	return s.For(t.Weekday())
}

// ParseDate reads a canonical date at midnight UTC.
func ParseDate(date string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
