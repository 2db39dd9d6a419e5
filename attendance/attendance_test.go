/*
attendance_test.go - Behaviour tests for the attendance pipeline

Tests are grouped by pipeline stage:
 1. Field resolution
 2. Serial date/time decoding
 3. Worked and expected hours
 4. Daily record building (incl. leave derivation)
 5. Aggregation and month handling
 6. Process end to end
*/
package attendance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-analyzer/attendance"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertHours(t *testing.T, want string, got decimal.Decimal, context ...string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), context)
}

func row(name, date, in, out string) attendance.RawRow {
	r := attendance.RawRow{
		"Employee Name": attendance.Text(name),
		"Date":          attendance.Text(date),
	}
	if in != "" {
		r["In-Time"] = attendance.Text(in)
	}
	if out != "" {
		r["Out-Time"] = attendance.Text(out)
	}
	return r
}

// =============================================================================
// FIELD RESOLUTION
// =============================================================================

func TestResolve_FirstPresentCandidateWins(t *testing.T) {
	r := attendance.RawRow{
		"Employee": attendance.Text("second"),
		"Name":     attendance.Text("third"),
	}
	assert.Equal(t, "second", attendance.ResolveText(r, attendance.NameLabels...))
}

func TestResolve_TrailingSpaceLabelIsItsOwnCandidate(t *testing.T) {
	r := attendance.RawRow{"Employee Name ": attendance.Text("  Asha ")}
	rec := attendance.BuildRecord(r)
	assert.Equal(t, "Asha", rec.EmployeeName)
}

func TestResolve_PresentEmptyTextIsNotSkipped(t *testing.T) {
	// An empty but present "Employee Name" shadows "Name".
	r := attendance.RawRow{
		"Employee Name": attendance.Text(""),
		"Name":          attendance.Text("Raj"),
	}
	assert.Equal(t, "", attendance.ResolveText(r, attendance.NameLabels...))
}

func TestResolve_NothingMatchesYieldsAbsent(t *testing.T) {
	c := attendance.Resolve(attendance.RawRow{"Other": attendance.Text("x")}, attendance.DateLabels...)
	assert.True(t, c.IsAbsent())
	assert.Equal(t, "", attendance.ResolveText(nil, attendance.NameLabels...))
}

func TestResolve_NumericNameRendersAsText(t *testing.T) {
	r := attendance.RawRow{"Name": attendance.Number(1042)}
	assert.Equal(t, "1042", attendance.BuildRecord(r).EmployeeName)
}

// =============================================================================
// TEMPORAL DECODING
// =============================================================================

func TestDecodeDate(t *testing.T) {
	assert.Equal(t, "1970-01-01", attendance.DecodeDate(attendance.Number(25569)))
	assert.Equal(t, "2024-01-20", attendance.DecodeDate(attendance.Number(45311)))
	assert.Equal(t, "2024-01-01", attendance.DecodeDate(attendance.Number(45292.75)), "time fraction is dropped")
	assert.Equal(t, "20/01/2024", attendance.DecodeDate(attendance.Text("20/01/2024")), "text passes through")
	assert.Equal(t, "", attendance.DecodeDate(attendance.Absent()))
}

func TestDecodeTime(t *testing.T) {
	tests := []struct {
		name  string
		in    attendance.Cell
		want  string
		valid bool
	}{
		{"nine am", attendance.Number(0.375), "09:00", true},
		{"six pm", attendance.Number(0.75), "18:00", true},
		{"midnight is a value", attendance.Number(0), "00:00", true},
		{"float noise rounds", attendance.Number(0.3958333), "09:30", true},
		{"text passes through", attendance.Text("9:15"), "9:15", true},
		{"absent is missing", attendance.Absent(), "", false},
		{"empty text is missing", attendance.Text(""), "", false},
		{"whitespace is a value", attendance.Text("  "), "  ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := attendance.DecodeTime(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

// =============================================================================
// HOURS
// =============================================================================

func TestWorkedHours(t *testing.T) {
	clock := attendance.ClockTime
	assertHours(t, "9", attendance.WorkedHours(clock("09:00"), clock("18:00")))
	assertHours(t, "8.5", attendance.WorkedHours(clock("9:00:00"), clock("17:30")))
	assertHours(t, "0.33", attendance.WorkedHours(clock("09:00"), clock("09:20")))
	assertHours(t, "0", attendance.WorkedHours(attendance.MissingTime, clock("18:00")))
	assertHours(t, "0", attendance.WorkedHours(clock("09:00"), clock("09:00")), "zero duration")
	assertHours(t, "0", attendance.WorkedHours(clock("nine"), clock("18:00")), "unparseable")
	assertHours(t, "0", attendance.WorkedHours(clock("9"), clock("18:00")), "no minutes field")
}

func TestWorkedHours_OvernightShiftCountsAsZero(t *testing.T) {
	// GIVEN: a shift from 22:00 to 02:00
	got := attendance.WorkedHours(attendance.ClockTime("22:00"), attendance.ClockTime("02:00"))

	// THEN: it is not treated as spanning midnight
	assertHours(t, "0", got)
}

func TestExpectedHours_OnlyWeekdayDecides(t *testing.T) {
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		date := day.Format(attendance.DateLayout)
		got := attendance.ExpectedHours(date)
		switch day.Weekday() {
		case time.Sunday:
			assertHours(t, "0", got, date)
		case time.Saturday:
			assertHours(t, "4", got, date)
		default:
			assertHours(t, "8.5", got, date)
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestExpectedHours_UnparseableDateIsScheduledAsWeekday(t *testing.T) {
	assertHours(t, "8.5", attendance.ExpectedHours("not a date"))
	assertHours(t, "8.5", attendance.ExpectedHours(""))

	_, ok := attendance.ParseDate("2024-13-40")
	assert.False(t, ok)
}

// =============================================================================
// DAILY RECORDS
// =============================================================================

func TestBuildRecord_SerialValuesOnSaturday(t *testing.T) {
	// GIVEN: serial date and times, 2024-01-20 is a Saturday
	r := attendance.RawRow{
		"Employee": attendance.Text("Asha"),
		"Date":     attendance.Number(45311),
		"In-Time":  attendance.Number(0.375),
		"Out-Time": attendance.Number(0.75),
	}

	rec := attendance.BuildRecord(r)

	assert.Equal(t, "Asha", rec.EmployeeName)
	assert.Equal(t, "2024-01-20", rec.Date)
	assertHours(t, "4", rec.ExpectedHours)
	assertHours(t, "9", rec.WorkedHours)
	assert.False(t, rec.IsLeave)
}

func TestBuildRecord_NoLeaveOnSunday(t *testing.T) {
	rec := attendance.BuildRecord(row("Raj", "2024-01-21", "", ""))

	assertHours(t, "0", rec.ExpectedHours)
	assert.False(t, rec.IsLeave, "no leave is charged on a zero-hour day")
}

func TestBuildRecord_MissingInTimeOnMondayIsLeave(t *testing.T) {
	rec := attendance.BuildRecord(row("Raj", "2024-01-22", "", "18:00"))

	assertHours(t, "8.5", rec.ExpectedHours)
	assertHours(t, "0", rec.WorkedHours)
	assert.True(t, rec.IsLeave)
	assert.False(t, rec.InTime.Valid)
	assert.Equal(t, "18:00", rec.OutTime.Value)
}

func TestBuildRecord_PresentButUnparseableTimeIsNotLeave(t *testing.T) {
	rec := attendance.BuildRecord(row("Raj", "2024-01-22", "late", "18:00"))

	assertHours(t, "0", rec.WorkedHours)
	assert.False(t, rec.IsLeave)
}

func TestBuildRecord_WhitespaceClockIsPresentNotLeave(t *testing.T) {
	// GIVEN: a Monday whose in-time cell holds only a space
	rec := attendance.BuildRecord(row("Raj", "2024-01-22", " ", "18:00"))

	// THEN: the clock-in counts as present, so no leave, but no hours either
	assert.True(t, rec.InTime.Valid)
	assert.Equal(t, " ", rec.InTime.Value)
	assertHours(t, "0", rec.WorkedHours)
	assertHours(t, "8.5", rec.ExpectedHours)
	assert.False(t, rec.IsLeave)
}

func TestBuildRecords_NeverDropsRows(t *testing.T) {
	rows := []attendance.RawRow{
		{},
		{"Unrelated": attendance.Number(1)},
		row("Asha", "2024-01-22", "09:00", "17:00"),
	}

	records := attendance.BuildRecords(rows)

	require.Len(t, records, 3)
	assert.Equal(t, "", records[0].EmployeeName)
	assert.Equal(t, "", records[0].Date)
	assert.True(t, records[0].IsLeave, "undated row with no times is a weekday leave")
	assert.Equal(t, "Asha", records[2].EmployeeName)
}

func TestBuildRecords_LeaveImpliesExpectedHoursAndMissingTime(t *testing.T) {
	rows := []attendance.RawRow{
		row("A", "2024-01-20", "", ""),
		row("A", "2024-01-21", "", ""),
		row("A", "2024-01-22", "09:00", ""),
		row("A", "2024-01-23", "09:00", "10:00"),
		row("A", "junk", "", "10:00"),
	}
	for _, rec := range attendance.BuildRecords(rows) {
		if rec.IsLeave {
			assert.True(t, rec.ExpectedHours.IsPositive(), rec.Date)
			assert.True(t, !rec.InTime.Valid || !rec.OutTime.Valid, rec.Date)
		}
		assert.False(t, rec.WorkedHours.IsNegative())
	}
}
