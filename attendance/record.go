package attendance

import "github.com/shopspring/decimal"

// =============================================================================
// DAILY RECORD - One employee, one day
// =============================================================================

// DailyRecord is the normalized form of one source row. Records are built
// once and never modified.
type DailyRecord struct {
	EmployeeName  string
	Date          string
	InTime        TimeOfDay
	OutTime       TimeOfDay
	WorkedHours   decimal.Decimal
	ExpectedHours decimal.Decimal
	IsLeave       bool
}

// Month returns the YYYY-MM prefix of the record's date, or the whole date
// text when it is shorter than that.
func (r DailyRecord) Month() string {
	if len(r.Date) < monthTokenLen {
		return r.Date
	}
	return r.Date[:monthTokenLen]
}

// BuildRecord normalizes a raw row. It never fails: unresolved fields keep
// their defaults and the row still produces a record.
func BuildRecord(row RawRow) DailyRecord {
	date := DecodeDate(Resolve(row, DateLabels...))
	in := DecodeTime(Resolve(row, InTimeLabels...))
	out := DecodeTime(Resolve(row, OutTimeLabels...))
	expected := ExpectedHours(date)

	return DailyRecord{
		EmployeeName:  resolveName(row),
		Date:          date,
		InTime:        in,
		OutTime:       out,
		WorkedHours:   WorkedHours(in, out),
		ExpectedHours: expected,
		IsLeave:       isLeave(expected, in, out),
	}
}

// BuildRecords normalizes rows in order. len(result) == len(rows).
func BuildRecords(rows []RawRow) []DailyRecord {
	records := make([]DailyRecord, len(rows))
	for i, row := range rows {
		records[i] = BuildRecord(row)
	}
	return records
}

// A day is leave when work was expected and a clock time is missing.
func isLeave(expected decimal.Decimal, in, out TimeOfDay) bool {
	return expected.IsPositive() && (!in.Valid || !out.Valid)
}
