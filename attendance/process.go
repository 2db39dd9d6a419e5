package attendance

// Result is the analysis of one upload.
type Result struct {
	AvailableMonths  []string
	OverallEmployees []EmployeeReport
	MonthlyEmployees []EmployeeReport
	SelectedMonth    string
	Records          []DailyRecord
}

// Process runs the whole pipeline. Monthly reports are only computed when
// selectedMonth is non-empty; a month that matches no record gives an empty
// list. Process is pure: the same input always yields the same Result.
func Process(rows []RawRow, selectedMonth string) Result {
	records := BuildRecords(rows)

	res := Result{
		AvailableMonths:  AvailableMonths(records),
		OverallEmployees: Aggregate(records),
		MonthlyEmployees: []EmployeeReport{},
		SelectedMonth:    selectedMonth,
		Records:          records,
	}
	if selectedMonth != "" {
		res.MonthlyEmployees = Aggregate(FilterByMonth(records, selectedMonth))
	}
	return res
}

// Stats are dataset counts. They carry no employee data.
type Stats struct {
	Rows          int
	Employees     int
	LeaveDays     int
	UnparsedDates int
}

// Summarize counts rows, distinct employees, leave days and records whose
// date text is not a canonical YYYY-MM-DD date.
func Summarize(records []DailyRecord) Stats {
	names := make(map[string]struct{})
	st := Stats{Rows: len(records)}
	for _, rec := range records {
		names[rec.EmployeeName] = struct{}{}
		if rec.IsLeave {
			st.LeaveDays++
		}
		if _, ok := ParseDate(rec.Date); !ok {
			st.UnparsedDates++
		}
	}
	st.Employees = len(names)
	return st
}
