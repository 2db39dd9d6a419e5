package attendance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// EmployeeReport summarizes the records of one employee over some subset of
// the dataset (everything, or one month).
type EmployeeReport struct {
	EmployeeName       string
	TotalExpectedHours decimal.Decimal
	TotalWorkedHours   decimal.Decimal
	LeavesUsed         int
	AllowedLeaves      int
	Productivity       decimal.Decimal
	DailyBreakdown     []DailyRecord
}

// Productivity returns worked/expected as a percentage rounded to 2 places,
// or zero when nothing was expected.
func Productivity(worked, expected decimal.Decimal) decimal.Decimal {
	if expected.IsZero() {
		return decimal.Zero
	}
	return worked.Div(expected).Mul(hundred).Round(2)
}

// Aggregate groups records by exact employee name. Employees appear in the
// order they were first seen and each breakdown keeps input order. The
// empty name is a bucket like any other. The result is never nil.
func Aggregate(records []DailyRecord) []EmployeeReport {
	index := make(map[string]int)
	reports := make([]EmployeeReport, 0)

	for _, rec := range records {
		i, ok := index[rec.EmployeeName]
		if !ok {
			i = len(reports)
			index[rec.EmployeeName] = i
			reports = append(reports, EmployeeReport{
				EmployeeName:       rec.EmployeeName,
				TotalExpectedHours: decimal.Zero,
				TotalWorkedHours:   decimal.Zero,
				AllowedLeaves:      AllowedLeaves,
			})
		}

		rep := &reports[i]
		rep.TotalExpectedHours = rep.TotalExpectedHours.Add(rec.ExpectedHours)
		rep.TotalWorkedHours = rep.TotalWorkedHours.Add(rec.WorkedHours)
		if rec.IsLeave {
			rep.LeavesUsed++
		}
		rep.DailyBreakdown = append(rep.DailyBreakdown, rec)
	}

	for i := range reports {
		reports[i].Productivity = Productivity(reports[i].TotalWorkedHours, reports[i].TotalExpectedHours)
	}
	return reports
}
