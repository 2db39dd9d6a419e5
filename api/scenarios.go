/*
scenarios.go - Built-in demo datasets

PURPOSE:

	Provides canned attendance exports that run through the same pipeline
	as an upload. Useful for demos and for checking a deployment without a
	workbook at hand. Nothing is written to the run log.

AVAILABLE SCENARIOS:

	serial-export:  numeric serial dates and times, as most exports store them
	leave-week:     missing clock times on working days and on a Sunday
	two-employees:  two people over January and February (try ?month=2024-01)
	messy-headers:  inconsistent headers, a blank name, an unparseable date

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/two-employees/run?month=2024-01

ADDING NEW SCENARIOS:
 1. Add an entry to 'scenarios' with ID, name, description and rows
 2. Rows use the same labels a real export would

SEE ALSO:
  - handlers.go: Upload, which shares the response format
  - attendance/fields.go: accepted column labels
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/attendance-analyzer/attendance"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ID          string
	Name        string
	Description string
	Rows        func() []attendance.RawRow
}

var scenarios = []scenario{
	{
		ID:          "serial-export",
		Name:        "Serial Export",
		Description: "Dates and clock times stored as spreadsheet serial numbers",
		Rows:        serialExportRows,
	},
	{
		ID:          "leave-week",
		Name:        "Leave Week",
		Description: "Missing clock times on working days count as leave; Sundays never do",
		Rows:        leaveWeekRows,
	},
	{
		ID:          "two-employees",
		Name:        "Two Employees",
		Description: "Two employees across January and February 2024",
		Rows:        twoEmployeesRows,
	},
	{
		ID:          "messy-headers",
		Name:        "Messy Headers",
		Description: "Trailing-space headers, a blank name and an unparseable date",
		Rows:        messyHeaderRows,
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns available demo datasets.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = ScenarioDTO{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Rows:        len(s.Rows()),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario analyzes a demo dataset. The month comes from ?month=.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	s, ok := findScenario(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	month, monthSent := "", false
	if values, present := r.URL.Query()["month"]; present && len(values) > 0 {
		month, monthSent = values[0], true
	}

	res := attendance.Process(s.Rows(), month)
	writeJSON(w, http.StatusOK, toAnalysisResponse(res, monthSent))
}

// =============================================================================
// DATASETS
// =============================================================================

func textRow(nameLabel, name, date, in, out string) attendance.RawRow {
	r := attendance.RawRow{
		nameLabel: attendance.Text(name),
		"Date":    attendance.Text(date),
	}
	if in != "" {
		r["In-Time"] = attendance.Text(in)
	}
	if out != "" {
		r["Out-Time"] = attendance.Text(out)
	}
	return r
}

func serialExportRows() []attendance.RawRow {
	serial := func(name string, date, in, out float64) attendance.RawRow {
		return attendance.RawRow{
			"Employee": attendance.Text(name),
			"Date":     attendance.Number(date),
			"In-Time":  attendance.Number(in),
			"Out-Time": attendance.Number(out),
		}
	}
	return []attendance.RawRow{
		serial("Asha", 45306, 0.375, 0.75),      // Mon 2024-01-15
		serial("Asha", 45307, 0.375, 0.729167),  // Tue 2024-01-16, 17:30
		serial("Asha", 45311, 0.375, 0.75),      // Sat 2024-01-20
		serial("Asha", 45313, 0.416667, 0.6875), // Mon 2024-01-22, 10:00-16:30
	}
}

func leaveWeekRows() []attendance.RawRow {
	return []attendance.RawRow{
		textRow("Employee Name", "Raj", "2024-01-20", "09:00", "13:00"),
		textRow("Employee Name", "Raj", "2024-01-21", "", ""),
		textRow("Employee Name", "Raj", "2024-01-22", "", "18:00"),
		textRow("Employee Name", "Raj", "2024-01-23", "", ""),
		textRow("Employee Name", "Raj", "2024-01-24", "22:00", "02:00"),
	}
}

func twoEmployeesRows() []attendance.RawRow {
	return []attendance.RawRow{
		textRow("Employee Name", "Asha", "2024-01-22", "09:00", "18:00"),
		textRow("Employee Name", "Raj", "2024-01-22", "08:00", "16:30"),
		textRow("Employee Name", "Asha", "2024-01-23", "", "18:00"),
		textRow("Employee Name", "Raj", "2024-01-28", "", ""),
		textRow("Employee Name", "Asha", "2024-01-27", "09:00", "13:00"),
		textRow("Employee Name", "Raj", "2024-01-29", "10:00", "14:00"),
		textRow("Employee Name", "Asha", "2024-02-05", "09:00", "17:30"),
		textRow("Employee Name", "Raj", "2024-02-06", "", ""),
	}
}

func messyHeaderRows() []attendance.RawRow {
	return []attendance.RawRow{
		textRow("Employee Name ", " Meera ", "2024-03-04", "09:00", "17:30"),
		textRow("Name", "Meera", "2024-03-05", "9:15", "17:45"),
		textRow("Employee Name", "", "2024-03-05", "09:00", ""),
		textRow("Employee", "Meera", "03/06/2024", "09:00", "17:00"),
	}
}
