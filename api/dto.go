/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the attendance domain model from the wire contract:
  - decimal hours become JSON numbers
  - missing clock times become null
  - keys are camelCase, matching the analyzer's frontend

NAMING CONVENTION:
  - *DTO: values embedded in responses
  - *Response: top-level response bodies

TYPES:
  Analysis:
    AnalysisResponse, EmployeeReportDTO, DailyRecordDTO

  Run log:
    RunDTO

  Scenarios:
    ScenarioDTO

SEE ALSO:
  - handlers.go: Uses these types
  - attendance/process.go: Result, the source of AnalysisResponse
*/
package api

import (
	"time"

	"github.com/warp/attendance-analyzer/attendance"
	"github.com/warp/attendance-analyzer/store/sqlite"
)

// =============================================================================
// ANALYSIS
// =============================================================================

// AnalysisResponse is the body returned for an analyzed upload. The field set
// is fixed: the frontend reads exactly these four keys.
type AnalysisResponse struct {
	AvailableMonths  []string            `json:"availableMonths"`
	OverallEmployees []EmployeeReportDTO `json:"overallEmployees"`
	MonthlyEmployees []EmployeeReportDTO `json:"monthlyEmployees"`
	SelectedMonth    *string             `json:"selectedMonth"`
}

// EmployeeReportDTO is one employee's summary.
type EmployeeReportDTO struct {
	EmployeeName       string           `json:"employeeName"`
	TotalExpectedHours float64          `json:"totalExpectedHours"`
	TotalWorkedHours   float64          `json:"totalWorkedHours"`
	LeavesUsed         int              `json:"leavesUsed"`
	AllowedLeaves      int              `json:"allowedLeaves"`
	Productivity       float64          `json:"productivity"`
	DailyBreakdown     []DailyRecordDTO `json:"dailyBreakdown"`
}

// DailyRecordDTO is one normalized attendance row.
type DailyRecordDTO struct {
	EmployeeName  string  `json:"employeeName"`
	Date          string  `json:"date"`
	InTime        *string `json:"inTime"`
	OutTime       *string `json:"outTime"`
	WorkedHours   float64 `json:"workedHours"`
	ExpectedHours float64 `json:"expectedHours"`
	IsLeave       bool    `json:"isLeave"`
}

// toAnalysisResponse converts a pipeline result. selectedMonth is echoed as
// null when the caller did not send one.
func toAnalysisResponse(res attendance.Result, monthSent bool) AnalysisResponse {
	resp := AnalysisResponse{
		AvailableMonths:  res.AvailableMonths,
		OverallEmployees: toReportDTOs(res.OverallEmployees),
		MonthlyEmployees: toReportDTOs(res.MonthlyEmployees),
	}
	if resp.AvailableMonths == nil {
		resp.AvailableMonths = []string{}
	}
	if monthSent {
		resp.SelectedMonth = strPtr(res.SelectedMonth)
	}
	return resp
}

func toReportDTOs(reports []attendance.EmployeeReport) []EmployeeReportDTO {
	dtos := make([]EmployeeReportDTO, len(reports))
	for i, rep := range reports {
		breakdown := make([]DailyRecordDTO, len(rep.DailyBreakdown))
		for j, rec := range rep.DailyBreakdown {
			breakdown[j] = toDailyRecordDTO(rec)
		}
		dtos[i] = EmployeeReportDTO{
			EmployeeName:       rep.EmployeeName,
			TotalExpectedHours: rep.TotalExpectedHours.InexactFloat64(),
			TotalWorkedHours:   rep.TotalWorkedHours.InexactFloat64(),
			LeavesUsed:         rep.LeavesUsed,
			AllowedLeaves:      rep.AllowedLeaves,
			Productivity:       rep.Productivity.InexactFloat64(),
			DailyBreakdown:     breakdown,
		}
	}
	return dtos
}

func toDailyRecordDTO(rec attendance.DailyRecord) DailyRecordDTO {
	return DailyRecordDTO{
		EmployeeName:  rec.EmployeeName,
		Date:          rec.Date,
		InTime:        timePtr(rec.InTime),
		OutTime:       timePtr(rec.OutTime),
		WorkedHours:   rec.WorkedHours.InexactFloat64(),
		ExpectedHours: rec.ExpectedHours.InexactFloat64(),
		IsLeave:       rec.IsLeave,
	}
}

func timePtr(t attendance.TimeOfDay) *string {
	if !t.Valid {
		return nil
	}
	return strPtr(t.Value)
}

// =============================================================================
// RUN LOG
// =============================================================================

// RunDTO is an analysis run in the history listing.
type RunDTO struct {
	ID            string   `json:"id"`
	FileName      string   `json:"fileName"`
	SelectedMonth *string  `json:"selectedMonth,omitempty"`
	RowCount      int      `json:"rowCount"`
	EmployeeCount int      `json:"employeeCount"`
	LeaveCount    int      `json:"leaveCount"`
	UnparsedDates int      `json:"unparsedDates"`
	Months        []string `json:"months"`
	CreatedAt     string   `json:"createdAt"`
}

func toRunDTO(r sqlite.AnalysisRun) RunDTO {
	dto := RunDTO{
		ID:            r.ID,
		FileName:      r.FileName,
		RowCount:      r.RowCount,
		EmployeeCount: r.EmployeeCount,
		LeaveCount:    r.LeaveCount,
		UnparsedDates: r.UnparsedDates,
		Months:        r.Months,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.SelectedMonth != "" {
		dto.SelectedMonth = strPtr(r.SelectedMonth)
	}
	if dto.Months == nil {
		dto.Months = []string{}
	}
	return dto
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a built-in demo dataset.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
