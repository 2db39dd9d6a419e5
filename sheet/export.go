package sheet

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"github.com/warp/attendance-analyzer/attendance"
)

// Report sheet names.
const (
	SheetOverall = "Overall"
	SheetMonthly = "Monthly"
	SheetDaily   = "Daily"
)

var (
	reportHeaders = []string{"Employee", "Expected Hours", "Worked Hours", "Leaves Used", "Allowed Leaves", "Productivity (%)"}
	dailyHeaders  = []string{"Employee", "Date", "In-Time", "Out-Time", "Worked Hours", "Expected Hours", "Leave"}
)

// WriteReport renders res as an .xlsx workbook. The Monthly sheet is only
// written when a month was selected.
func WriteReport(w io.Writer, res attendance.Result) error {
	file := xlsx.NewFile()

	if err := addReportSheet(file, SheetOverall, res.OverallEmployees); err != nil {
		return err
	}
	if res.SelectedMonth != "" {
		if err := addReportSheet(file, SheetMonthly, res.MonthlyEmployees); err != nil {
			return err
		}
	}
	if err := addDailySheet(file, res.Records); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func addReportSheet(file *xlsx.File, name string, reports []attendance.EmployeeReport) error {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", name, err)
	}
	addHeader(sheet, reportHeaders)

	for _, rep := range reports {
		row := sheet.AddRow()
		row.AddCell().SetString(rep.EmployeeName)
		addHours(row, rep.TotalExpectedHours)
		addHours(row, rep.TotalWorkedHours)
		row.AddCell().SetInt(rep.LeavesUsed)
		row.AddCell().SetInt(rep.AllowedLeaves)
		addHours(row, rep.Productivity)
	}
	return nil
}

func addDailySheet(file *xlsx.File, records []attendance.DailyRecord) error {
	sheet, err := file.AddSheet(SheetDaily)
	if err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", SheetDaily, err)
	}
	addHeader(sheet, dailyHeaders)

	for _, rec := range records {
		row := sheet.AddRow()
		row.AddCell().SetString(rec.EmployeeName)
		row.AddCell().SetString(rec.Date)
		row.AddCell().SetString(rec.InTime.String())
		row.AddCell().SetString(rec.OutTime.String())
		addHours(row, rec.WorkedHours)
		addHours(row, rec.ExpectedHours)
		leave := "No"
		if rec.IsLeave {
			leave = "Yes"
		}
		row.AddCell().SetString(leave)
	}
	return nil
}

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}

func addHours(row *xlsx.Row, d decimal.Decimal) {
	row.AddCell().SetFloat(d.InexactFloat64())
}
