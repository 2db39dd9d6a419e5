/*
Package sheet moves attendance data in and out of .xlsx workbooks.

PURPOSE:
  Reading: decode the first worksheet of an uploaded workbook into
  attendance.RawRow values, keyed by the header row.
  Writing: render an attendance.Result as a downloadable report workbook.

LIBRARIES:
  github.com/xuri/excelize/v2  reading (typed raw cell access)
  github.com/tealeg/xlsx       writing the report

SEE ALSO:
  - attendance/cell.go: the Cell union produced here
  - api/handlers.go: Upload and Export endpoints
*/
package sheet

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSheets is returned for a workbook without worksheets.
	ErrNoSheets = errors.New("no sheets found in workbook")

	// ErrEmptyWorkbook is returned when the first sheet has no header row.
	ErrEmptyWorkbook = errors.New("first sheet has no header row")

	// ErrUnreadableWorkbook wraps failures of the workbook decoder.
	ErrUnreadableWorkbook = errors.New("unreadable workbook")
)

// CellError reports a cell the reader could not inspect.
type CellError struct {
	Sheet string
	Cell  string
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("sheet %q cell %s: %v", e.Sheet, e.Cell, e.Err)
}

func (e *CellError) Unwrap() []error {
	return []error{ErrUnreadableWorkbook, e.Err}
}
