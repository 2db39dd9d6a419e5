package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/warp/attendance-analyzer/attendance"
	"github.com/xuri/excelize/v2"
)

const emptyHeader = "__EMPTY"

// ReadWorkbook decodes the first worksheet of an .xlsx workbook. The first
// row supplies the column labels; every later non-blank row becomes one
// RawRow. Cell values are read raw so dates and times keep their serial
// numbers.
func ReadWorkbook(r io.Reader) ([]attendance.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return readSheet(f, sheets[0])
}

func readSheet(f *excelize.File, sheet string) ([]attendance.RawRow, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read rows of %q: %v", ErrUnreadableWorkbook, sheet, err)
	}
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, ErrEmptyWorkbook
	}

	width := 0
	for _, values := range rows {
		width = max(width, len(values))
	}
	labels := headerLabels(rows[0], width)

	out := make([]attendance.RawRow, 0, len(rows)-1)
	for i, values := range rows[1:] {
		rowNum := i + 2
		raw := attendance.RawRow{}
		for col, value := range values {
			if value == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, &CellError{Sheet: sheet, Cell: fmt.Sprintf("R%dC%d", rowNum, col+1), Err: err}
			}
			typ, err := f.GetCellType(sheet, axis)
			if err != nil {
				return nil, &CellError{Sheet: sheet, Cell: axis, Err: err}
			}
			raw[labels[col]] = classify(value, typ)
		}
		if len(raw) == 0 {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

// headerLabels names every column. Labels are kept verbatim, including
// trailing spaces; blank headers become __EMPTY and repeats get the first
// _N suffix no other column already uses.
func headerLabels(header []string, width int) []string {
	labels := make([]string, width)
	seen := make(map[string]int, width)
	for i := range labels {
		label := ""
		if i < len(header) {
			label = header[i]
		}
		if label == "" {
			label = emptyHeader
		}
		if n, dup := seen[label]; dup {
			candidate := fmt.Sprintf("%s_%d", label, n)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				n++
				candidate = fmt.Sprintf("%s_%d", label, n)
			}
			seen[label] = n + 1
			label = candidate
		}
		seen[label] = 1
		labels[i] = label
	}
	return labels
}

// classify maps a raw cell value and its stored type onto the Cell union.
func classify(value string, typ excelize.CellType) attendance.Cell {
	switch typ {
	case excelize.CellTypeBool:
		if value == "1" || strings.EqualFold(value, "true") {
			return attendance.Text("TRUE")
		}
		return attendance.Text("FALSE")
	case excelize.CellTypeSharedString,
		excelize.CellTypeInlineString,
		excelize.CellTypeFormula,
		excelize.CellTypeError,
		excelize.CellTypeDate:
		return attendance.Text(value)
	default:
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return attendance.Number(n)
		}
		return attendance.Text(value)
	}
}

func isBlank(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
