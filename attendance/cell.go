/*
Package attendance turns raw attendance export rows into employee reports.

PURPOSE:
  This package is the normalization-and-aggregation pipeline. It knows
  nothing about spreadsheets, HTTP or storage: it receives rows that were
  already decoded into labelled cells, and returns reports.

KEY CONCEPTS IN THIS FILE (cell.go):
  - Cell: a closed tagged union (Absent | Text | Number) for one raw value
  - RawRow: column label -> Cell, one per source data row

PIPELINE:
  RawRow --BuildRecord--> DailyRecord --Aggregate--> EmployeeReport
                                     \--AvailableMonths--> []"YYYY-MM"

DESIGN PRINCIPLES:
  1. Permissive: a row is never rejected. Missing or odd fields fall back to
     defaults (empty name, passthrough date, zero hours).
  2. Precision: hours use decimal.Decimal so totals equal the sum of their
     parts exactly.
  3. Purity: every call allocates its own state; nothing is shared between
     calls, so concurrent requests need no locking.

SEE ALSO:
  - fields.go:   Field Resolver
  - temporal.go: serial date/time decoding
  - hours.go:    worked/expected hours
  - record.go:   DailyRecord builder
  - report.go:   Aggregator
  - process.go:  the single entry point, Process
*/
package attendance

import (
	"strconv"
)

// =============================================================================
// CELL - One dynamically-typed spreadsheet value
// =============================================================================

// CellKind identifies which variant a Cell holds.
type CellKind int

const (
	KindAbsent CellKind = iota
	KindText
	KindNumber
)

func (k CellKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "absent"
	}
}

// Cell is a raw value read from a source row. The zero value is Absent.
type Cell struct {
	kind CellKind
	text string
	num  float64
}

// Absent returns a cell for a column the row does not have.
func Absent() Cell { return Cell{} }

// Text returns a text cell. Empty text is still present.
func Text(s string) Cell { return Cell{kind: KindText, text: s} }

// Number returns a numeric cell, such as a serial date or day fraction.
func Number(f float64) Cell { return Cell{kind: KindNumber, num: f} }

// Kind reports which variant the cell holds.
func (c Cell) Kind() CellKind { return c.kind }

// IsAbsent reports whether the cell is missing from its row.
func (c Cell) IsAbsent() bool { return c.kind == KindAbsent }

// TextValue returns the text payload and whether the cell holds text.
func (c Cell) TextValue() (string, bool) { return c.text, c.kind == KindText }

// NumberValue returns the numeric payload and whether the cell holds a number.
func (c Cell) NumberValue() (float64, bool) { return c.num, c.kind == KindNumber }

// String renders the cell the way a spreadsheet user would read it back:
// numbers in their shortest decimal form, absent cells as "".
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// =============================================================================
// RAW ROW
// =============================================================================

// RawRow maps a column label to its cell. Labels are kept verbatim, so
// "Employee Name" and "Employee Name " are different keys. A label that is
// not in the map reads as Absent.
type RawRow map[string]Cell

// Get returns the cell stored under label, or Absent.
func (r RawRow) Get(label string) Cell {
	if r == nil {
		return Absent()
	}
	return r[label]
}
