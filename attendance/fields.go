package attendance

import "strings"

// Column label candidates, in priority order. Trailing-space variants are
// listed explicitly because exported headers are not consistent about them.
var (
	NameLabels    = []string{"Employee Name", "Employee Name ", "Employee", "Name"}
	DateLabels    = []string{"Date", "Date "}
	InTimeLabels  = []string{"In-Time", "In-Time ", "In Time"}
	OutTimeLabels = []string{"Out-Time", "Out-Time ", "Out Time"}
)

// Resolve returns the cell of the first label present in row with a
// non-absent value. A present-but-empty text cell counts as present.
func Resolve(row RawRow, labels ...string) Cell {
	for _, label := range labels {
		if c := row.Get(label); !c.IsAbsent() {
			return c
		}
	}
	return Absent()
}

// ResolveText is Resolve rendered as text; "" when nothing matched.
func ResolveText(row RawRow, labels ...string) string {
	return Resolve(row, labels...).String()
}

func resolveName(row RawRow) string {
	return strings.TrimSpace(ResolveText(row, NameLabels...))
}
