package attendance

import (
	"sort"
	"strings"
)

const monthTokenLen = len("2006-01")

// AvailableMonths returns the distinct YYYY-MM prefixes of the record dates,
// sorted ascending. Records without a date contribute nothing.
func AvailableMonths(records []DailyRecord) []string {
	seen := make(map[string]struct{})
	months := make([]string, 0)
	for _, rec := range records {
		m := rec.Month()
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// FilterByMonth keeps the records whose date text starts with month. The
// token is matched as a plain prefix; no date parsing happens here.
func FilterByMonth(records []DailyRecord, month string) []DailyRecord {
	filtered := make([]DailyRecord, 0)
	for _, rec := range records {
		if strings.HasPrefix(rec.Date, month) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
