// Package analytics implements the aggregation and classification engine.
//
// All functions are pure: they never mutate their inputs and allocate
// fresh result structures, so concurrent callers need no synchronization.
package analytics

import (
	"fmt"
	"time"
)

// Granularity is the time-bucket size used to fold transactions into
// periods.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// PeriodKey maps a date to its bucket key for the granularity.
//
// Keys sort lexicographically in chronological order for all three
// formats. An unknown granularity falls back to daily keys, it is not
// an error.
func PeriodKey(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityWeekly:
		// ISO 8601 week numbering: Monday-start weeks, week 01 is the
		// week containing the year's first Thursday. The ISO year can
		// differ from the calendar year around January 1.
		year, week := date.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GranularityMonthly:
		return date.Format("2006-01")
	default:
		return date.Format("2006-01-02")
	}
}
