// Package match decides whether a schedule.Job is due to run at a given
// local time.
package match

import (
	"time"

	"github.com/somnisoft/crond/internal/schedule"
)

// ShouldRun reports whether job is due to run at t (evaluated in t's own
// location, so callers should pass a value already converted with
// t.Local()). Day-of-month and month fields are stored 0-based
// (schedule.DayOffset/MonthOffset already subtracted at parse time), so
// they are corrected back here against time.Time's 1-based Day() and
// Month().
func ShouldRun(job *schedule.Job, t time.Time) bool {
	return job.Weekday.IsSet(int(t.Weekday())) &&
		job.Month.IsSet(int(t.Month())-schedule.MonthOffset) &&
		job.Day.IsSet(t.Day()-schedule.DayOffset) &&
		job.Hour.IsSet(t.Hour()) &&
		job.Minute.IsSet(t.Minute())
}
