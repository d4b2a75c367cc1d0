package crond

import (
	"strconv"
	"strings"

	"github.com/somnisoft/crond/internal/schedule"
)

// toCronExpr renders a parsed job's five bit-sets back into the
// five-field syntax robfig/cron (via internal/cronx) understands, so
// preview can reuse the teacher's scheduler boundary instead of
// reimplementing "next N occurrences" against our own TimeSet model.
func toCronExpr(job *schedule.Job) string {
	return strings.Join([]string{
		fieldExpr(job.Minute, 0),
		fieldExpr(job.Hour, 0),
		fieldExpr(job.Day, schedule.DayOffset),
		fieldExpr(job.Month, schedule.MonthOffset),
		fieldExpr(job.Weekday, 0),
	}, " ")
}

// fieldExpr renders one TimeSet as "*" when every index is set, or a
// comma-separated list of values with offset added back (the job model
// stores day-of-month/month 0-based; the text syntax is 1-based).
func fieldExpr(set schedule.TimeSet, offset int) string {
	if set.Empty() {
		return "*"
	}

	allSet := true
	values := make([]string, 0, len(set))
	for i := 0; i < len(set); i++ {
		if set.IsSet(i) {
			values = append(values, strconv.Itoa(i+offset))
		} else {
			allSet = false
		}
	}
	if allSet {
		return "*"
	}
	return strings.Join(values, ",")
}
