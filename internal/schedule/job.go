// Package schedule implements the crond schedule file: its grammar (the
// classical five-field syntax plus named presets), the in-memory job
// descriptor it produces, and the append-only store that holds them.
package schedule

// TimeSet is a fixed-size dense bit-set over one time field's indices.
// Cron fields are small (at most 60 entries), so a dense bool array is
// simpler and cheaper than a bitmap and matches the field's own
// cardinality one-to-one.
type TimeSet []bool

// NewTimeSet allocates a TimeSet with the given cardinality, all bits
// clear.
func NewTimeSet(cardinality int) TimeSet {
	return make(TimeSet, cardinality)
}

// SetRange enables every index in [start, end], inclusive. The caller
// must ensure end < len(t); parser.go enforces this before calling
// SetRange so the known off-by-one in the original source (clamping the
// upper bound to the cardinality itself) is never reproduced here.
func (t TimeSet) SetRange(start, end int) {
	for i := start; i <= end; i++ {
		t[i] = true
	}
}

// Set enables a single index.
func (t TimeSet) Set(i int) {
	t[i] = true
}

// IsSet reports whether index i is enabled.
func (t TimeSet) IsSet(i int) bool {
	return t[i]
}

// Empty reports whether no index is enabled.
func (t TimeSet) Empty() bool {
	for _, v := range t {
		if v {
			return false
		}
	}
	return true
}

// Field cardinalities and source offsets, per spec §3.
const (
	MinuteCard  = 60
	HourCard    = 24
	DayCard     = 31
	MonthCard   = 12
	WeekdayCard = 7

	DayOffset   = 1 // day-of-month is 1-based in the source text
	MonthOffset = 1 // month is 1-based in the source text
)

// Job is one parsed schedule entry: five disjoint bit-sets, a command,
// and an optional stdin payload.
type Job struct {
	Minute  TimeSet
	Hour    TimeSet
	Day     TimeSet
	Month   TimeSet
	Weekday TimeSet

	// Command is the verbatim shell command string.
	Command string

	// StdinPayload is fed to the job's standard input. It is nil/empty
	// when the line had no '%' payload section.
	StdinPayload []byte
}

// newJob allocates a Job with all five bit-sets at their field
// cardinality, all bits clear.
func newJob() *Job {
	return &Job{
		Minute:  NewTimeSet(MinuteCard),
		Hour:    NewTimeSet(HourCard),
		Day:     NewTimeSet(DayCard),
		Month:   NewTimeSet(MonthCard),
		Weekday: NewTimeSet(WeekdayCard),
	}
}

// valid reports whether every bit-set has at least one enabled index, per
// the job invariant in spec §3: a job with any all-false set is never
// matched and must be rejected.
func (j *Job) valid() bool {
	return !j.Minute.Empty() && !j.Hour.Empty() && !j.Day.Empty() &&
		!j.Month.Empty() && !j.Weekday.Empty()
}
