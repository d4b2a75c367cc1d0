package schedule

import (
	"errors"
	"strings"
)

// ErrRejected is returned by ParseLine when a line that looks like a job
// (not a comment, not blank) fails to parse. Per spec, rejected lines
// produce no job; callers that want to surface a diagnostic should wrap
// this error with line context.
var ErrRejected = errors.New("schedule: line rejected")

// ParseLine parses one textual schedule line (with any trailing newline
// already stripped) and returns the job it describes.
//
// A comment line (first non-blank byte '#') or an empty/blank line
// produces (nil, nil): nothing is appended, and this is not an error.
// A line that cannot be parsed under either the five-field or preset
// grammar returns (nil, ErrRejected).
func ParseLine(line string) (*Job, error) {
	idx := 0
	skipBlank(line, &idx)
	if idx >= len(line) || line[idx] == '#' {
		return nil, nil
	}

	job := newJob()
	if line[idx] == '@' {
		idx++
		apply, tokenLen, ok := matchPreset(line[idx:])
		if !ok {
			return nil, ErrRejected
		}
		apply(job)
		idx += tokenLen
	} else {
		fields := []struct {
			set    TimeSet
			offset int
		}{
			{job.Minute, 0},
			{job.Hour, 0},
			{job.Day, DayOffset},
			{job.Month, MonthOffset},
			{job.Weekday, 0},
		}
		for _, f := range fields {
			if err := parseFieldInt(line, &idx, f.set, f.offset); err != nil {
				return nil, err
			}
		}
	}

	skipBlank(line, &idx)
	command, payload := parseCommandSection(line, idx)
	job.Command = command
	job.StdinPayload = payload

	if !job.valid() {
		return nil, ErrRejected
	}
	return job, nil
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// skipBlank advances *idx past any run of space/tab characters and
// returns how many it skipped.
func skipBlank(line string, idx *int) int {
	n := 0
	for *idx < len(line) && isBlank(line[*idx]) {
		*idx++
		n++
	}
	return n
}

// scanDigits reads at most two decimal digit characters starting at
// *idx, advancing *idx past them, and returns their value and count.
func scanDigits(line string, idx *int) (value, count int) {
	for count < 2 && *idx < len(line) && isDigit(line[*idx]) {
		value = value*10 + int(line[*idx]-'0')
		*idx++
		count++
	}
	return value, count
}

// parseFieldInt parses one time field (a '*', a single value, a range,
// or a comma-separated list of values/ranges) into field, then requires
// at least one trailing blank. offset is subtracted from every parsed
// value before it is checked against field's cardinality (day-of-month
// and month are 1-based in source text; the rest are 0-based).
//
// A range whose upper endpoint is at or beyond field's cardinality is
// rejected outright rather than clamped — the source clamps to the
// cardinality itself and overruns its array by one; this implementation
// does not replicate that bug (spec §4.2, §9).
func parseFieldInt(line string, idx *int, field TimeSet, offset int) error {
	card := len(field)

	if *idx < len(line) && line[*idx] == '*' {
		*idx++
		field.SetRange(0, card-1)
	} else {
		for {
			d1, n1 := scanDigits(line, idx)
			if n1 == 0 {
				return ErrRejected
			}

			hasRange := false
			d2 := 0
			if *idx < len(line) && line[*idx] == '-' {
				*idx++
				var n2 int
				d2, n2 = scanDigits(line, idx)
				if n2 == 0 {
					return ErrRejected
				}
				hasRange = true
			}

			v1 := d1 - offset
			if v1 < 0 || v1 >= card {
				return ErrRejected
			}
			if !hasRange {
				field.Set(v1)
			} else {
				v2 := d2 - offset
				if v2 < 0 {
					return ErrRejected
				}
				if v1 > v2 {
					v1, v2 = v2, v1
				}
				if v2 >= card {
					return ErrRejected
				}
				field.SetRange(v1, v2)
			}

			if *idx < len(line) && line[*idx] == ',' {
				*idx++
				continue
			}
			break
		}
	}

	if skipBlank(line, idx) == 0 {
		return ErrRejected
	}
	return nil
}

// presetEntry maps a set of case-sensitive prefix tokens to the bit-sets
// they expand to.
type presetEntry struct {
	tokens []string
	apply  func(*Job)
}

var presets = []presetEntry{
	{
		tokens: []string{"yearly", "annually"},
		apply: func(j *Job) {
			j.Minute.Set(0)
			j.Hour.Set(0)
			j.Day.Set(0)
			j.Month.Set(0)
			j.Weekday.SetRange(0, WeekdayCard-1)
		},
	},
	{
		tokens: []string{"monthly"},
		apply: func(j *Job) {
			j.Minute.Set(0)
			j.Hour.Set(0)
			j.Day.Set(0)
			j.Month.SetRange(0, MonthCard-1)
			j.Weekday.SetRange(0, WeekdayCard-1)
		},
	},
	{
		tokens: []string{"weekly"},
		apply: func(j *Job) {
			j.Minute.Set(0)
			j.Hour.Set(0)
			j.Day.SetRange(0, DayCard-1)
			j.Month.SetRange(0, MonthCard-1)
			j.Weekday.Set(0)
		},
	},
	{
		tokens: []string{"daily", "midnight"},
		apply: func(j *Job) {
			j.Minute.Set(0)
			j.Hour.Set(0)
			j.Day.SetRange(0, DayCard-1)
			j.Month.SetRange(0, MonthCard-1)
			j.Weekday.SetRange(0, WeekdayCard-1)
		},
	},
	{
		tokens: []string{"hourly"},
		apply: func(j *Job) {
			j.Minute.Set(0)
			j.Hour.SetRange(0, HourCard-1)
			j.Day.SetRange(0, DayCard-1)
			j.Month.SetRange(0, MonthCard-1)
			j.Weekday.SetRange(0, WeekdayCard-1)
		},
	},
}

// matchPreset finds the first preset whose token is a prefix of rest, per
// the table in spec §4.2 (first match wins, case-sensitive).
func matchPreset(rest string) (apply func(*Job), tokenLen int, ok bool) {
	for _, p := range presets {
		for _, tok := range p.tokens {
			if strings.HasPrefix(rest, tok) {
				return p.apply, len(tok), true
			}
		}
	}
	return nil, 0, false
}

// parseCommandSection splits the remainder of the line (from idx to EOL)
// into a command and an optional stdin payload, on the first unescaped
// '%'.
func parseCommandSection(line string, idx int) (command string, payload []byte) {
	rest := line[idx:]
	splitPos := -1
	for i := 0; i < len(rest); i++ {
		if rest[i] == '%' && (i == 0 || rest[i-1] != '\\') {
			splitPos = i
			break
		}
	}
	if splitPos == -1 {
		return rest, nil
	}
	return rest[:splitPos], processPayload(rest[splitPos+1:])
}

// processPayload applies the stdin payload's escape transformations
// (\x -> x, unescaped % -> newline) in one left-to-right pass and
// appends an unconditional trailing newline.
func processPayload(raw string) []byte {
	out := make([]byte, 0, len(raw)+1)
	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw):
			out = append(out, raw[i+1])
			i += 2
		case c == '%':
			out = append(out, '\n')
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return append(out, '\n')
}
