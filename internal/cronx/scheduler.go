// Package cronx is the daemon's single boundary onto robfig/cron: the
// only place `crond preview` (and nothing else — the daemon's own tick
// loop matches jobs itself, see internal/match) asks an external library
// to compute run times for a job sourced from internal/schedule.
package cronx

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler calculates next run times for cron schedules.
type Scheduler interface {
	// Next calculates the next N occurrences of a cron expression starting from the given time.
	Next(expression string, from time.Time, count int) ([]time.Time, error)
}

type scheduler struct {
	cronParser cron.Parser
}

// NewScheduler creates a new Scheduler instance. Expressions passed to it
// come from internal/cmd/crond's toCronExpr, which only ever emits plain
// numeric fields, comma lists, and "*" — so a single robfig/cron parser
// instance covers every case this package needs to handle.
func NewScheduler() Scheduler {
	return &scheduler{
		cronParser: cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
		),
	}
}

// Next implements the Scheduler interface.
func (s *scheduler) Next(expression string, from time.Time, count int) ([]time.Time, error) {
	sched, err := s.cronParser.Parse(expression)
	if err != nil {
		return nil, simplifyParseError(err)
	}

	times := make([]time.Time, 0, count)
	current := from
	for i := 0; i < count; i++ {
		current = sched.Next(current)
		times = append(times, current)
	}

	return times, nil
}

// simplifyParseError rewords robfig/cron's parse errors into the messages
// this package's callers (and their tests) expect, independent of
// robfig/cron's own wording.
func simplifyParseError(err error) error {
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "expected exactly 5 fields"):
		return fmt.Errorf("expected 5 fields")
	case strings.Contains(errStr, "above maximum"), strings.Contains(errStr, "below minimum"):
		return fmt.Errorf("value out of range: %w", err)
	default:
		return fmt.Errorf("failed to parse expression: %w", err)
	}
}
