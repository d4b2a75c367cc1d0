// Package daemon implements the crond main loop: once a minute, reparse
// the schedule file if it changed, run every job whose time fields match
// now, then sleep until the top of the next minute.
package daemon

import (
	"context"
	"os"
	"time"

	"github.com/somnisoft/crond/internal/clog"
	"github.com/somnisoft/crond/internal/crondpath"
	"github.com/somnisoft/crond/internal/lifecycle"
	"github.com/somnisoft/crond/internal/match"
	"github.com/somnisoft/crond/internal/runner"
	"github.com/somnisoft/crond/internal/schedule"
	"github.com/somnisoft/crond/internal/watch"
)

// Context holds everything one daemon run needs: the resolved paths, the
// schedule state, and the lifecycle collaborators. It is the Go analogue
// of the original's struct crond.
type Context struct {
	SchedulePath string
	Shell        string
	Recipient    string
	Verbose      bool
	FlockUpgrade bool

	// Mailer overrides the default external-program mailer; nil selects
	// runner.ExternalMailer.
	Mailer runner.Mailer

	// Now overrides time.Now for deterministic tests; nil selects
	// time.Now.
	Now func() time.Time

	store    *schedule.Store
	detector *watch.Detector
}

// New builds a Context for the current user, resolving $HOME and $SHELL,
// returning an error if $HOME cannot be determined.
func New() (*Context, error) {
	schedulePath, err := crondpath.Schedule()
	if err != nil {
		return nil, err
	}
	return &Context{
		SchedulePath: schedulePath,
		Shell:        crondpath.Shell(),
		Recipient:    crondpath.Recipient(),
	}, nil
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// reparseIfChanged reloads the schedule store from disk if the schedule
// file's modification time (or existence) has changed since the last
// check, per spec §4.4. A stat error is logged and leaves the store as it
// was for this tick. Once a change is seen, the store is emptied when the
// file cannot be opened (including when it was removed) and, through
// LoadReader, when reading it fails part-way; no jobs run until the next
// observed change.
func (c *Context) reparseIfChanged() {
	if c.detector == nil {
		c.detector = watch.NewDetector(c.SchedulePath)
	}
	if c.store == nil {
		c.store = schedule.NewStore()
	}

	changed, err := c.detector.Changed()
	if err != nil {
		clog.Default().Warn("stat crontab failed", "path", c.SchedulePath, "error", err)
		return
	}
	if !changed {
		return
	}

	f, err := os.Open(c.SchedulePath)
	if err != nil {
		if !os.IsNotExist(err) {
			clog.Default().Warn("open crontab failed", "path", c.SchedulePath, "error", err)
		}
		c.store.Reset()
		return
	}
	defer f.Close()

	results, err := schedule.LoadReader(f, c.store)
	if err != nil {
		clog.Default().Warn("read crontab failed", "path", c.SchedulePath, "error", err)
		return
	}
	for _, r := range results {
		if !r.Accepted {
			clog.Default().Warn("rejected crontab line", "line", r.LineNumber, "error", r.Err)
		}
	}
}

// runDueJobs launches every job in the store whose time fields match now.
func (c *Context) runDueJobs(ctx context.Context, now time.Time) {
	cfg := runner.Config{Shell: c.Shell, Recipient: c.Recipient, Mailer: c.mailer()}
	for _, job := range c.store.Jobs() {
		j := job
		if match.ShouldRun(&j, now) {
			runner.Run(ctx, cfg, runner.Job{Command: j.Command, StdinPayload: j.StdinPayload})
		}
	}
}

func (c *Context) mailer() runner.Mailer {
	if c.Mailer != nil {
		return c.Mailer
	}
	return runner.ExternalMailer{}
}

// sleepDuration returns how long to sleep so the next tick lands at the
// top of the next minute: 60-now.Second(), so 60s at :00 and 15s at :45.
// The one-second floor mirrors the original's "sleep_sec == 0 =>
// sleep_sec = 1" guard for a leap-second tm_sec of 60; time.Time.Second()
// never exceeds 59, so the result here is always between 1 and 60 seconds.
func sleepDuration(now time.Time) time.Duration {
	remaining := 60 - now.Second()
	if remaining == 0 {
		remaining = 1
	}
	return time.Duration(remaining) * time.Second
}

// Run executes the main loop until ctx is cancelled or sig reports a
// shutdown request, matching the original's crond_should_exit-gated
// while loop (spec §4.9):
//
//  1. reparse the schedule if changed
//  2. compute now
//  3. run every due job
//  4. recompute now (job launches can themselves consume wall-clock time)
//  5. if not exiting, sleep until the next minute, interruptibly on
//     reload or shutdown signals
//  6. loop
//
// Run returns 0 on a clean shutdown.
func Run(ctx context.Context, c *Context, sig *lifecycle.Signals) int {
	for !sig.ShouldExit() {
		select {
		case <-ctx.Done():
			return 0
		default:
		}

		c.reparseIfChanged()
		now := c.now()
		c.runDueJobs(ctx, now)
		now = c.now()

		if sig.ShouldExit() {
			break
		}

		clog.Default().Debug("sleeping", "seconds", sleepDuration(now).Seconds())
		timer := time.NewTimer(sleepDuration(now))
		select {
		case <-timer.C:
		case <-sig.Reload:
			timer.Stop()
		case <-ctx.Done():
			timer.Stop()
			return 0
		}
	}
	return 0
}
