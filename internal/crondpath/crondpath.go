// Package crondpath resolves the filesystem paths crond and crontab share:
// the invoking user's home directory, their schedule file, and the
// schedule file's lock file. None of this is hard engineering (spec calls
// it "trivial string joins"); it stays on the standard library.
package crondpath

import (
	"os"
	"os/user"

	"github.com/somnisoft/crond/internal/cronerr"
)

// scheduleRelPath is the schedule file location relative to the home
// directory.
const scheduleRelPath = "/.config/.crontab"

// lockSuffix is appended to the schedule path to derive the lock path.
const lockSuffix = ".lock"

// Home returns the invoking user's home directory, preferring $HOME and
// falling back to a password-database lookup by effective user ID.
func Home() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	u, err := user.Current()
	if err != nil || u.HomeDir == "" {
		return "", cronerr.ErrNoHome
	}
	return u.HomeDir, nil
}

// Schedule returns the path to the current user's schedule file,
// $HOME/.config/.crontab.
func Schedule() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return home + scheduleRelPath, nil
}

// Lock returns the lock file path for a given schedule path:
// <schedule-path>.lock.
func Lock(schedulePath string) string {
	return schedulePath + lockSuffix
}

// Shell returns the shell used to run jobs: $SHELL, or /bin/sh if unset.
func Shell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// Recipient returns the pre-formatted user@host mail recipient address.
// The local part prefers $LOGNAME, falling back to a password-database
// lookup, falling back to empty; the host part is the machine hostname,
// falling back to empty on failure.
func Recipient() string {
	return userName() + "@" + hostName()
}

func userName() string {
	if name := os.Getenv("LOGNAME"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func hostName() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}
