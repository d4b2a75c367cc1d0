// Package crond is the cobra command tree for the crond binary: running
// the daemon itself, plus the read-only validate and preview
// subcommands.
package crond

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/somnisoft/crond/internal/clog"
	"github.com/somnisoft/crond/internal/crondpath"
	"github.com/somnisoft/crond/internal/daemon"
	"github.com/somnisoft/crond/internal/lifecycle"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	verbose bool
	flock   bool
)

var rootCmd = &cobra.Command{
	Use:   "crond",
	Short: "crond runs a per-user cron daemon",
	Long: `crond inspects $HOME/.config/.crontab once a minute, runs any job
whose five time fields match the current local time, and mails any
output the job produces back to the owning user.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE:    runDaemon,
}

func runDaemon(_ *cobra.Command, _ []string) error {
	clog.SetVerbose(verbose)

	ctx, err := daemon.New()
	if err != nil {
		return err
	}
	ctx.FlockUpgrade = flock

	lock := lifecycle.NewLock(crondpath.Lock(ctx.SchedulePath), flock)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	sig := lifecycle.NewSignals()
	defer sig.Stop()

	code := daemon.Run(context.Background(), ctx, sig)
	if code != 0 {
		return fmt.Errorf("crond exited with status %d", code)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flock, "flock", false, "lock with an advisory flock instead of create-exclusive, so a lock file left by a crashed instance does not block startup")
}

// SetOutput sets the output and error writers for the root command, for
// test capture.
func SetOutput(out, errOut interface{ Write([]byte) (int, error) }) {
	if out != nil {
		rootCmd.SetOut(out)
	}
	if errOut != nil {
		rootCmd.SetErr(errOut)
	}
}
