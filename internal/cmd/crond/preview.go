package crond

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/somnisoft/crond/internal/crondpath"
	"github.com/somnisoft/crond/internal/cronx"
	"github.com/somnisoft/crond/internal/schedule"
)

var previewCount int

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show the next scheduled run times for every job in a schedule file",
	Long: `preview parses a schedule file (the user's own by default) and, for
every accepted job, prints the next --count run times computed from its
five time fields.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVarP(&previewCount, "count", "c", 10, "number of runs to show per job (1-100)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if previewCount < 1 || previewCount > 100 {
		return fmt.Errorf("count must be between 1 and 100")
	}

	path, err := previewPath(args)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	store := schedule.NewStore()
	if _, err := schedule.LoadReader(f, store); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	scheduler := cronx.NewScheduler()
	now := time.Now()

	for i, job := range store.Jobs() {
		j := job
		expr := toCronExpr(&j)
		times, err := scheduler.Next(expr, now, previewCount)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s): failed to compute next runs: %v\n", i+1, j.Command, expr, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s)\n", i+1, j.Command, expr)
		for n, t := range times {
			fmt.Fprintf(cmd.OutOrStdout(), "   %d. %s\n", n+1, t.Format("2006-01-02 15:04:05 MST"))
		}
	}

	return nil
}

func previewPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return crondpath.Schedule()
}
