package crond

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/somnisoft/crond/internal/schedule"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a schedule file for rejected lines",
	Long: `validate parses a schedule file (the user's own by default) and
prints one diagnostic line per rejected entry, exiting non-zero if any
line was rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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
	results, err := schedule.LoadReader(f, store)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rejected := 0
	for _, r := range results {
		if !r.Accepted {
			rejected++
			fmt.Fprintf(cmd.OutOrStdout(), "line %d: rejected: %v\n", r.LineNumber, r.Err)
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%s: %d rejected line(s)", path, rejected)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d job(s) accepted\n", path, store.Len())
	return nil
}
