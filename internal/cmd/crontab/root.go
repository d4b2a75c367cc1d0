// Package crontab is the cobra command tree for the crontab binary: the
// editing utility that reads, writes, and removes $HOME/.config/.crontab
// so the daemon has something to act on.
package crontab

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/somnisoft/crond/internal/crondpath"
)

var (
	editFlag   bool
	listFlag   bool
	removeFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "crontab [file]",
	Short: "View or update a user's crond schedule file",
	Long: `crontab installs, lists, or removes the schedule file that crond
reads. With no flags and a file argument (or stdin), it replaces the
schedule file's contents. -e opens the file in $EDITOR, -l prints it,
-r removes it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCrontab,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetOutput sets the output and error writers for test capture.
func SetOutput(out, errOut interface{ Write([]byte) (int, error) }) {
	if out != nil {
		rootCmd.SetOut(out)
	}
	if errOut != nil {
		rootCmd.SetErr(errOut)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&editFlag, "edit", "e", false, "edit the crontab with $EDITOR")
	rootCmd.Flags().BoolVarP(&listFlag, "list", "l", false, "print the crontab to stdout")
	rootCmd.Flags().BoolVarP(&removeFlag, "remove", "r", false, "remove the crontab")
}

func runCrontab(cmd *cobra.Command, args []string) error {
	switch {
	case exclusiveCount(editFlag, listFlag, removeFlag) > 1:
		return fmt.Errorf("-e, -l, and -r are mutually exclusive")
	case editFlag:
		return runEdit(cmd)
	case listFlag:
		return runList(cmd)
	case removeFlag:
		return runRemove(cmd)
	case len(args) == 1:
		return setFromFile(cmd, args[0])
	default:
		return setFromReader(cmd, cmd.InOrStdin())
	}
}

func exclusiveCount(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func runEdit(cmd *cobra.Command) error {
	path, err := crondpath.Schedule()
	if err != nil {
		return err
	}
	if err := ensureConfigDir(); err != nil {
		return err
	}

	tmpPath := path + ".edit"
	if err := copyExistingToTmp(path, tmpPath); err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	editCmd := exec.Command(editor, tmpPath)
	editCmd.Stdin = cmd.InOrStdin()
	editCmd.Stdout = cmd.OutOrStdout()
	editCmd.Stderr = cmd.ErrOrStderr()
	if err := editCmd.Run(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("editor %s did not exit cleanly: %w", editor, err)
	}

	return os.Rename(tmpPath, path)
}

func runList(cmd *cobra.Command) error {
	path, err := crondpath.Schedule()
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("no crontab: %s", path)
	}
	defer f.Close()

	_, err = io.Copy(cmd.OutOrStdout(), f)
	return err
}

func runRemove(_ *cobra.Command) error {
	path, err := crondpath.Schedule()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove: %s: %w", path, err)
	}
	return nil
}

func setFromFile(cmd *cobra.Command, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open: %s: %w", filePath, err)
	}
	defer f.Close()
	return setFromReader(cmd, f)
}

func setFromReader(_ *cobra.Command, r io.Reader) error {
	path, err := crondpath.Schedule()
	if err != nil {
		return err
	}
	if err := ensureConfigDir(); err != nil {
		return err
	}

	tmpPath := path + ".edit"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create: %s: %w", tmpPath, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write: %s: %w", tmpPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close: %s: %w", tmpPath, err)
	}

	return os.Rename(tmpPath, path)
}

func copyExistingToTmp(path, tmpPath string) error {
	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			out, err := os.Create(tmpPath)
			if err != nil {
				return fmt.Errorf("create: %s: %w", tmpPath, err)
			}
			return out.Close()
		}
		return fmt.Errorf("open: %s: %w", path, err)
	}
	defer in.Close()

	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create: %s: %w", tmpPath, err)
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// ensureConfigDir creates $HOME/.config, ignoring an already-exists
// error, matching the original's mkdir(...EEXIST-is-fine) behavior.
func ensureConfigDir() error {
	home, err := crondpath.Home()
	if err != nil {
		return err
	}
	if err := os.Mkdir(home+"/.config", 0o700); err != nil && !os.IsExist(err) {
		return fmt.Errorf("mkdir: %s/.config: %w", home, err)
	}
	return nil
}
