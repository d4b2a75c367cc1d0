package crond

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"preview"})
	require.NoError(t, err)
	assert.Equal(t, "preview", cmd.Name())
}

func TestPreviewListsRunsForEveryJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crontab")
	require.NoError(t, os.WriteFile(path, []byte("0 * * * * /bin/hourly\n@daily /bin/daily\n"), 0o644))

	rootCmd.SetArgs([]string{"preview", path, "--count", "2"})
	buf := new(bytes.Buffer)
	previewCmd.SetOut(buf)

	require.NoError(t, rootCmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "/bin/hourly")
	assert.Contains(t, output, "/bin/daily")
	assert.Contains(t, output, "0 * * * *")
	assert.Contains(t, output, "0 0 * * *")
	assert.Contains(t, output, "   1.")
}

func TestPreviewRejectsOutOfRangeCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crontab")
	require.NoError(t, os.WriteFile(path, []byte("* * * * * /bin/true\n"), 0o644))

	rootCmd.SetArgs([]string{"preview", path, "--count", "0"})
	err := rootCmd.Execute()
	assert.Error(t, err)

	previewCount = 10
}

func TestPreviewMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"preview", filepath.Join(t.TempDir(), "does-not-exist")})
	err := rootCmd.Execute()
	assert.Error(t, err)
}
