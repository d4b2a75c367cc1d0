// Package watch detects whether a user's schedule file has changed since it
// was last loaded, so the daemon knows when to reparse it.
package watch

import (
	"os"
	"syscall"
)

// Detector tracks the last-observed modification time of one schedule file
// and reports whether it has changed (including creation and deletion)
// since the previous check, per the mtime-comparison logic of the original
// daemon's change check.
type Detector struct {
	path    string
	sec     int64
	nsec    int64
	existed bool
}

// NewDetector returns a Detector for path with no prior observation, so the
// first Changed call reports a change if and only if the file currently
// exists.
func NewDetector(path string) *Detector {
	return &Detector{path: path}
}

// Changed stats the schedule file and compares its modification time
// against the last-observed one. A file that newly appears, newly
// disappears, or whose mtime differs from the last observation counts as
// changed; the new state is recorded either way. Stat errors other than
// "not found" are returned to the caller and do not update the recorded
// state.
func (d *Detector) Changed() (bool, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			changed := d.existed
			d.existed = false
			d.sec, d.nsec = 0, 0
			return changed, nil
		}
		return false, err
	}

	sec, nsec := mtime(info)
	changed := !d.existed || sec != d.sec || nsec != d.nsec
	d.existed = true
	d.sec, d.nsec = sec, nsec
	return changed, nil
}

// mtime extracts the modification time at nanosecond precision via the
// platform's stat_t, matching the source's tv_sec/tv_nsec comparison rather
// than Go's coarser ModTime() rounding on some filesystems.
func mtime(info os.FileInfo) (sec int64, nsec int64) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return int64(st.Mtim.Sec), int64(st.Mtim.Nsec)
	}
	t := info.ModTime()
	return t.Unix(), int64(t.Nanosecond())
}
