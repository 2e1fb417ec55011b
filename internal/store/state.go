package store

import (
	"os"
	"path/filepath"
	"time"
)

// Animation state is a pair of marker files written by the host lifecycle
// hooks: "animating" while the host is processing, and "hooks_installed"
// once hooks have ever run. With no hooks installed we fall back to always
// animating.

const (
	animatingFile      = "animating"
	hooksInstalledFile = "hooks_installed"

	// staleFlagAge guards against an orphaned flag when the stop hook never
	// fired.
	staleFlagAge = 5 * time.Minute
)

// AnimationState reads and writes the processing flag in a state directory.
type AnimationState struct {
	dir string
}

// NewAnimationState returns an AnimationState rooted at dir.
func NewAnimationState(dir string) AnimationState {
	return AnimationState{dir: dir}
}

// HooksInstalled reports whether lifecycle hooks have ever signalled us.
func (a AnimationState) HooksInstalled() bool {
	if _, err := os.Stat(filepath.Join(a.dir, animatingFile)); err == nil {
		return true
	}
	_, err := os.Stat(filepath.Join(a.dir, hooksInstalledFile))
	return err == nil
}

// Processing reports whether the host is actively working. Without hooks it
// always reports true (always animate); with hooks it checks the flag and
// clears it when stale.
func (a AnimationState) Processing(now time.Time) bool {
	if !a.HooksInstalled() {
		return true
	}
	path := filepath.Join(a.dir, animatingFile)
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if now.Sub(info.ModTime()) > staleFlagAge {
		_ = os.Remove(path)
		return false
	}
	return true
}

// SetProcessing writes or removes the animation flag and records that hooks
// are installed. Failures are swallowed; hooks must stay silent and fast.
func (a AnimationState) SetProcessing(active bool) {
	marker := filepath.Join(a.dir, hooksInstalledFile)
	if _, err := os.Stat(marker); err != nil {
		_ = os.WriteFile(marker, []byte("1"), 0o600)
	}
	path := filepath.Join(a.dir, animatingFile)
	if active {
		_ = os.WriteFile(path, []byte("1"), 0o600)
	} else {
		_ = os.Remove(path)
	}
}
