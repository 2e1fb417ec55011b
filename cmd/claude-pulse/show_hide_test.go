package main

import (
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
)

func useTempStateDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("LOCALAPPDATA", dir)
}

func discardCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd
}

func TestToggleExtraSetsHiddenFlag(t *testing.T) {
	useTempStateDir(t)
	cmd := discardCmd()

	if err := toggleParts(cmd, "extra", false); err != nil {
		t.Fatalf("hide error: %v", err)
	}
	s := config.LoadFile()
	if s.Show["extra"] || !s.ExtraHidden {
		t.Errorf("after hide: show=%v hidden=%v, want false/true", s.Show["extra"], s.ExtraHidden)
	}

	if err := toggleParts(cmd, "extra", true); err != nil {
		t.Fatalf("show error: %v", err)
	}
	s = config.LoadFile()
	if !s.Show["extra"] || s.ExtraHidden {
		t.Errorf("after show: show=%v hidden=%v, want true/false", s.Show["extra"], s.ExtraHidden)
	}
}

func TestTogglePartsRejectsUnknown(t *testing.T) {
	useTempStateDir(t)
	if err := toggleParts(discardCmd(), "bogus", true); err == nil {
		t.Fatal("expected error for unknown part")
	}
}
