package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

// claudeSettingsPath locates the host's settings file.
func claudeSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// readSettingsFile loads the settings JSON as a generic map so keys we do
// not own survive a rewrite untouched. A missing file yields an empty map.
func readSettingsFile(path string) (map[string]any, error) {
	settings := map[string]any{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return settings, nil
}

func writeSettingsFile(path string, settings map[string]any) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "claude-pulse"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe
}

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Register claude-pulse as the Claude Code status line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := claudeSettingsPath()
			if err != nil {
				return err
			}
			settings, err := readSettingsFile(path)
			if err != nil {
				return err
			}
			settings["statusLine"] = map[string]any{
				"type":    "command",
				"command": executablePath(),
				"padding": 0,
			}
			if err := writeSettingsFile(path, settings); err != nil {
				return err
			}
			cmd.Printf("Status line installed in %s\n", path)
			cmd.Println("Restart Claude Code to see it. Optional: claude-pulse install-hooks for activity animation.")
			return nil
		},
	}
}

func newInstallHooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install-hooks",
		Short: "Install prompt hooks that animate the status line while Claude works",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := claudeSettingsPath()
			if err != nil {
				return err
			}
			settings, err := readSettingsFile(path)
			if err != nil {
				return err
			}

			exe := executablePath()
			hooks, _ := settings["hooks"].(map[string]any)
			if hooks == nil {
				hooks = map[string]any{}
			}
			addHook(hooks, "UserPromptSubmit", exe+" hook-start")
			addHook(hooks, "Stop", exe+" hook-stop")
			settings["hooks"] = hooks

			if err := writeSettingsFile(path, settings); err != nil {
				return err
			}

			// Writing the idle state drops the hooks_installed marker so the
			// renderer starts trusting hook signals immediately.
			store.NewAnimationState(config.StateDir()).SetProcessing(false)

			cmd.Printf("Hooks installed in %s\n", path)
			return nil
		},
	}
}

// addHook appends a command hook under the given event unless an identical
// command is already registered, keeping installs idempotent.
func addHook(hooks map[string]any, event, command string) {
	entries, _ := hooks[event].([]any)
	for _, entry := range entries {
		m, _ := entry.(map[string]any)
		if m == nil {
			continue
		}
		inner, _ := m["hooks"].([]any)
		for _, h := range inner {
			hm, _ := h.(map[string]any)
			if hm != nil && hm["command"] == command {
				return
			}
		}
	}
	entries = append(entries, map[string]any{
		"hooks": []any{
			map[string]any{"type": "command", "command": command},
		},
	})
	hooks[event] = entries
}
