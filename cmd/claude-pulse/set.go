package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
	"github.com/mrukavishnikov/claude-pulse/internal/render"
	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

// setters maps "claude-pulse set <key> <value>" keys to mutation functions.
// Each validates its value before touching the settings.
var setters = map[string]func(*config.Settings, string) error{
	"theme": func(s *config.Settings, v string) error {
		if _, ok := render.Themes[v]; !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", v, strings.Join(render.ThemeNames, ", "))
		}
		s.Theme = v
		return nil
	},
	"rainbow-bars": func(s *config.Settings, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		s.RainbowBars = b
		return nil
	},
	"animate": func(s *config.Settings, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		s.Animate = b
		return nil
	},
	"text-color": func(s *config.Settings, v string) error {
		if v != "auto" && v != "none" {
			if _, ok := render.TextColors[v]; !ok {
				return fmt.Errorf("unknown text color %q (available: auto, none, %s)", v, strings.Join(textColorNames(), ", "))
			}
		}
		s.TextColor = v
		return nil
	},
	"currency": func(s *config.Settings, v string) error {
		s.Currency = v
		return nil
	},
	"bar-style": func(s *config.Settings, v string) error {
		if _, ok := render.BarStyles[v]; !ok {
			return fmt.Errorf("unknown bar style %q (available: %s)", v, strings.Join(render.BarStyleNames, ", "))
		}
		s.BarStyle = v
		return nil
	},
	"bar-width": func(s *config.Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 || n > 40 {
			return fmt.Errorf("bar width must be an integer between 2 and 40")
		}
		s.BarWidth = n
		return nil
	},
	"layout": func(s *config.Settings, v string) error {
		if !validLayout(v) {
			return fmt.Errorf("unknown layout %q (available: standard, compact, minimal, percent-first)", v)
		}
		s.Layout = v
		return nil
	},
	"reset-mode": func(s *config.Settings, v string) error {
		if !validResetMode(v) {
			return fmt.Errorf("unknown reset mode %q (available: countdown, date, full, auto)", v)
		}
		s.ResetTimeMode = v
		return nil
	},
	"weekly-reset-mode": func(s *config.Settings, v string) error {
		if !validResetMode(v) {
			return fmt.Errorf("unknown reset mode %q (available: countdown, date, full, auto)", v)
		}
		s.WeeklyResetMode = v
		return nil
	},
	"weekly-timer-prefix": func(s *config.Settings, v string) error {
		s.WeeklyTimerPrefix = v
		return nil
	},
	"context-format": func(s *config.Settings, v string) error {
		switch v {
		case "percent", "tokens", "full":
			s.ContextFormat = v
			return nil
		}
		return fmt.Errorf("unknown context format %q (available: percent, tokens, full)", v)
	},
	"cache-ttl": func(s *config.Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("cache ttl must be a non-negative integer of seconds")
		}
		s.CacheTTLSeconds = n
		return nil
	},
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a configuration value",
		Long:  "Change a configuration value. Keys: " + strings.Join(setterKeys(), ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			apply, ok := setters[key]
			if !ok {
				return fmt.Errorf("unknown key %q (available: %s)", key, strings.Join(setterKeys(), ", "))
			}
			s := config.LoadFile()
			if err := apply(&s, args[1]); err != nil {
				return err
			}
			if err := config.Save(s); err != nil {
				return err
			}
			store.DropCache(cachePath())
			cmd.Printf("%s set to %s\n", key, args[1])
			return nil
		},
	}
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", v)
}

func validLayout(v string) bool {
	switch v {
	case "standard", "compact", "minimal", "percent-first":
		return true
	}
	return false
}

func validResetMode(v string) bool {
	switch v {
	case "countdown", "date", "full", "auto":
		return true
	}
	return false
}

func setterKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func textColorNames() []string {
	names := make([]string, 0, len(render.TextColors))
	for name := range render.TextColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
