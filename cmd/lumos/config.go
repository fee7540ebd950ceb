package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lumos/internal/project"
)

// loadProjectConfig reads lumos.toml from the current directory upward,
// falling back to defaults when no manifest exists.
func loadProjectConfig() (project.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return project.DefaultConfig(), err
	}
	manifest, found, err := project.Load(wd)
	if err != nil {
		return project.DefaultConfig(), err
	}
	if !found {
		return project.DefaultConfig(), nil
	}
	return manifest.Config, nil
}

func colorEnabled(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
