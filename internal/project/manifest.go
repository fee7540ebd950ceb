// Package project locates and parses the lumos.toml manifest that roots a
// schema project and carries its formatting and validation settings.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"lumos/internal/format"
	"lumos/internal/validator"
)

// ManifestName is the file the upward search looks for.
const ManifestName = "lumos.toml"

// Manifest pairs the parsed config with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors lumos.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Format  FormatConfig  `toml:"format"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type FormatConfig struct {
	IndentSize     int  `toml:"indent_size"`
	SortAttributes bool `toml:"sort_attributes"`
	AlignFields    bool `toml:"align_fields"`
}

type CheckConfig struct {
	Command   []string `toml:"command"`
	TimeoutMS int      `toml:"timeout_ms"`
}

// DefaultConfig is what `lumos init` scaffolds and what applies when no
// manifest exists.
func DefaultConfig() Config {
	return Config{
		Format: FormatConfig{
			IndentSize:     4,
			SortAttributes: true,
			AlignFields:    true,
		},
		Check: CheckConfig{
			Command:   []string{"lumos-compiler", "check"},
			TimeoutMS: 10_000,
		},
	}
}

// FormatOptions converts the manifest section into formatter options.
func (c Config) FormatOptions() format.Options {
	return format.Options{
		IndentSize:     c.Format.IndentSize,
		SortAttributes: c.Format.SortAttributes,
		AlignFields:    c.Format.AlignFields,
	}
}

// ValidatorConfig converts the manifest section into a validator config.
func (c Config) ValidatorConfig() validator.Config {
	return validator.Config{
		Command: c.Check.Command,
		Timeout: time.Duration(c.Check.TimeoutMS) * time.Millisecond,
	}
}

// Find walks upward from startDir looking for lumos.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the nearest manifest. The second return is false
// when no manifest exists; defaults apply then.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", manifestPath, err)
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// Scaffold writes a fresh manifest with defaults; it refuses to overwrite.
func Scaffold(dir, packageName string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	content := fmt.Sprintf(`[package]
name = %q

[format]
indent_size = 4
sort_attributes = true
align_fields = true

[check]
command = ["lumos-compiler", "check"]
timeout_ms = 10000
`, packageName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
