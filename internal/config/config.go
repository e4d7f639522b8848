// Package config loads xlate.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"xlate/internal/naming"
)

// FileName is the project configuration file searched for by Find.
const FileName = "xlate.toml"

// Config mirrors xlate.toml.
type Config struct {
	Naming  Naming  `toml:"naming"`
	Resolve Resolve `toml:"resolve"`
	Trace   Trace   `toml:"trace"`

	// Path is where the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type Naming struct {
	Enabled   *bool             `toml:"enabled"`
	Reserved  []string          `toml:"reserved"`
	BadParams []string          `toml:"bad_params"`
	Prefixes  map[string]string `toml:"prefixes"`
	Classes   map[string]string `toml:"classes"`
	Separator string            `toml:"separator"`
}

type Resolve struct {
	// Queue lists qualified type names resolved before each unit is scanned.
	Queue    []string `toml:"queue"`
	Validate bool     `toml:"validate"`
	Jobs     int      `toml:"jobs"`
}

type Trace struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// Default returns the configuration used when no xlate.toml is found.
func Default() Config {
	return Config{Resolve: Resolve{Validate: true}}
}

// RenameEnabled reports whether the renaming pass runs. Defaults to true.
func (c Config) RenameEnabled() bool {
	return c.Naming.Enabled == nil || *c.Naming.Enabled
}

// NamerConfig converts the [naming] section for naming.New. Reserved words
// from the file extend the built-in set.
func (c Config) NamerConfig() naming.Config {
	cfg := naming.Config{
		BadParams: c.Naming.BadParams,
		Prefixes:  c.Naming.Prefixes,
		Classes:   c.Naming.Classes,
		Separator: c.Naming.Separator,
	}
	if len(c.Naming.Reserved) > 0 {
		cfg.Reserved = append(append([]string(nil), naming.DefaultReserved...), c.Naming.Reserved...)
	}
	return cfg
}

// Find walks up from startDir to locate xlate.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Load decodes path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Resolve.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [resolve].jobs must not be negative", path)
	}
	for pkg, prefix := range cfg.Naming.Prefixes {
		if strings.TrimSpace(prefix) == "" {
			return Config{}, fmt.Errorf("%s: [naming.prefixes] %q maps to an empty prefix", path, pkg)
		}
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the explicit path when set, otherwise the nearest
// xlate.toml above startDir, otherwise the defaults.
func Discover(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
