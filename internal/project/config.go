// Package project loads the markxs.toml manifest that configures fixture
// locations and parser limits for a document tree.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the upward search looks for.
const ManifestName = "markxs.toml"

// FixturesConfig locates snapshot fixtures, relative to the manifest
// directory.
type FixturesConfig struct {
	Dir      string `toml:"dir"`
	Expected string `toml:"expected"`
}

// ParserConfig carries parse limits.
type ParserConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// Config is the parsed manifest plus the directory it was found in.
type Config struct {
	Fixtures FixturesConfig `toml:"fixtures"`
	Parser   ParserConfig   `toml:"parser"`

	// Root is the directory containing the manifest. Empty for Default().
	Root string `toml:"-"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Fixtures: FixturesConfig{Dir: "fixtures", Expected: "fixtures/expected"},
		Parser:   ParserConfig{MaxDiagnostics: 100},
	}
}

// FixturesDir resolves the fixtures directory against the manifest root.
func (c Config) FixturesDir() string {
	return c.resolve(c.Fixtures.Dir)
}

// ExpectedDir resolves the expected-snapshot directory against the manifest
// root.
func (c Config) ExpectedDir() string {
	return c.resolve(c.Fixtures.Expected)
}

func (c Config) resolve(path string) string {
	if c.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// LoadFile parses one manifest file. Missing keys keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Parser.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: parser.max_diagnostics must not be negative", path)
	}
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// FindManifest walks up from startDir to locate the manifest.
func FindManifest(startDir string) (path string, ok bool, err error) {
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

// Load finds and parses the nearest manifest above startDir, falling back to
// defaults when none exists.
func Load(startDir string) (Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}
