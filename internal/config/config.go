package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"cityforge/internal/catalog"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	SourcesDir   string `toml:"sources_dir"`
	DataDir      string `toml:"data_dir"`
	OutputDir    string `toml:"output_dir"`
	LogDir       string `toml:"log_dir"`
	DatabasePath string `toml:"database_path"`
}

// Source describes one city list file consumed by the compile stage.
type Source struct {
	Label     string `toml:"label"`
	Path      string `toml:"path"`
	Format    string `toml:"format"`
	Continent string `toml:"continent"`
}

// Curation contains the composite score policy. The clamp band is a single
// uniform policy; the legacy scripts disagreed on the ceiling.
type Curation struct {
	ScoreFloor   float64 `toml:"score_floor"`
	ScoreCeiling float64 `toml:"score_ceiling"`
}

// Vibes contains tag assignment policy.
type Vibes struct {
	StrengthFloor float64 `toml:"strength_floor"`
	MinTags       int     `toml:"min_tags"`
	MaxTags       int     `toml:"max_tags"`
}

// Seed contains persistence boundary settings.
type Seed struct {
	BatchSize      int    `toml:"batch_size"`
	BatchPauseMS   int    `toml:"batch_pause_ms"`
	ConflictPolicy string `toml:"conflict_policy"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cityforge.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Sources  []Source `toml:"sources"`
	Curation Curation `toml:"curation"`
	Vibes    Vibes    `toml:"vibes"`
	Seed     Seed     `toml:"seed"`
	Logging  Logging  `toml:"logging"`
}

// Source formats.
const (
	FormatUS            = "us"
	FormatInternational = "international"
)

// ContinentAuto marks a source whose continent is inferred per country.
const ContinentAuto = "auto"

// Conflict policies for the seed stage.
const (
	ConflictIgnore = "ignore"
	ConflictUpdate = "update"
)

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cityforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cityforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if c.Paths.DatabasePath != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.DatabasePath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ScoreBounds returns the composite score clamp band.
func (c *Config) ScoreBounds() catalog.ScoreBounds {
	return catalog.ScoreBounds{Floor: c.Curation.ScoreFloor, Ceiling: c.Curation.ScoreCeiling}
}

// ArtifactPath returns the path of a named artifact under the output
// directory.
func (c *Config) ArtifactPath(name string) string {
	return filepath.Join(c.Paths.OutputDir, name)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
