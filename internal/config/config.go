// internal/config/config.go
//
// This package handles configuration and the .qcline directory structure.
// Every directory the station runs from gets a .qcline/ folder holding the
// config file, the logs and the metrics export. Parts and boxes are never
// written here; they live only for the duration of the process.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// StationDir is the name of the directory we create in each working directory
	StationDir = ".qcline"

	// EnvPrefix namespaces the environment overrides (QCLINE_OPERATOR, ...).
	EnvPrefix = "QCLINE"

	defaultStationName = "line-1"
	defaultLogTail     = 8
)

const defaultProjectConfigYAML = `# qcline station configuration
version: 1

station:
  name: line-1
  operator: ""

# Diagnostic log. Relative paths are resolved against the working directory.
logging:
  level: info
  file: .qcline/logs/qcline.log

# Counters are written in Prometheus text format when the console exits.
metrics:
  enabled: false
  textfile: .qcline/metrics/qcline.prom

ui:
  alt_screen: true
  log_tail: 8
`

// StationConfig identifies the line and who is operating it.
type StationConfig struct {
	Name     string `yaml:"name"`
	Operator string `yaml:"operator,omitempty"`
}

// LoggingConfig controls the zap diagnostic log.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MetricsConfig controls the textfile export.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

// UIConfig holds console preferences.
type UIConfig struct {
	AltScreen bool `yaml:"alt_screen"`
	LogTail   int  `yaml:"log_tail"`
}

// ProjectConfig models .qcline/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Station StationConfig `yaml:"station"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	UI      UIConfig      `yaml:"ui"`
}

// envOverrides are applied after the file is loaded. Nil pointers mean the
// variable was not set.
type envOverrides struct {
	Operator       string `envconfig:"OPERATOR"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
	MetricsEnabled *bool  `envconfig:"METRICS_ENABLED"`
	AltScreen      *bool  `envconfig:"ALT_SCREEN"`
}

// Config holds the runtime configuration for the station.
type Config struct {
	// ProjectDir is the directory where the user ran `qcline` from
	ProjectDir string

	// StationProjectDir is ProjectDir/.qcline
	StationProjectDir string

	Project ProjectConfig
}

// InitDir creates the .qcline directory structure in the given directory.
//
// Structure created:
// .qcline/
// ├── config.yaml
// ├── logs/      <- qcline.log (diagnostics) and shift.log (journal)
// └── metrics/   <- textfile export
func InitDir(projectDir string) error {
	stationDir := filepath.Join(projectDir, StationDir)
	dirs := []string{
		filepath.Join(stationDir, "logs"),
		filepath.Join(stationDir, "metrics"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(stationDir, "config.yaml"))
}

// NewConfig creates a Config populated from .qcline/config.yaml and the
// QCLINE_* environment.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:        projectDir,
		StationProjectDir: filepath.Join(projectDir, StationDir),
		Project:           defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StationProjectDir, "logs")
}

// JournalPath returns the shift journal location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "shift.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StationProjectDir, "config.yaml")
}

// StationName returns the configured line name.
func (c *Config) StationName() string {
	return c.Project.Station.Name
}

// Operator returns the operator name, empty when not configured.
func (c *Config) Operator() string {
	return c.Project.Station.Operator
}

// LogLevel parses the configured level.
func (c *Config) LogLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Project.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// LogFile returns the absolute diagnostic log path.
func (c *Config) LogFile() string {
	return c.Project.Logging.File
}

// MetricsEnabled reports whether the textfile export is on.
func (c *Config) MetricsEnabled() bool {
	return c.Project.Metrics.Enabled
}

// MetricsTextfile returns the absolute export path.
func (c *Config) MetricsTextfile() string {
	return c.Project.Metrics.Textfile
}

// AltScreen reports whether the console takes over the terminal.
func (c *Config) AltScreen() bool {
	return c.Project.UI.AltScreen
}

// LogTail returns how many journal lines the console shows.
func (c *Config) LogTail() int {
	return c.Project.UI.LogTail
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize(c.ProjectDir)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	if op := strings.TrimSpace(env.Operator); op != "" {
		c.Project.Station.Operator = op
	}
	if level := strings.TrimSpace(env.LogLevel); level != "" {
		c.Project.Logging.Level = strings.ToLower(level)
	}
	if env.MetricsEnabled != nil {
		c.Project.Metrics.Enabled = *env.MetricsEnabled
	}
	if env.AltScreen != nil {
		c.Project.UI.AltScreen = *env.AltScreen
	}
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Station: StationConfig{Name: defaultStationName},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(StationDir, "logs", "qcline.log"),
		},
		Metrics: MetricsConfig{
			Textfile: filepath.Join(StationDir, "metrics", "qcline.prom"),
		},
		UI: UIConfig{AltScreen: true, LogTail: defaultLogTail},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	defaults := defaultProjectConfig()
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Station.Name) == "" {
		pc.Station.Name = defaults.Station.Name
	}
	if strings.TrimSpace(pc.Logging.Level) == "" {
		pc.Logging.Level = defaults.Logging.Level
	}
	if strings.TrimSpace(pc.Logging.File) == "" {
		pc.Logging.File = defaults.Logging.File
	}
	if strings.TrimSpace(pc.Metrics.Textfile) == "" {
		pc.Metrics.Textfile = defaults.Metrics.Textfile
	}
	if pc.UI.LogTail == 0 {
		pc.UI.LogTail = defaults.UI.LogTail
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Station.Name = strings.TrimSpace(pc.Station.Name)
	pc.Station.Operator = strings.TrimSpace(pc.Station.Operator)
	pc.Logging.Level = strings.ToLower(strings.TrimSpace(pc.Logging.Level))
	pc.Logging.File = resolvePath(base, pc.Logging.File)
	pc.Metrics.Textfile = resolvePath(base, pc.Metrics.Textfile)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Station.Name == "" {
		return fmt.Errorf("station.name is required")
	}
	if _, err := zapcore.ParseLevel(pc.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if pc.UI.LogTail < 0 {
		return fmt.Errorf("ui.log_tail must be >= 0")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
