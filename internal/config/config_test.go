package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitDirWritesDefaultConfig(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir returned error: %v", err)
	}
	for _, dir := range []string{"logs", "metrics"} {
		if _, err := os.Stat(filepath.Join(projectDir, StationDir, dir)); err != nil {
			t.Fatalf("expected %s dir: %v", dir, err)
		}
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.StationName() != defaultStationName {
		t.Fatalf("expected station %q, got %q", defaultStationName, c.StationName())
	}
	if !c.AltScreen() {
		t.Fatalf("expected alt screen enabled by default")
	}
	if c.LogTail() != defaultLogTail {
		t.Fatalf("expected log tail %d, got %d", defaultLogTail, c.LogTail())
	}
	want := filepath.Join(projectDir, StationDir, "logs", "qcline.log")
	if c.LogFile() != want {
		t.Fatalf("expected log file %s, got %s", want, c.LogFile())
	}
}

func TestInitDirKeepsExistingConfig(t *testing.T) {
	projectDir := t.TempDir()
	stationDir := filepath.Join(projectDir, StationDir)
	if err := os.MkdirAll(stationDir, 0o755); err != nil {
		t.Fatal(err)
	}
	custom := "version: 1\nstation:\n  name: press-2\n"
	if err := os.WriteFile(filepath.Join(stationDir, "config.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(stationDir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Fatalf("config was overwritten: %s", data)
	}
}

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c := &Config{ProjectDir: projectDir, StationProjectDir: filepath.Join(projectDir, StationDir), Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if !filepath.IsAbs(c.MetricsTextfile()) {
		t.Fatalf("expected metrics path to be resolved, got %s", c.MetricsTextfile())
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	stationDir := filepath.Join(projectDir, StationDir)
	if err := os.MkdirAll(stationDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
station:
  name: " press-2 "
  operator: ana
logging:
  level: DEBUG
  file: logs/diag.log
metrics:
  enabled: true
  textfile: /var/lib/node_exporter/qcline.prom
ui:
  alt_screen: false
  log_tail: 4
`)
	if err := os.WriteFile(filepath.Join(stationDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, StationProjectDir: stationDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.StationName() != "press-2" {
		t.Fatalf("expected trimmed station name, got %q", c.StationName())
	}
	if c.Operator() != "ana" {
		t.Fatalf("expected operator ana, got %q", c.Operator())
	}
	if c.LogLevel() != zapcore.DebugLevel {
		t.Fatalf("expected debug level, got %s", c.LogLevel())
	}
	if !strings.HasPrefix(c.LogFile(), projectDir) {
		t.Fatalf("expected relative log path to be resolved, got %s", c.LogFile())
	}
	if c.MetricsTextfile() != "/var/lib/node_exporter/qcline.prom" {
		t.Fatalf("absolute metrics path changed: %s", c.MetricsTextfile())
	}
	if !c.MetricsEnabled() || c.AltScreen() || c.LogTail() != 4 {
		t.Fatalf("unexpected toggles: %+v", c.Project)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	projectDir := t.TempDir()
	stationDir := filepath.Join(projectDir, StationDir)
	if err := os.MkdirAll(stationDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
logging:
  level: chatty
`)
	if err := os.WriteFile(filepath.Join(stationDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, StationProjectDir: stationDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err == nil {
		t.Fatalf("expected validation error but got none")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QCLINE_OPERATOR", "bruno")
	t.Setenv("QCLINE_LOG_LEVEL", "WARN")
	t.Setenv("QCLINE_METRICS_ENABLED", "true")
	t.Setenv("QCLINE_ALT_SCREEN", "false")
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Operator() != "bruno" {
		t.Fatalf("expected operator override, got %q", c.Operator())
	}
	if c.LogLevel() != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %s", c.LogLevel())
	}
	if !c.MetricsEnabled() {
		t.Fatalf("expected metrics enabled by env")
	}
	if c.AltScreen() {
		t.Fatalf("expected alt screen disabled by env")
	}
}

func TestEnvironmentRejectsBadBool(t *testing.T) {
	projectDir := t.TempDir()
	t.Setenv("QCLINE_METRICS_ENABLED", "maybe")
	if _, err := NewConfig(projectDir); err == nil {
		t.Fatalf("expected error for malformed boolean")
	}
}
