package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cityforge/internal/config"
	"cityforge/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t)

	configPath := filepath.Join(homeDir, ".config", "cityforge", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestRunCommandEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)

	sourcePath := filepath.Join(env.cfg.Paths.SourcesDir, "Asia")
	testsupport.WriteSourceFile(t, sourcePath,
		"Chiang Mai, Thailand",
		"Hanoi, Vietnam",
	)
	env.cfg.Sources = []config.Source{
		{Label: "Asia", Path: sourcePath, Format: config.FormatInternational, Continent: "Asia"},
	}
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Compile")
	requireContains(t, out, "Curate")
	requireContains(t, out, "Vibes")
	requireContains(t, out, "Seed")

	if _, err := os.Stat(env.cfg.Paths.DatabasePath); err != nil {
		t.Fatalf("expected database at %s: %v", env.cfg.Paths.DatabasePath, err)
	}

	out, _, err = runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Artifacts")
	requireContains(t, out, "present")
	requireContains(t, out, "Database:")
}

func TestCompileJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	sourcePath := filepath.Join(env.cfg.Paths.SourcesDir, "Asia")
	testsupport.WriteSourceFile(t, sourcePath, "Chiang Mai, Thailand")
	env.cfg.Sources = []config.Source{
		{Label: "Asia", Path: sourcePath, Format: config.FormatInternational, Continent: "Asia"},
	}
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"compile", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("compile --json: %v", err)
	}
	requireContains(t, out, `"new_candidates": 1`)
	requireContains(t, out, `"parsed": 1`)
}

func TestStatusBeforeAnyRun(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "missing")
	requireContains(t, out, "not created")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, "[vibes]")
}
