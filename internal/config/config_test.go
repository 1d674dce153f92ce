package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"pika/internal/config"
)

func TestLoadDefaultConfigWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PIKA_LOG_LEVEL", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("", "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	wantPath := filepath.Join(tempHome, ".config", "pika", "config.toml")
	if resolved != wantPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, wantPath)
	}
	if cfg.Runner.Command != "npx" {
		t.Fatalf("unexpected runner command: %q", cfg.Runner.Command)
	}
	if cfg.Publish.Contents != "pkg/" {
		t.Fatalf("unexpected publish contents: %q", cfg.Publish.Contents)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	t.Setenv("PIKA_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "pika.toml")
	cfgVal := config.Default()
	cfgVal.Runner.Command = "  npx --yes  "
	cfgVal.Publish.Contents = "dist/"
	cfgVal.Logging.Format = "JSON"
	cfgVal.Logging.Level = "Debug"
	writeConfig(t, path, cfgVal)

	cfg, resolved, exists, err := config.Load(path, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Publish.Contents != "dist/" {
		t.Fatalf("unexpected publish contents: %q", cfg.Publish.Contents)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging to be normalized, got %+v", cfg.Logging)
	}

	argv, err := cfg.RunnerArgv()
	if err != nil {
		t.Fatalf("RunnerArgv returned error: %v", err)
	}
	if strings.Join(argv, "|") != "npx|--yes" {
		t.Fatalf("unexpected runner argv: %q", argv)
	}
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := config.Load(path, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config to report exists=false")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Runner.Command != "npx" {
		t.Fatalf("expected default runner, got %q", cfg.Runner.Command)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	t.Chdir(project)
	if err := os.WriteFile(filepath.Join(project, "pika.toml"), []byte("[publish]\ncontents = \"lib/\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("", "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected project config to be found")
	}
	if filepath.Base(resolved) != "pika.toml" {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Publish.Contents != "lib/" {
		t.Fatalf("unexpected publish contents: %q", cfg.Publish.Contents)
	}
}

func TestLoadEnvLogLevelOverride(t *testing.T) {
	t.Setenv("PIKA_LOG_LEVEL", "INFO")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"), "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected env override, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("PIKA_LOG_LEVEL", "")
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{name: "format", content: "[logging]\nformat = \"xml\"\n", want: "logging.format"},
		{name: "level", content: "[logging]\nlevel = \"loud\"\n", want: "logging.level"},
		{name: "runner quoting", content: "[runner]\ncommand = \"npx 'unterminated\"\n", want: "runner.command"},
		{name: "syntax", content: "[runner\n", want: "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadProjectConfigFromProjectDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PIKA_LOG_LEVEL", "")
	t.Chdir(t.TempDir())
	project := t.TempDir()
	if err := os.WriteFile(filepath.Join(project, "pika.toml"), []byte("[publish]\ncontents = \"out/\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("", project)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != filepath.Join(project, "pika.toml") {
		t.Fatalf("expected project config in %q, got %q exists=%v", project, resolved, exists)
	}
	if cfg.Publish.Contents != "out/" {
		t.Fatalf("unexpected publish contents: %q", cfg.Publish.Contents)
	}

	cfg, _, exists, err = config.Load("", "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists || cfg.Publish.Contents != "pkg/" {
		t.Fatalf("expected defaults outside the project, got %q exists=%v", cfg.Publish.Contents, exists)
	}
}

func TestLoadExpandsHomeInExplicitPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PIKA_LOG_LEVEL", "")
	if err := os.WriteFile(filepath.Join(home, "pika-alt.toml"), []byte("[runner]\ncommand = \"pnpm dlx\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("~/pika-alt.toml", "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != filepath.Join(home, "pika-alt.toml") {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Runner.Command != "pnpm dlx" {
		t.Fatalf("unexpected runner command: %q", cfg.Runner.Command)
	}
}

func writeConfig(t *testing.T, path string, cfg config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
