package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type sampleConfig struct {
	WorkerCount int    `mapstructure:"worker_count"`
	YieldEvery  int    `mapstructure:"yield_every"`
	Label       string `mapstructure:"label"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_YAMLSection(t *testing.T) {
	path := writeFile(t, "fusion.yml", `
execution:
  worker_count: 6
  label: from-file
`)
	cfg := sampleConfig{YieldEvery: 32}
	if err := Load("execution", &cfg, WithFile(path), WithEnvPrefix("FUSIONTEST")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WorkerCount != 6 || cfg.Label != "from-file" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.YieldEvery != 32 {
		t.Errorf("expected preset default 32 kept, got %d", cfg.YieldEvery)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "fusion.yml", "execution:\n  worker_count: 2\n  label: kept\n")
	t.Setenv("FUSIONTEST_EXECUTION_WORKER_COUNT", "12")

	var cfg sampleConfig
	if err := Load("execution", &cfg, WithFile(path), WithEnvPrefix("FUSIONTEST_")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WorkerCount != 12 {
		t.Errorf("expected env override 12, got %d", cfg.WorkerCount)
	}
	if cfg.Label != "kept" {
		t.Errorf("expected file value merged with env, got %q", cfg.Label)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	envPath := writeFile(t, ".env", "FUSIONDOT_EXECUTION_YIELD_EVERY=7\n")
	t.Cleanup(func() { os.Unsetenv("FUSIONDOT_EXECUTION_YIELD_EVERY") })

	var cfg sampleConfig
	if err := Load("execution", &cfg, WithEnvFile(envPath), WithFile("/nonexistent.yml"), WithEnvPrefix("FUSIONDOT")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.YieldEvery != 7 {
		t.Errorf("expected 7 from .env, got %d", cfg.YieldEvery)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg := sampleConfig{WorkerCount: 3}
	err := Load("execution", &cfg, WithFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"), WithEnvPrefix("FUSIONNONE"))
	if err != nil {
		t.Fatalf("expected Load to succeed with missing files, got %v", err)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("expected untouched config, got %+v", cfg)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "fusion.yml", "execution: [unbalanced\n")
	var cfg sampleConfig
	err := Load("execution", &cfg, WithFile(path))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoad_WholeDocument(t *testing.T) {
	path := writeFile(t, "fusion.yml", "label: root\nworker_count: 1\n")
	var cfg sampleConfig
	if err := Load("", &cfg, WithFile(path), WithEnvPrefix("FUSIONNONE")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Label != "root" || cfg.WorkerCount != 1 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolver(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/fusion.yml": true,
		"./.env":              true,
		"/explicit.yml":       true,
	}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles(LoaderConfig{})
	if files.ConfigFile != "./config/fusion.yml" || files.EnvFile != "./.env" {
		t.Errorf("unexpected search result %+v", files)
	}
	if files := r.ResolveFiles(LoaderConfig{ConfigFile: "/explicit.yml"}); files.ConfigFile != "/explicit.yml" {
		t.Errorf("expected explicit file, got %q", files.ConfigFile)
	}
	if files := r.ResolveFiles(LoaderConfig{ConfigFile: "/missing.yml"}); files.ConfigFile != "" {
		t.Errorf("expected missing explicit file to resolve to nothing, got %q", files.ConfigFile)
	}
}

func TestOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithFile("/path/to/fusion.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("APP_")(&lc)
	if lc.FileSystem != fs || lc.ConfigFile != "/path/to/fusion.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config %+v", lc)
	}
	if lc.EnvPrefix != "APP" {
		t.Errorf("expected trailing underscore trimmed, got %q", lc.EnvPrefix)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("EXECUTION_WORKER_COUNT")
	for _, want := range []string{"execution_worker_count", "execution.worker_count", "execution.worker.count"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if got := generateEnvKeyVariants("LABEL"); len(got) != 1 || got[0] != "label" {
		t.Errorf("expected [label], got %v", got)
	}
}
