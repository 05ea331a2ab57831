package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/semtax/reasoner"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Reasoner.MaxRounds != reasoner.DefaultMaxRounds {
		t.Errorf("expected max rounds %d, got %d", reasoner.DefaultMaxRounds, cfg.Reasoner.MaxRounds)
	}
	if cfg.Export.Format != "turtle" {
		t.Errorf("expected default format turtle, got %s", cfg.Export.Format)
	}
	if cfg.Export.Profile != "all" {
		t.Errorf("expected default profile all, got %s", cfg.Export.Profile)
	}
	if cfg.Reasoner.SkipSeed {
		t.Error("expected the seed vocabulary by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "known rules",
			modify:  func(c *Config) { c.Reasoner.Rules = []string{reasoner.RuleSubClassTransitivity} },
			wantErr: false,
		},
		{
			name:    "zero max rounds",
			modify:  func(c *Config) { c.Reasoner.MaxRounds = 0 },
			wantErr: true,
		},
		{
			name:    "unknown rule",
			modify:  func(c *Config) { c.Reasoner.Rules = []string{"Guesswork"} },
			wantErr: true,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Export.Format = "rdfxml" },
			wantErr: true,
		},
		{
			name:    "unknown profile",
			modify:  func(c *Config) { c.Export.Profile = "cco" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v (%v)", level, err)
	}
	cfg.Log.Level = ""
	if level, _ := cfg.LogLevel(); level != slog.LevelInfo {
		t.Errorf("expected info level for empty string, got %v", level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
documents:
  - "ontologies/**/*.yaml"
reasoner:
  skip_seed: true
  max_rounds: 4
  rules:
    - SubClassTransitivity
    - SameAsEntailment
export:
  format: ntriples
  profile: inferred
  base_iri: "https://example.org"
storage:
  path: "/var/lib/semtax/facts.db"
nats:
  url: "nats://test:4222"
metrics:
  addr: ":9464"
log:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if len(cfg.Documents) != 1 || cfg.Documents[0] != "ontologies/**/*.yaml" {
		t.Errorf("unexpected documents %v", cfg.Documents)
	}
	if !cfg.Reasoner.SkipSeed {
		t.Error("expected skip_seed true")
	}
	if cfg.Reasoner.MaxRounds != 4 {
		t.Errorf("expected max rounds 4, got %d", cfg.Reasoner.MaxRounds)
	}
	if len(cfg.Reasoner.Rules) != 2 {
		t.Errorf("expected 2 rules, got %d", len(cfg.Reasoner.Rules))
	}
	if cfg.Export.Format != "ntriples" || cfg.Export.Profile != "inferred" {
		t.Errorf("unexpected export config %+v", cfg.Export)
	}
	if cfg.Storage.Path != "/var/lib/semtax/facts.db" {
		t.Errorf("expected storage path, got %s", cfg.Storage.Path)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.Metrics.Addr != ":9464" {
		t.Errorf("expected metrics addr :9464, got %s", cfg.Metrics.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Reasoner: ReasonerConfig{MaxRounds: 3},
		Export:   ExportConfig{Profile: "asserted"},
		Storage:  StorageConfig{Path: "/override/facts.db"},
	}

	base.Merge(override)

	if base.Reasoner.MaxRounds != 3 {
		t.Errorf("expected max rounds 3, got %d", base.Reasoner.MaxRounds)
	}
	if base.Export.Profile != "asserted" {
		t.Errorf("expected profile asserted, got %s", base.Export.Profile)
	}
	// Format should remain from base since override didn't set it
	if base.Export.Format != "turtle" {
		t.Errorf("expected format to remain default, got %s", base.Export.Format)
	}
	if base.Storage.Path != "/override/facts.db" {
		t.Errorf("expected storage path /override/facts.db, got %s", base.Storage.Path)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Export.BaseIRI = "https://saved.example"
	cfg.Root = "/not/persisted"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Export.BaseIRI != "https://saved.example" {
		t.Errorf("expected base IRI https://saved.example, got %s", loaded.Export.BaseIRI)
	}
	if loaded.Root != "" {
		t.Errorf("root must not be persisted, got %s", loaded.Root)
	}
}

func testLoader(home, work string) *Loader {
	l := NewLoader(nil)
	l.homeDir = func() (string, error) { return home, nil }
	l.workDir = func() (string, error) { return work, nil }
	return l
}

func TestLoaderLayers(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	work := filepath.Join(project, "nested", "dir")
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatal(err)
	}

	user := DefaultConfig()
	user.Export.Format = "jsonld"
	user.Reasoner.MaxRounds = 8
	if err := user.SaveToFile(filepath.Join(home, UserConfigDir, UserConfigFile)); err != nil {
		t.Fatal(err)
	}
	projectYAML := "reasoner:\n  max_rounds: 2\nstorage:\n  path: facts.db\n"
	if err := os.WriteFile(filepath.Join(project, ProjectConfigFile), []byte(projectYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := testLoader(home, work).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Export.Format != "jsonld" {
		t.Errorf("expected user format jsonld, got %s", cfg.Export.Format)
	}
	if cfg.Reasoner.MaxRounds != 2 {
		t.Errorf("expected project max rounds 2, got %d", cfg.Reasoner.MaxRounds)
	}
	if cfg.Storage.Path != "facts.db" {
		t.Errorf("expected project storage path, got %s", cfg.Storage.Path)
	}
	if cfg.Root != project {
		t.Errorf("expected root %s, got %s", project, cfg.Root)
	}
}

func TestLoaderRejectsInvalidConfig(t *testing.T) {
	project := t.TempDir()
	if err := os.WriteFile(filepath.Join(project, ProjectConfigFile), []byte("export:\n  format: rdfxml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := testLoader(t.TempDir(), project).Load(); err == nil {
		t.Error("expected validation error")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	l := testLoader(home, t.TempDir())
	if err := l.EnsureUserConfig(); err != nil {
		t.Fatalf("EnsureUserConfig() error = %v", err)
	}
	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		t.Fatal("user config was not created")
	}
	// A second call leaves the existing file alone.
	if err := l.EnsureUserConfig(); err != nil {
		t.Errorf("second EnsureUserConfig() error = %v", err)
	}
}
