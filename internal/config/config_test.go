package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != defaultServerURL {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
	if cfg.PageSize != defaultPageSize {
		t.Errorf("PageSize = %d, want default", cfg.PageSize)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	want := Config{
		ServerURL: "https://admin.example.com",
		PageSize:  50,
		Theme:     "ember",
		LogLevel:  "debug",
		LogFormat: "json",
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server_url = \"http://10.0.0.5:9000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://10.0.0.5:9000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.PageSize != defaultPageSize {
		t.Errorf("PageSize = %d, want default for unset field", cfg.PageSize)
	}
	if cfg.Theme != "slate" {
		t.Errorf("Theme = %q, want default for unset field", cfg.Theme)
	}
}

func TestEnvOverridesServerURL(t *testing.T) {
	t.Setenv("OPSDECK_SERVER", "http://sandbox:8080")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://sandbox:8080" {
		t.Errorf("ServerURL = %q, want env override", cfg.ServerURL)
	}
}
