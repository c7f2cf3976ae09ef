package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitAndLoad(t *testing.T) {
	root := t.TempDir()

	if IsRepository(root) {
		t.Fatal("fresh directory should not be a repository")
	}

	if err := Init(root); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !IsRepository(root) {
		t.Fatal("Init should create a repository")
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HoldingsPath != "" {
		t.Errorf("fresh config should be empty, got %+v", cfg)
	}

	// Cache directory exists for the database
	info, err := os.Stat(CachePath(root))
	if err != nil || !info.IsDir() {
		t.Errorf("cache directory missing: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := Init(root); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{HoldingsPath: "/data/holdings.csv", DocumentsPath: "/data/docs.jsonl"}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.HoldingsPath != cfg.HoldingsPath || got.DocumentsPath != cfg.DocumentsPath {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestFindRepository(t *testing.T) {
	root := t.TempDir()
	if err := Init(root); err != nil {
		t.Fatal(err)
	}

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRepository(nested)
	if err != nil {
		t.Fatalf("FindRepository failed: %v", err)
	}
	// Resolve symlinks before comparing; t.TempDir may live under one
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(found)
	if gotRoot != wantRoot {
		t.Errorf("found %q, want %q", gotRoot, wantRoot)
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	if _, err := FindRepository(t.TempDir()); err == nil {
		t.Fatal("expected error outside a repository")
	}
}

func TestDBPath(t *testing.T) {
	want := filepath.Join("root", SerialgapDir, CacheDir, DBFile)
	if got := DBPath("root"); got != want {
		t.Errorf("DBPath = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("missing global config should not error: %v", err)
	}
	if cfg.RegistryAPIKey != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadGlobalConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, GlobalConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "registry_api_key: secret\nregistry_base_url: https://example.org/v1\n"
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig failed: %v", err)
	}
	if cfg.RegistryAPIKey != "secret" || cfg.RegistryBaseURL != "https://example.org/v1" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
