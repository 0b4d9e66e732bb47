package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExpandsEnvVar(t *testing.T) {
	t.Setenv("ANNVEC_TEST_API_KEY", "secret-value")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"dims": 8,
		"embedder": {"kind": "openai", "api_key": "$ANNVEC_TEST_API_KEY"},
		"store": {"kind": "mem"},
		"http": {"addr": ":9000"},
		"search": {"default_k": 5}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Embedder.APIKey != "secret-value" {
		t.Fatalf("APIKey = %q, want %q", cfg.Embedder.APIKey, "secret-value")
	}
}

func TestValidateRejectsMissingBadgerDir(t *testing.T) {
	cfg := Default()
	cfg.Store = StoreConfig{Kind: "badger"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for badger store with no dir")
	}
}

func TestValidateRejectsUnknownEmbedderKind(t *testing.T) {
	cfg := Default()
	cfg.Embedder = EmbedderConfig{Kind: "nonexistent"}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown embedder kind")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() failed validation: %v", err)
	}
}
