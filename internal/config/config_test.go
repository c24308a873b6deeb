package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("NATS_INGEST_SUBJECT", "")
	t.Setenv("NATS_HINT_SUBJECT", "")
	t.Setenv("HINT_CONFIDENCE_THRESHOLD", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")

	cfg := Load()
	if cfg.StorageBackend != "local" {
		t.Fatalf("expected default storage backend local, got %q", cfg.StorageBackend)
	}
	if cfg.NATSIngestSubject != "documents.ingested" {
		t.Fatalf("expected default ingest subject, got %q", cfg.NATSIngestSubject)
	}
	if cfg.NATSHintSubject != "documents.filing_hints" {
		t.Fatalf("expected default hint subject, got %q", cfg.NATSHintSubject)
	}
	if cfg.HintConfidenceThreshold != 0.5 {
		t.Fatalf("expected default confidence threshold 0.5, got %v", cfg.HintConfidenceThreshold)
	}
	if cfg.APIRateLimitRPS != 50 {
		t.Fatalf("expected default rate limit 50 rps, got %d", cfg.APIRateLimitRPS)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_BUCKET", "tenders")
	t.Setenv("HINT_CONFIDENCE_THRESHOLD", "0.75")
	t.Setenv("API_RATE_LIMIT_BURST", "25")

	cfg := Load()
	if cfg.StorageBackend != "s3" {
		t.Fatalf("expected storage backend s3, got %q", cfg.StorageBackend)
	}
	if cfg.S3Bucket != "tenders" {
		t.Fatalf("expected bucket override, got %q", cfg.S3Bucket)
	}
	if cfg.HintConfidenceThreshold != 0.75 {
		t.Fatalf("expected confidence threshold 0.75, got %v", cfg.HintConfidenceThreshold)
	}
	if cfg.APIRateLimitBurst != 25 {
		t.Fatalf("expected burst 25, got %d", cfg.APIRateLimitBurst)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("HINT_CONFIDENCE_THRESHOLD", "very confident")
	t.Setenv("API_RATE_LIMIT_RPS", "fast")

	cfg := Load()
	if cfg.HintConfidenceThreshold != 0.5 {
		t.Fatalf("expected fallback threshold 0.5, got %v", cfg.HintConfidenceThreshold)
	}
	if cfg.APIRateLimitRPS != 50 {
		t.Fatalf("expected fallback rate limit 50, got %d", cfg.APIRateLimitRPS)
	}
}

func TestLoadCatalogEmptyPathUsesBuiltin(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.Disciplines) == 0 || len(catalog.Trades) == 0 {
		t.Fatalf("expected built-in catalog to be populated, got %+v", catalog)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "disciplines:\n  - Architecture\n  - Structural\ntrades:\n  - Demolition\n  - Electrical\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.Disciplines) != 2 || catalog.Disciplines[0] != "Architecture" {
		t.Fatalf("unexpected disciplines: %v", catalog.Disciplines)
	}
	if len(catalog.Trades) != 2 || catalog.Trades[1] != "Electrical" {
		t.Fatalf("unexpected trades: %v", catalog.Trades)
	}
}

func TestLoadCatalogRejectsEmptySections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("disciplines:\n  - Architecture\n"), 0o600); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}

	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for catalog without trades")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}
