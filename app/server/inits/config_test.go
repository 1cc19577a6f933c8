package inits

import (
	"os"
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_CONN", "postgres://localhost/campus")
	t.Setenv("MONGO_CONN", "mongodb://localhost:27017")
	t.Setenv("REDIS_CONN", "redis://localhost:6379/0")
	t.Setenv("SIGNATURE_SECRET_KEY", "test-secret")
}

func TestConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}

	if cfg.System.Listen != ":4000" {
		t.Fatalf("expected default listen :4000, got %q", cfg.System.Listen)
	}
	if cfg.System.MongoDatabase != "campus" {
		t.Fatalf("expected default mongo db campus, got %q", cfg.System.MongoDatabase)
	}
	if cfg.System.IsProd {
		t.Fatal("expected dev mode by default")
	}
	if cfg.Security.RequiredDomain != "iut-dhaka.edu" {
		t.Fatalf("unexpected default domain %q", cfg.Security.RequiredDomain)
	}
	if len(cfg.Security.AdministratorEmails) != 1 || cfg.Security.AdministratorEmails[0] != "ridwankhan@iut-dhaka.edu" {
		t.Fatalf("unexpected default allowlist %v", cfg.Security.AdministratorEmails)
	}
}

func TestConfigAllowlistSeparator(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMINISTRATOR_EMAILS", "a@iut-dhaka.edu,b@iut-dhaka.edu")

	cfg, err := Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if len(cfg.Security.AdministratorEmails) != 2 {
		t.Fatalf("expected 2 allowlisted emails, got %v", cfg.Security.AdministratorEmails)
	}
}

func TestConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv registered the restore; unset to simulate a missing var.
	os.Unsetenv("SIGNATURE_SECRET_KEY")

	_, err := Config()
	if err == nil {
		t.Fatal("expected error for missing signature key")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
