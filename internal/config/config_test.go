package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	// Search-path mode in an empty directory falls back to defaults.
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Session.CookieName != "session_token" {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, "session_token")
	}
	if cfg.Session.TTLHours != 24 {
		t.Errorf("Session.TTLHours = %d, want 24", cfg.Session.TTLHours)
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("Security.BcryptCost = %d, want 12", cfg.Security.BcryptCost)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9001
database:
  path: /tmp/test.db
session:
  cookie_name: sid
  ttl_hours: 2
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want /tmp/test.db", cfg.Database.Path)
	}
	if cfg.Session.CookieName != "sid" {
		t.Errorf("Session.CookieName = %q, want sid", cfg.Session.CookieName)
	}
	if cfg.Session.TTLHours != 2 {
		t.Errorf("Session.TTLHours = %d, want 2", cfg.Session.TTLHours)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("Security.BcryptCost = %d, want default 12", cfg.Security.BcryptCost)
	}
	if cfg.Addr() != ":9001" {
		t.Errorf("Addr() = %q, want :9001", cfg.Addr())
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a negative port")
	}

	if err := os.WriteFile(path, []byte("session:\n  ttl_hours: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a zero session TTL")
	}
}
