package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// clearServerEnv unsets every variable the server reads; t.Setenv restores them afterwards.
func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "ROYALTY_DB_PATH", "ROYALTY_PIPELINE_CONFIG", "ROYALTY_MATCH_FLOOR", "CORS_ORIGINS", "LOG_LEVEL", "REQUEST_LOGGING"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadServerConfigDefaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := LoadServerConfig("")
	if err != nil {
		t.Fatalf("LoadServerConfig failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %q", cfg.Port)
	}
	if cfg.DBPath != "royalty.sqlite3" {
		t.Errorf("Expected default DB path, got %q", cfg.DBPath)
	}
	if cfg.MatchFloor != 0.6 {
		t.Errorf("Expected match floor 0.6, got %v", cfg.MatchFloor)
	}
	if !cfg.RequestLogging {
		t.Error("Expected request logging on by default")
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("Expected wildcard origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadServerConfigEnv(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ROYALTY_MATCH_FLOOR", "0.75")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadServerConfig("")
	if err != nil {
		t.Fatalf("LoadServerConfig failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.Port)
	}
	if cfg.MatchFloor != 0.75 {
		t.Errorf("Expected match floor 0.75, got %v", cfg.MatchFloor)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("Expected %v, got %v", want, cfg.AllowedOrigins)
	}
}

func TestLoadServerConfigFile(t *testing.T) {
	clearServerEnv(t)
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := "port: \"7070\"\ndb_path: /tmp/catalog.sqlite3\nmatch_floor: 0.8\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("LoadServerConfig failed: %v", err)
	}
	if cfg.Port != "7070" || cfg.DBPath != "/tmp/catalog.sqlite3" || cfg.MatchFloor != 0.8 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoadServerConfigRejectsFloor(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("ROYALTY_MATCH_FLOOR", "1.5")
	if _, err := LoadServerConfig(""); err == nil {
		t.Error("Expected an error for match floor above 1")
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"*"}},
		{"*", []string{"*"}},
		{"https://a.example.com", []string{"https://a.example.com"}},
		{" https://a.example.com ,, https://b.example.com ", []string{"https://a.example.com", "https://b.example.com"}},
	}
	for _, tt := range tests {
		if got := parseOrigins(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseOrigins(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
