package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if len(cfg.WebSocket.AllowedOrigins) != 0 {
		t.Errorf("expected empty allowed origins by default, got %v", cfg.WebSocket.AllowedOrigins)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected sqlite storage by default, got %q", cfg.Storage.Driver)
	}
	if cfg.Skill.DefaultLocale != "en-US" {
		t.Errorf("expected en-US default locale, got %q", cfg.Skill.DefaultLocale)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.HTTP.Address != ":8080" {
		t.Errorf("expected default address, got %q", cfg.HTTP.Address)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
http:
  address: "127.0.0.1:9000"
  read_timeout: 3s
websocket:
  allowed_origins:
    - "https://example.com"
    - "http://localhost:3000"
  max_message_size: 8192
skill:
  application_id: amzn1.ask.skill.house
storage:
  driver: redis
  redis:
    addr: "redis:6379"
    db: 2
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Address != "127.0.0.1:9000" {
		t.Errorf("address = %q", cfg.HTTP.Address)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second {
		t.Errorf("read timeout = %v, want 3s", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.SkillPath != "/skill" {
		t.Errorf("unset skill path lost its default: %q", cfg.HTTP.SkillPath)
	}
	if len(cfg.WebSocket.AllowedOrigins) != 2 || cfg.WebSocket.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("allowed origins = %v", cfg.WebSocket.AllowedOrigins)
	}
	if cfg.WebSocket.MaxMessageSize != 8192 {
		t.Errorf("expected max message size 8192, got %d", cfg.WebSocket.MaxMessageSize)
	}
	if cfg.Skill.ApplicationID != "amzn1.ask.skill.house" {
		t.Errorf("application id = %q", cfg.Skill.ApplicationID)
	}
	if cfg.Storage.Driver != DriverRedis || cfg.Storage.Redis.Addr != "redis:6379" || cfg.Storage.Redis.DB != 2 {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Storage.Redis.KeyPrefix != "profile:" {
		t.Errorf("redis key prefix lost its default: %q", cfg.Storage.Redis.KeyPrefix)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: sqlite\n")
	t.Setenv("MH_STORAGE_DRIVER", "postgres")
	t.Setenv("MH_POSTGRES_HOST", "db.internal")
	t.Setenv("MH_POSTGRES_PORT", "6543")
	t.Setenv("MH_HTTP_ADDRESS", ":7000")
	t.Setenv("MH_WEBSOCKET_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("MH_HTTP_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("driver = %q, want postgres from env", cfg.Storage.Driver)
	}
	if cfg.Storage.Postgres.Host != "db.internal" || cfg.Storage.Postgres.Port != 6543 {
		t.Errorf("postgres = %+v", cfg.Storage.Postgres)
	}
	if cfg.HTTP.Address != ":7000" {
		t.Errorf("address = %q", cfg.HTTP.Address)
	}
	if got := strings.Join(cfg.WebSocket.AllowedOrigins, " "); got != "https://a.example https://b.example" {
		t.Errorf("allowed origins = %q", got)
	}
	if cfg.HTTP.ShutdownTimeout != 2*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.HTTP.ShutdownTimeout)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "http: [", "parsing config"},
		{"unknown driver", "storage:\n  driver: mongo\n", "storage.driver"},
		{"relative skill path", "http:\n  skill_path: skill\n", "http.skill_path"},
		{"same paths", "http:\n  skill_path: /x\n  play_path: /x\n", "must differ"},
		{"empty sqlite path", "storage:\n  sqlite_path: \"\"\n", "sqlite_path"},
		{"turns without window", "connections:\n  max_turns: 5\n  turn_window: 0s\n", "turn_window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		host    string
		want    bool
	}{
		{"same origin", nil, "http://localhost:8080", "localhost:8080", true},
		{"same origin trailing slash", nil, "https://house.example/", "house.example", true},
		{"cross origin rejected", nil, "http://evil.example", "localhost:8080", false},
		{"no origin header", nil, "", "localhost:8080", true},
		{"wildcard", []string{"*"}, "http://anything.example", "localhost:8080", true},
		{"exact match", []string{"https://example.com", "http://localhost:3000"}, "http://localhost:3000", "house.example", true},
		{"case insensitive", []string{"https://Example.com"}, "https://example.com", "house.example", true},
		{"not listed", []string{"https://example.com"}, "https://other.example", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := WebSocketConfig{AllowedOrigins: tt.allowed}
			if got := cfg.IsOriginAllowed(tt.origin, tt.host); got != tt.want {
				t.Errorf("IsOriginAllowed(%q, %q) = %v, want %v", tt.origin, tt.host, got, tt.want)
			}
		})
	}
}
