// Package config loads the server configuration from YAML with MH_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ServerConfig holds server-wide configuration settings.
type ServerConfig struct {
	HTTP        HTTPConfig        `yaml:"http"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Connections ConnectionsConfig `yaml:"connections"`
	Skill       SkillConfig       `yaml:"skill"`
	Narration   NarrationConfig   `yaml:"narration"`
	Storage     StorageConfig     `yaml:"storage"`
}

// HTTPConfig holds listener and route settings.
type HTTPConfig struct {
	Address         string        `yaml:"address" env:"MH_HTTP_ADDRESS"`
	SkillPath       string        `yaml:"skill_path" env:"MH_HTTP_SKILL_PATH"`
	PlayPath        string        `yaml:"play_path" env:"MH_HTTP_PLAY_PATH"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"MH_HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"MH_HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"MH_HTTP_SHUTDOWN_TIMEOUT"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy. "*" allows all origins.
	AllowedOrigins []string `yaml:"allowed_origins" env:"MH_WEBSOCKET_ALLOWED_ORIGINS" envSeparator:","`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size" env:"MH_WEBSOCKET_MAX_MESSAGE_SIZE"`
}

// ConnectionsConfig limits concurrent WebSocket players.
type ConnectionsConfig struct {
	// MaxPerIP is the maximum concurrent connections from one address. 0 is unlimited.
	MaxPerIP int `yaml:"max_per_ip" env:"MH_CONNECTIONS_MAX_PER_IP"`

	// MaxTotal is the maximum total concurrent connections. 0 is unlimited.
	MaxTotal int `yaml:"max_total" env:"MH_CONNECTIONS_MAX_TOTAL"`

	// MaxPerPlayer is the maximum concurrent connections for one ?user= id. 0 is unlimited.
	MaxPerPlayer int `yaml:"max_per_player" env:"MH_CONNECTIONS_MAX_PER_PLAYER"`

	// MaxTurns is how many lines one player may send per TurnWindow. 0 disables throttling.
	MaxTurns   int           `yaml:"max_turns" env:"MH_CONNECTIONS_MAX_TURNS"`
	TurnWindow time.Duration `yaml:"turn_window" env:"MH_CONNECTIONS_TURN_WINDOW"`
}

// SkillConfig holds voice platform settings.
type SkillConfig struct {
	// ApplicationID, when set, must match the id in every request.
	ApplicationID string `yaml:"application_id" env:"MH_SKILL_APPLICATION_ID"`
	DefaultLocale string `yaml:"default_locale" env:"MH_SKILL_DEFAULT_LOCALE"`
}

// NarrationConfig locates audio and optional catalog overrides.
type NarrationConfig struct {
	AudioBaseURL string `yaml:"audio_base_url" env:"MH_NARRATION_AUDIO_BASE_URL"`
	CatalogDir   string `yaml:"catalog_dir" env:"MH_NARRATION_CATALOG_DIR"`
}

// StorageConfig selects and configures the profile store.
type StorageConfig struct {
	Driver     string         `yaml:"driver" env:"MH_STORAGE_DRIVER"`
	SQLitePath string         `yaml:"sqlite_path" env:"MH_SQLITE_PATH"`
	Postgres   PostgresConfig `yaml:"postgres"`
	Redis      RedisConfig    `yaml:"redis"`
}

// PostgresConfig holds PostgreSQL connection and pool settings.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"MH_POSTGRES_HOST"`
	Port            int           `yaml:"port" env:"MH_POSTGRES_PORT"`
	User            string        `yaml:"user" env:"MH_POSTGRES_USER"`
	Password        string        `yaml:"password" env:"MH_POSTGRES_PASSWORD"`
	Database        string        `yaml:"database" env:"MH_POSTGRES_DATABASE"`
	SSLMode         string        `yaml:"sslmode" env:"MH_POSTGRES_SSLMODE"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"MH_POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"MH_POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"MH_POSTGRES_CONN_MAX_LIFETIME"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr      string `yaml:"addr" env:"MH_REDIS_ADDR"`
	Password  string `yaml:"password" env:"MH_REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"MH_REDIS_DB"`
	KeyPrefix string `yaml:"key_prefix" env:"MH_REDIS_KEY_PREFIX"`
}

// DefaultConfig returns a ServerConfig with secure defaults.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		HTTP: HTTPConfig{
			Address:         ":8080",
			SkillPath:       "/skill",
			PlayPath:        "/play",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
		},
		Connections: ConnectionsConfig{
			MaxPerIP:     3,
			MaxTotal:     100,
			MaxPerPlayer: 1,
			MaxTurns:     10,
			TurnWindow:   10 * time.Second,
		},
		Skill: SkillConfig{
			DefaultLocale: "en-US",
		},
		Narration: NarrationConfig{
			AudioBaseURL: "https://www.benjamindring.co.uk/Resources/MysteriousHouse/",
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: "data/mysterioushouse.db",
			Postgres: PostgresConfig{
				Host:            "localhost",
				Port:            5432,
				User:            "mysterioushouse",
				Database:        "mysterioushouse",
				SSLMode:         "disable",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 5 * time.Minute,
			},
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "profile:",
			},
		},
	}
}

// LoadConfig loads server configuration from a YAML file, then applies
// environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*ServerConfig, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("config environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c *ServerConfig) Validate() error {
	var errs []error

	if c.HTTP.Address == "" {
		errs = append(errs, errors.New("http.address is required"))
	}
	for name, p := range map[string]string{"http.skill_path": c.HTTP.SkillPath, "http.play_path": c.HTTP.PlayPath} {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, fmt.Errorf("%s must start with /: %q", name, p))
		}
	}
	if c.HTTP.SkillPath == c.HTTP.PlayPath {
		errs = append(errs, errors.New("http.skill_path and http.play_path must differ"))
	}
	if c.WebSocket.MaxMessageSize <= 0 {
		errs = append(errs, errors.New("websocket.max_message_size must be positive"))
	}
	if c.Connections.MaxTurns > 0 && c.Connections.TurnWindow <= 0 {
		errs = append(errs, errors.New("connections.turn_window must be positive when max_turns is set"))
	}

	switch c.Storage.Driver {
	case DriverMemory, DriverRedis, DriverPostgres:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be memory, sqlite, postgres or redis: %q", c.Storage.Driver))
	}

	return errors.Join(errs...)
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimSuffix(allowed, "/"), strings.TrimSuffix(origin, "/")) {
			return true
		}
	}
	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // Non-browser clients send no Origin header
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return strings.EqualFold(originHost, requestHost)
}
