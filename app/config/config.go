// Package config loads application settings from defaults, an optional
// config.yaml, a .env file and the process environment, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every setting of the API and UI servers.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	UI      UIConfig
	CORS    CORSConfig
	Log     LogConfig
}

// ServerConfig holds the REST API server settings.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig selects and locates the storage backend.
type StorageConfig struct {
	Driver    string // badger or sqlite
	Path      string
	BackupDir string
}

// UIConfig holds the browser UI server settings.
type UIConfig struct {
	Addr       string
	APIBaseURL string
	// SessionSecret signs session cookies. Empty means a random secret per
	// process.
	SessionSecret string
	SessionTTL    time.Duration
	// SecureCookies marks session cookies Secure; enable behind HTTPS.
	SecureCookies bool
	FetchTimeout  time.Duration
	RenderWait    time.Duration
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("storage.driver", "badger")
	v.SetDefault("storage.path", "data/badger")
	v.SetDefault("storage.backup_dir", "data/backups")

	v.SetDefault("ui.addr", ":8081")
	v.SetDefault("ui.api_base_url", "http://localhost:8080")
	v.SetDefault("ui.session_secret", "")
	v.SetDefault("ui.session_ttl", "30m")
	v.SetDefault("ui.secure_cookies", false)
	v.SetDefault("ui.fetch_timeout", "10s")
	v.SetDefault("ui.render_wait", "2s")

	v.SetDefault("cors.allowed_origins", "*")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads the configuration. envFiles are passed to godotenv; with none
// given ".env" is tried. Missing files are not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(v.GetString("storage.driver")),
			Path:      v.GetString("storage.path"),
			BackupDir: v.GetString("storage.backup_dir"),
		},
		UI: UIConfig{
			Addr:          v.GetString("ui.addr"),
			APIBaseURL:    strings.TrimRight(v.GetString("ui.api_base_url"), "/"),
			SessionSecret: v.GetString("ui.session_secret"),
			SessionTTL:    v.GetDuration("ui.session_ttl"),
			SecureCookies: v.GetBool("ui.secure_cookies"),
			FetchTimeout:  v.GetDuration("ui.fetch_timeout"),
			RenderWait:    v.GetDuration("ui.render_wait"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the servers cannot start with.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case "badger", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}
	if c.Storage.Path == "" {
		problems = append(problems, "STORAGE_PATH is required")
	}
	if c.Server.Addr == "" {
		problems = append(problems, "SERVER_ADDR is required")
	}
	if c.UI.Addr == "" {
		problems = append(problems, "UI_ADDR is required")
	}
	if c.UI.APIBaseURL == "" {
		problems = append(problems, "UI_API_BASE_URL is required")
	}
	if c.UI.SessionTTL <= 0 {
		problems = append(problems, "UI_SESSION_TTL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
