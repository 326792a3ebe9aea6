package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig selects and tunes the durable key-value backend.
type StorageConfig struct {
	// Driver picks the backend: "sqlite", "redis", or "memory".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file (sqlite driver only).
	Path string `mapstructure:"path" yaml:"path"`

	// RedisAddr is the host:port of the Redis server (redis driver only).
	RedisAddr string `mapstructure:"redis_addr" yaml:"redis_addr"`

	// RedisDB is the Redis logical database number.
	RedisDB int `mapstructure:"redis_db" yaml:"redis_db"`

	// LatencyMinMs and LatencyMaxMs bound the simulated round-trip
	// delay applied to every storage operation. Both default to zero;
	// set roughly 100 and 600 to restore the original prototype feel.
	LatencyMinMs int `mapstructure:"latency_min_ms" yaml:"latency_min_ms"`
	LatencyMaxMs int `mapstructure:"latency_max_ms" yaml:"latency_max_ms"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "light" or "dark". Persisted whenever the user toggles it.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// MailConfig holds settings for the simulated notification mailer.
type MailConfig struct {
	// OutboxDir is where composed .eml files are written.
	OutboxDir string `mapstructure:"outbox_dir" yaml:"outbox_dir"`

	// From is the sender address stamped on outgoing messages.
	From string `mapstructure:"from" yaml:"from"`
}

// LogConfig holds logging settings. Logs go to a file because the
// terminal is owned by the UI.
type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Mail    MailConfig    `mapstructure:"mail" yaml:"mail"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/congviec/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "congviec", "config.yaml")
}

// DefaultDataDir returns the directory for durable application state,
// located at ~/.local/share/congviec.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "congviec")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dataDir := DefaultDataDir()
	return &AppConfig{
		Storage: StorageConfig{
			Driver:    "sqlite",
			Path:      filepath.Join(dataDir, "congviec.db"),
			RedisAddr: "localhost:6379",
		},
		Display: DisplayConfig{
			Theme: "dark",
		},
		Mail: MailConfig{
			OutboxDir: filepath.Join(dataDir, "outbox"),
			From:      "reminders@congviec.local",
		},
		Log: LogConfig{
			Path:  filepath.Join(dataDir, "congviec.log"),
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.driver", def.Storage.Driver)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.redis_addr", def.Storage.RedisAddr)
	v.SetDefault("storage.redis_db", def.Storage.RedisDB)
	v.SetDefault("storage.latency_min_ms", def.Storage.LatencyMinMs)
	v.SetDefault("storage.latency_max_ms", def.Storage.LatencyMaxMs)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("mail.outbox_dir", def.Mail.OutboxDir)
	v.SetDefault("mail.from", def.Mail.From)
	v.SetDefault("log.path", def.Log.Path)
	v.SetDefault("log.level", def.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("mail", cfg.Mail)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
