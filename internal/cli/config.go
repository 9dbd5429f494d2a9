package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// =============================================================================
// Config File
// =============================================================================

// Config holds settings from the config file. Every field has a working
// zero value, so a missing file means defaults.
type Config struct {
	// DatasetPath is the default dataset used when a command gets no
	// positional argument.
	DatasetPath string `toml:"dataset"`

	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// NoCache disables pipeline caching entirely.
	NoCache bool `toml:"no_cache"`

	// LogLevel is the default log level: debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// ListenAddr is the default address for the serve command.
	ListenAddr string `toml:"listen_addr"`

	// RedisAddr enables the Redis cache backend (host:port).
	RedisAddr string `toml:"redis_addr"`

	// MongoURI enables the MongoDB snapshot store.
	MongoURI string `toml:"mongo_uri"`

	// StoreDir overrides the file snapshot store directory.
	StoreDir string `toml:"store_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// DefaultConfigPath returns the standard config file location,
// honoring XDG_CONFIG_HOME.
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields DefaultConfig; a missing
// explicit file is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
	}

	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// logLevel maps the configured level name to a charm log level.
// Unknown names fall back to info.
func (c Config) logLevel() log.Level {
	switch c.LogLevel {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
