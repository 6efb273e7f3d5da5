package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	apperrors "github.com/killallgit/seispick/pkg/errors"
	"github.com/spf13/viper"
)

// Counter modes for events.n_user_picks
const (
	CounterModeSubmitted = "submitted"
	CounterModeEffective = "effective"
)

// DefaultConfigPath is read when SEISPICK_CONFIG is not set
const DefaultConfigPath = "./config/settings.yaml"

var (
	mu      sync.Mutex
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	once.Do(func() {
		// Set default values
		setDefaults()

		// Environment variables override file values, e.g. SEISPICK_SERVER_PORT
		viper.SetEnvPrefix("SEISPICK")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := DefaultConfigPath
		if p := os.Getenv("SEISPICK_CONFIG"); p != "" {
			configPath = p
		}
		configPath = filepath.Clean(configPath)
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing file is fine, defaults and env vars apply
			if !errors.Is(err, fs.ErrNotExist) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// Reset clears all loaded configuration so Init can run again (tests only)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	viper.Reset()
	once = sync.Once{}
	initErr = nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Set overrides a config value (used by CLI flags and tests)
func Set(key string, value any) {
	viper.Set(key, value)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid server port: %d", port))
	}

	if viper.GetString("database.path") == "" {
		return apperrors.ConfigError("database.path", "database path is required")
	}

	if viper.GetString("events.dir") == "" {
		return apperrors.ConfigError("events.dir", "events directory is required")
	}

	if viper.GetFloat64("waveform.sample_rate") <= 0 {
		return apperrors.ConfigError("waveform.sample_rate", fmt.Sprintf("invalid waveform sample rate: %v", viper.GetFloat64("waveform.sample_rate")))
	}

	switch viper.GetString("picks.counter_mode") {
	case CounterModeSubmitted, CounterModeEffective:
	default:
		return apperrors.ConfigError("picks.counter_mode", fmt.Sprintf("invalid picks counter mode: %q", viper.GetString("picks.counter_mode")))
	}

	// Auto-correct invalid rate limits
	if viper.GetInt("rate_limiting.save_rps") <= 0 {
		viper.Set("rate_limiting.save_rps", 5)
	}
	if viper.GetInt("rate_limiting.save_burst") <= 0 {
		viper.Set("rate_limiting.save_burst", 10)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}

	if c.Database.Path == "" {
		return apperrors.ConfigError("database.path", "database path is required")
	}

	if c.Events.Dir == "" {
		return apperrors.ConfigError("events.dir", "events directory is required")
	}

	if c.Waveform.SampleRate <= 0 {
		return apperrors.ConfigError("waveform.sample_rate", fmt.Sprintf("invalid waveform sample rate: %v", c.Waveform.SampleRate))
	}

	if c.Picks.CounterMode == "" {
		c.Picks.CounterMode = CounterModeSubmitted
	}
	if c.Picks.CounterMode != CounterModeSubmitted && c.Picks.CounterMode != CounterModeEffective {
		return apperrors.ConfigError("picks.counter_mode", fmt.Sprintf("invalid picks counter mode: %q", c.Picks.CounterMode))
	}

	if c.RateLimiting.SaveRPS <= 0 {
		c.RateLimiting.SaveRPS = 5
	}
	if c.RateLimiting.SaveBurst <= 0 {
		c.RateLimiting.SaveBurst = 10
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./picks.db")
	viper.SetDefault("database.verbose", false)
	viper.SetDefault("database.busy_timeout", 5*time.Second)

	// Event store defaults
	viper.SetDefault("events.dir", "./events")

	// Waveform defaults
	viper.SetDefault("waveform.sample_rate", 100.0)
	viper.SetDefault("waveform.compress", true)
	viper.SetDefault("waveform.cache_mb", 64)
	viper.SetDefault("waveform.cache_ttl", 30*time.Minute)

	// Pick defaults
	viper.SetDefault("picks.counter_mode", CounterModeSubmitted)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.save_rps", 5)
	viper.SetDefault("rate_limiting.save_burst", 10)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.enable_request_id", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Export defaults
	viper.SetDefault("export.compression", "zstd")
}
