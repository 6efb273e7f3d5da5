package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Events       EventsConfig     `mapstructure:"events"`
	Waveform     WaveformConfig   `mapstructure:"waveform"`
	Picks        PicksConfig      `mapstructure:"picks"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Security     SecurityConfig   `mapstructure:"security"`
	Logging      LoggingConfig    `mapstructure:"logging"`
	Monitoring   MonitoringConfig `mapstructure:"monitoring"`
	Export       ExportConfig     `mapstructure:"export"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains pick database settings
type DatabaseConfig struct {
	Path        string        `mapstructure:"path"`
	Verbose     bool          `mapstructure:"verbose"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// EventsConfig locates the read-only event directory tree
type EventsConfig struct {
	Dir string `mapstructure:"dir"`
}

// WaveformConfig contains waveform serving settings
type WaveformConfig struct {
	SampleRate float64 `mapstructure:"sample_rate"` // Hz, used to synthesize the time axis
	Compress   bool    `mapstructure:"compress"`    // gzip /xy responses when the client accepts it

	CacheMB  int64         `mapstructure:"cache_mb"`  // encoded channel cache size, 0 disables
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // lifetime of a cached channel
}

// PicksConfig contains pick bookkeeping settings
type PicksConfig struct {
	CounterMode string `mapstructure:"counter_mode"` // submitted|effective
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	SaveRPS   int  `mapstructure:"save_rps"`
	SaveBurst int  `mapstructure:"save_burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS      bool `mapstructure:"enable_cors"`
	EnableRequestID bool `mapstructure:"enable_request_id"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text|json
}

// MonitoringConfig contains monitoring settings
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

// ExportConfig contains dataset export settings
type ExportConfig struct {
	Compression string `mapstructure:"compression"` // zstd|snappy|gzip|none
}
