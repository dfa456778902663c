package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	NER       NERConfig       `mapstructure:"ner"`
	Detection DetectionConfig `mapstructure:"detection"`
	Export    ExportConfig    `mapstructure:"export"`
}

type ServerConfig struct {
	Host        string    `mapstructure:"host"`
	Port        int       `mapstructure:"port"`
	MetricsPort int       `mapstructure:"metrics_port"`
	BodyLimit   int       `mapstructure:"body_limit"`
	SecretKey   string    `mapstructure:"secret_key"`
	AuthEnabled bool      `mapstructure:"auth_enabled"`
	CORSOrigins []string  `mapstructure:"cors_origins"`
	TLS         TLSConfig `mapstructure:"tls"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

type MetricsConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	EnableLatency    bool `mapstructure:"enable_latency"`
	EnableDetections bool `mapstructure:"enable_detections"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type NERConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxFailures    uint32        `mapstructure:"max_failures"`
	BreakerTimeout time.Duration `mapstructure:"breaker_timeout"`
	FailOpen       bool          `mapstructure:"fail_open"`
}

type DetectionConfig struct {
	// GazetteerFile replaces the embedded gazetteer when set.
	GazetteerFile string `mapstructure:"gazetteer_file"`
}

type ExportConfig struct {
	// FontFile is a TrueType font that replaces the embedded one in
	// exported PDFs.
	FontFile string `mapstructure:"font_file"`
}

var defaults = map[string]interface{}{
	"server.host":               "0.0.0.0",
	"server.port":               5000,
	"server.metrics_port":       9090,
	"server.body_limit":         8 * 1024 * 1024,
	"server.secret_key":         "",
	"server.auth_enabled":       false,
	"server.cors_origins":       []string{"*"},
	"server.tls.enabled":        false,
	"server.tls.cert_file":      "",
	"server.tls.key_file":       "",
	"server.tls.client_ca":      "",
	"server.tls.enable_mtls":    false,
	"server.tls.max_version":    "TLS13",
	"log.level":                 "info",
	"log.file":                  "trustmask.log",
	"log.console":               true,
	"metrics.enabled":           true,
	"metrics.enable_latency":    true,
	"metrics.enable_detections": true,
	"redis.host":                "localhost",
	"redis.port":                6379,
	"redis.password":            "",
	"redis.db":                  0,
	"rate_limit.enabled":        false,
	"rate_limit.limit":          60,
	"rate_limit.window":         "1m",
	"ner.enabled":               false,
	"ner.base_url":              "http://localhost:8001",
	"ner.timeout":               "5s",
	"ner.max_failures":          5,
	"ner.breaker_timeout":       "30s",
	"ner.fail_open":             false,
	"detection.gazetteer_file":  "",
	"export.font_file":          "",
}

var globalConfig Config

// Load reads config.yaml from configPath (then ./config and .), applies
// environment overrides (server.port -> SERVER_PORT) and validates the
// result. A missing file is not an error: defaults and environment apply.
func Load(configPath string) error {
	cfg, err := load(viper.New(), configPath)
	if err != nil {
		return err
	}
	globalConfig = *cfg
	return nil
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.Server.AuthEnabled && c.Server.SecretKey == "" {
		return fmt.Errorf("server.secret_key is required when auth is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate_limit.limit and rate_limit.window must be positive")
	}
	if c.NER.Enabled && c.NER.BaseURL == "" {
		return fmt.Errorf("ner.base_url is required when ner is enabled")
	}
	if c.Server.TLS.Enabled && (c.Server.TLS.CertFile == "" || c.Server.TLS.KeyFile == "") {
		return fmt.Errorf("server.tls.cert_file and server.tls.key_file are required when tls is enabled")
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
