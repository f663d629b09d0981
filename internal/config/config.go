package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// DB_DSN vacío => store in-memory (modo dev).
	DatabaseDSN    string `mapstructure:"DB_DSN"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBAutoMigrate  bool   `mapstructure:"DB_AUTO_MIGRATE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	DrugInfoBaseURL string        `mapstructure:"DRUGINFO_BASE_URL"`
	DrugInfoTimeout time.Duration `mapstructure:"DRUGINFO_TIMEOUT"`

	HTTPReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
}

var keys = []string{
	"PORT", "ENV",
	"DB_DSN", "DB_MAX_OPEN_CONNS", "DB_AUTO_MIGRATE",
	"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	"DRUGINFO_BASE_URL", "DRUGINFO_TIMEOUT",
	"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
}

// Load lee env vars y, si existe, un archivo .env en el directorio actual.
// Las env vars tienen prioridad sobre el archivo.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "medtracker")
	v.SetDefault("DRUGINFO_BASE_URL", "https://api.fda.gov/drug/label.json")
	v.SetDefault("DRUGINFO_TIMEOUT", "10s")
	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "15s")

	// Bind explícito para que Unmarshal vea las env vars aunque no haya .env
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Addr => ":8080".
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(c.Port), ":"))
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	if c.DrugInfoTimeout <= 0 {
		return fmt.Errorf("DRUGINFO_TIMEOUT must be positive, got %s", c.DrugInfoTimeout)
	}
	if c.HTTPReadTimeout <= 0 || c.HTTPWriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.DBMaxOpenConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 0, got %d", c.DBMaxOpenConns)
	}
	u, err := url.ParseRequestURI(strings.TrimSpace(c.DrugInfoBaseURL))
	if err != nil || u.Host == "" {
		return fmt.Errorf("DRUGINFO_BASE_URL must be an absolute url, got %q", c.DrugInfoBaseURL)
	}
	return nil
}
