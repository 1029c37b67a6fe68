package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvProduction disables debug output such as error stacks in API responses.
const EnvProduction = "production"

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment     string        `mapstructure:"ENVIRONMENT"`
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	TokenTTL        time.Duration `mapstructure:"TOKEN_TTL"`
	DefaultRadiusKm float64       `mapstructure:"DEFAULT_RADIUS_KM"`
	AllowedOrigins  string        `mapstructure:"ALLOWED_ORIGINS"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
}

// LoadConfig reads configuration from app.env in path, overridden by environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("DEFAULT_RADIUS_KM", 10)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	// Keys without a default must be bound so AutomaticEnv sees them on Unmarshal.
	_ = v.BindEnv("DB_SOURCE")
	_ = v.BindEnv("JWT_SECRET")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for required values.
func (c Config) Validate() error {
	if c.DBSource == "" {
		return errors.New("DB_SOURCE is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.DefaultRadiusKm <= 0 {
		return fmt.Errorf("DEFAULT_RADIUS_KM must be positive, got %v", c.DefaultRadiusKm)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Origins splits AllowedOrigins on commas.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
