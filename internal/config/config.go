package config

import (
	"errors"
	"fmt"

	pkgconfig "github.com/wekeepgrowing/launch-revenue/pkg/config"
	"github.com/wekeepgrowing/launch-revenue/pkg/logger"
)

const serviceName = "revenue"

type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      logger.Config  `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
}

// LoadConfig reads revenue.yaml (with REVENUE_* environment overrides) into a Config.
func LoadConfig() (*Config, error) {
	loaded, err := pkgconfig.Load(serviceName)
	if err != nil {
		return nil, err
	}

	return decode(loaded)
}

// decode maps the loaded settings, environment overrides included, onto the yaml-tagged structs.
func decode(loaded pkgconfig.Config) (*Config, error) {
	var cfg Config
	if err := loaded.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = serviceName
	}
	if c.Server.HTTP.Port == 0 {
		c.Server.HTTP.Port = 8080
	}
	if c.Server.GRPC.Port == 0 {
		c.Server.GRPC.Port = 9090
	}
	c.Database.applyDefaults()
	if c.Redis.Channel == "" {
		c.Redis.Channel = "notifications:revenue"
	}
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Service.Stripe.SecretKey == "" {
		errs = append(errs, errors.New("service.stripe.secret_key is required"))
	}
	if c.Service.Stripe.ConnectClientID == "" {
		errs = append(errs, errors.New("service.stripe.connect_client_id is required"))
	}
	if c.Service.Supabase.JWTSecret == "" {
		errs = append(errs, errors.New("service.supabase.jwt_secret is required"))
	}
	if c.Service.StateSecret != "" && len(c.Service.StateSecret) != 64 {
		errs = append(errs, errors.New("service.state_secret must be 64 hex chars"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
