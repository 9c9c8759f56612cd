package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds settings for all services. Each binary reads the sections it
// needs; unset sections keep their defaults.
type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServiceConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	// URL is a Postgres DSN. Empty means run on the in-memory stores.
	URL string `mapstructure:"url"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type UpstreamConfig struct {
	AuthURL    string `mapstructure:"auth_url"`
	CatalogURL string `mapstructure:"catalog_url"`
	CartURL    string `mapstructure:"cart_url"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

// Load reads configuration from the environment (BAKESHOP_ prefix, dots as
// underscores) over an optional config.yaml in the working directory.
func Load(defaultPort string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BAKESHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, defaultPort)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, defaultPort string) {
	v.SetDefault("service.port", defaultPort)
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("upstream.auth_url", "http://auth:8081")
	v.SetDefault("upstream.catalog_url", "http://catalog:8082")
	v.SetDefault("upstream.cart_url", "http://cart:8083")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.token", "")
}
