package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Alerts          AlertsConfig         `mapstructure:"alerts"`
	Ledger          LedgerConfig         `mapstructure:"ledger"`
	Auth            AuthConfig           `mapstructure:"auth"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
}

type CoinGeckoConfig struct {
	BaseURL    string `mapstructure:"baseUrl"`
	VsCurrency string `mapstructure:"vsCurrency"`
}

type AlertsConfig struct {
	// CheckCron drives the worker's alert-matching cycle.
	CheckCron string `mapstructure:"checkCron"`
	// MatchBand is the relative distance to the target price that counts as
	// a match, e.g. 0.10 for a 10% band.
	MatchBand float64 `mapstructure:"matchBand"`
}

// OverdraftPolicy decides what happens when a transaction would drive a
// holding below zero.
type OverdraftPolicy string

const (
	// OverdraftClamp removes the holding instead of persisting a negative
	// quantity.
	OverdraftClamp OverdraftPolicy = "clamp"
	// OverdraftReject fails the whole transaction unit.
	OverdraftReject OverdraftPolicy = "reject"
)

type LedgerConfig struct {
	OverdraftPolicy OverdraftPolicy `mapstructure:"overdraftPolicy"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwtSecret"`
	TokenTTLHours int    `mapstructure:"tokenTTLHours"`
}

func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	// Local overrides live in a .env file when present.
	_ = godotenv.Load()

	viper.AddConfigPath(path)
	if env != "" {
		viper.SetConfigName("appsettings." + env)
	} else {
		viper.SetConfigName("appsettings")
	}
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Service.Port == "" {
		cfg.Service.Port = "8000"
	}
	if cfg.Alerts.CheckCron == "" {
		cfg.Alerts.CheckCron = "*/5 * * * *"
	}
	if cfg.Alerts.MatchBand <= 0 {
		cfg.Alerts.MatchBand = 0.10
	}
	if cfg.Ledger.OverdraftPolicy == "" {
		cfg.Ledger.OverdraftPolicy = OverdraftClamp
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	if cfg.ExternalClients.CoinGecko.VsCurrency == "" {
		cfg.ExternalClients.CoinGecko.VsCurrency = "usd"
	}
}

func validate(cfg *Config) error {
	switch cfg.Ledger.OverdraftPolicy {
	case OverdraftClamp, OverdraftReject:
	default:
		return fmt.Errorf("unknown ledger.overdraftPolicy %q", cfg.Ledger.OverdraftPolicy)
	}
	if cfg.Service.Type != API && cfg.Service.Type != WORKER {
		return fmt.Errorf("unknown service.type %q", cfg.Service.Type)
	}
	return nil
}
