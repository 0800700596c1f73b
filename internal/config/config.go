package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Log           LogConfig           `mapstructure:"log"`
	DB            DBConfig            `mapstructure:"db"`
	Cron          CronConfig          `mapstructure:"cron"`
	Ads           AdsConfig           `mapstructure:"ads"`
	MetricsSync   MetricsSyncConfig   `mapstructure:"metrics_sync"`
	Profitability ProfitabilityConfig `mapstructure:"profitability"`
	Executor      ExecutorConfig      `mapstructure:"executor"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsSync string `mapstructure:"metrics_sync"`
}

// AdsConfig covers the Amazon Advertising API and its LWA token endpoint.
type AdsConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	TokenURL     string        `mapstructure:"token_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	RefreshToken string        `mapstructure:"refresh_token"`
	ProfileID    string        `mapstructure:"profile_id"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type MetricsSyncConfig struct {
	LookbackDays int `mapstructure:"lookback_days"`
	PageLimit    int `mapstructure:"page_limit"`
}

// ProfitabilityConfig is the royalty basis for ROI derivation, supplied once
// at startup and read-only afterwards.
type ProfitabilityConfig struct {
	RoyaltyPerUnit float64 `mapstructure:"royalty_per_unit"`
	PageReadRate   float64 `mapstructure:"page_read_rate"`
	// BreakEvenFallbackACOS is the documented heuristic used when a period
	// has royalty economics but zero attributed sales.
	BreakEvenFallbackACOS float64 `mapstructure:"break_even_fallback_acos"`
}

type ExecutorConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.metrics_sync", "@every 6h")
	v.SetDefault("ads.endpoint", "https://advertising-api.amazon.com")
	v.SetDefault("ads.token_url", "https://api.amazon.com/auth/o2/token")
	v.SetDefault("ads.timeout", "30s")
	v.SetDefault("metrics_sync.lookback_days", 7)
	v.SetDefault("metrics_sync.page_limit", 500)
	v.SetDefault("profitability.royalty_per_unit", 0)
	v.SetDefault("profitability.page_read_rate", 0)
	v.SetDefault("profitability.break_even_fallback_acos", 30)
	v.SetDefault("executor.enabled", false)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
