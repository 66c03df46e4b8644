package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Oplab  OplabConfig  `mapstructure:"oplab"`
	Cron   CronConfig   `mapstructure:"cron"`
	Alerts AlertsConfig `mapstructure:"alerts"`
	Stream StreamConfig `mapstructure:"stream"`
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

type OplabConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type CronConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	QuoteRefresh string `mapstructure:"quote_refresh"`
	AlertScan    string `mapstructure:"alert_scan"`
}

type AlertsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	DedupeInterval time.Duration `mapstructure:"dedupe_interval"`
}

type StreamConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	BufferPerConn int  `mapstructure:"buffer_per_conn"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OT")
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
	v.SetDefault("oplab.base_url", "https://api.oplab.com.br/v3")
	v.SetDefault("oplab.access_token", "")
	v.SetDefault("oplab.timeout", "15s")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.quote_refresh", "@every 5m")
	v.SetDefault("cron.alert_scan", "@every 10m")
	v.SetDefault("alerts.enabled", true)
	v.SetDefault("alerts.dedupe_interval", "24h")
	v.SetDefault("stream.enabled", true)
	v.SetDefault("stream.buffer_per_conn", 64)

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
