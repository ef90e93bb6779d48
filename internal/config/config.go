package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Remote POS API
	APIURL string `mapstructure:"API_URL"`

	// Per-endpoint auth requirements. The upstream day-close and public
	// product endpoints are called without a bearer token today; whether that
	// is intentional is an open question upstream, so both stay configurable
	// instead of hard-coded.
	CierreDiaConAuth      bool `mapstructure:"CIERRE_DIA_CON_AUTH"`
	ProductosPublicosAuth bool `mapstructure:"PRODUCTOS_PUBLICOS_CON_AUTH"`

	// Session store: "memory" or "redis"
	SessionBackend string `mapstructure:"SESSION_BACKEND"`
	SessionTTLMin  int    `mapstructure:"SESSION_TTL_MINUTES"`
	RedisURL       string `mapstructure:"REDIS_URL"`

	// Worker pool (settlement report email)
	WorkerPoolSize int `mapstructure:"WORKER_POOL_SIZE"`

	// SMTP — leave SMTP_HOST empty to disable report emails
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	ReporteEmail string `mapstructure:"REPORTE_EMAIL"` // recipient of day-close reports

	// PDF output for settlement summaries
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 3000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("API_URL", "http://localhost:4000")
	viper.SetDefault("CIERRE_DIA_CON_AUTH", false)
	viper.SetDefault("PRODUCTOS_PUBLICOS_CON_AUTH", false)
	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("SESSION_TTL_MINUTES", 480)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/comanda/cierres")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
