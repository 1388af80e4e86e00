package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Ingest     IngestConfig     `yaml:"ingest" mapstructure:"ingest"`
	Validation ValidateConfig   `yaml:"validate" mapstructure:"validate"`
	Enrich     EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// IngestConfig configures batch pacing and company-identity fallbacks.
type IngestConfig struct {
	BatchSize           int    `yaml:"batch_size" mapstructure:"batch_size"`
	InterChunkDelaySecs int    `yaml:"inter_chunk_delay_secs" mapstructure:"inter_chunk_delay_secs"`
	SynthesizeWebsite   bool   `yaml:"synthesize_website" mapstructure:"synthesize_website"`
	DefaultCountryCode  string `yaml:"default_country_code" mapstructure:"default_country_code"`
}

// ValidateConfig configures the website quality gate.
type ValidateConfig struct {
	ScoreThreshold   int     `yaml:"score_threshold" mapstructure:"score_threshold"`
	FetchTimeoutSecs int     `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
	RequestsPerSec   float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	CacheTTLMins     int     `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
}

// EnrichConfig configures the fire-and-forget company enrichment webhook.
type EnrichConfig struct {
	WebhookURL    string `yaml:"webhook_url" mapstructure:"webhook_url"`
	MaxConcurrent int    `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// SalesforceConfig holds Salesforce credential settings for the lead sink.
type SalesforceConfig struct {
	Domain         string `yaml:"domain" mapstructure:"domain"`
	Username       string `yaml:"username" mapstructure:"username"`
	Password       string `yaml:"password" mapstructure:"password"`
	SecurityToken  string `yaml:"security_token" mapstructure:"security_token"`
	ConsumerKey    string `yaml:"consumer_key" mapstructure:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret" mapstructure:"consumer_secret"`
}

// Enabled reports whether enough credentials are present to push leads.
func (c SalesforceConfig) Enabled() bool {
	return c.Domain != "" && c.Username != ""
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADINGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leads.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("ingest.batch_size", 10)
	v.SetDefault("ingest.inter_chunk_delay_secs", 2)
	v.SetDefault("ingest.synthesize_website", true)
	v.SetDefault("ingest.default_country_code", "31")
	v.SetDefault("validate.score_threshold", 60)
	v.SetDefault("validate.fetch_timeout_secs", 10)
	v.SetDefault("validate.requests_per_sec", 2)
	v.SetDefault("validate.cache_ttl_mins", 60)
	v.SetDefault("enrich.max_concurrent", 4)
}

// Validate checks the fields a run mode depends on. Mode is "ingest" or
// "serve"; errors name every missing or out-of-range field at once.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "ingest":
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" && c.Store.Driver != "memory" {
		problems = append(problems, "store.driver must be sqlite, postgres, or memory")
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required for the postgres driver")
	}
	if c.Ingest.BatchSize < 1 || c.Ingest.BatchSize > 1000 {
		problems = append(problems, "ingest.batch_size must be between 1 and 1000")
	}
	if c.Ingest.InterChunkDelaySecs < 0 {
		problems = append(problems, "ingest.inter_chunk_delay_secs must be >= 0")
	}
	if c.Validation.ScoreThreshold < 0 || c.Validation.ScoreThreshold > 100 {
		problems = append(problems, "validate.score_threshold must be between 0 and 100")
	}
	if c.Enrich.MaxConcurrent < 1 {
		problems = append(problems, "enrich.max_concurrent must be >= 1")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
