package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petro-intel/leadgen-cli/internal/scorer"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the reference data directory.
type DataConfig struct {
	RefDir string `yaml:"ref_dir" mapstructure:"ref_dir"`
}

// StoreConfig configures the SQLite snapshot database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ScoringConfig configures scoring behavior on top of the built-in weight
// defaults.
type ScoringConfig struct {
	scorer.Config  `yaml:",inline" mapstructure:",squash"`
	ReferenceDate  string  `yaml:"reference_date" mapstructure:"reference_date"` // YYYY-MM-DD, empty = today
	MinExportScore float64 `yaml:"min_export_score" mapstructure:"min_export_score"`
	TopN           int     `yaml:"top_n" mapstructure:"top_n"`
}

// GeocodeConfig configures the optional Nominatim fallback geocoder.
type GeocodeConfig struct {
	Enabled   bool    `yaml:"enabled" mapstructure:"enabled"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	CachePath string  `yaml:"cache_path" mapstructure:"cache_path"`
	RPS       float64 `yaml:"rps" mapstructure:"rps"`
	UserAgent string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// ExportConfig configures output locations.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the dashboard API server.
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
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.ref_dir", "config")
	v.SetDefault("store.path", "leads.db")
	v.SetDefault("export.dir", "out")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("scoring.min_export_score", 40)
	v.SetDefault("scoring.top_n", 100)
	v.SetDefault("geocode.enabled", false)
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("geocode.cache_path", "geocode_cache.json")
	v.SetDefault("geocode.rps", 1)
	v.SetDefault("geocode.user_agent", "leadgen-cli/1.0 (leads@hpcl.in)")

	def := scorer.DefaultConfig()
	v.SetDefault("scoring.intent_weight", def.IntentWeight)
	v.SetDefault("scoring.freshness_weight", def.FreshnessWeight)
	v.SetDefault("scoring.size_weight", def.SizeWeight)
	v.SetDefault("scoring.proximity_weight", def.ProximityWeight)
	v.SetDefault("scoring.legacy_blend", def.LegacyBlend)
	v.SetDefault("scoring.enhanced_blend", def.EnhancedBlend)
	v.SetDefault("scoring.urgency_score", def.UrgencyScore)
	v.SetDefault("scoring.urgency_intent", def.UrgencyIntent)
	v.SetDefault("scoring.tier1_min", def.Tier1Min)
	v.SetDefault("scoring.tier2_min", def.Tier2Min)
	v.SetDefault("scoring.tier3_min", def.Tier3Min)
	v.SetDefault("scoring.active_review_statuses", def.ActiveReviewStatuses)

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

	if err := scorer.Validate(cfg.Scoring.Config); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// RefDate parses the configured scoring reference date, defaulting to the
// current day.
func (c ScoringConfig) RefDate() (time.Time, error) {
	raw := strings.TrimSpace(c.ReferenceDate)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "config: parse reference date %q", raw)
	}
	return t, nil
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
