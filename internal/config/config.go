package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/policy-extract/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Fields FieldsConfig `yaml:"fields" mapstructure:"fields"`
	OCR    OCRConfig    `yaml:"ocr" mapstructure:"ocr"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	FTP    FTPConfig    `yaml:"ftp" mapstructure:"ftp"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EngineConfig carries the extraction tunables. The scoring constants are
// empirically chosen and deliberately configurable rather than baked in.
type EngineConfig struct {
	MinScore            float64                         `yaml:"min_score" mapstructure:"min_score"`
	DirectBase          float64                         `yaml:"direct_base" mapstructure:"direct_base"`
	DirectDecay         float64                         `yaml:"direct_decay" mapstructure:"direct_decay"`
	DirectFloor         float64                         `yaml:"direct_floor" mapstructure:"direct_floor"`
	ProximityConfidence float64                         `yaml:"proximity_confidence" mapstructure:"proximity_confidence"`
	FuzzyThreshold      float64                         `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
	FuzzyBase           float64                         `yaml:"fuzzy_base" mapstructure:"fuzzy_base"`
	FallbackMonetary    float64                         `yaml:"fallback_monetary" mapstructure:"fallback_monetary"`
	FallbackCode        float64                         `yaml:"fallback_code" mapstructure:"fallback_code"`
	FallbackDate        float64                         `yaml:"fallback_date" mapstructure:"fallback_date"`
	UnmatchedLimit      int                             `yaml:"unmatched_limit" mapstructure:"unmatched_limit"`
	Bounds              map[string]model.MonetaryBounds `yaml:"bounds" mapstructure:"bounds"`
}

// FieldsConfig optionally overrides the production field schema.
type FieldsConfig struct {
	FixturePath string `yaml:"fixture_path" mapstructure:"fixture_path"`
	BoundsPath  string `yaml:"bounds_path" mapstructure:"bounds_path"`
}

// OCRConfig configures PDF text extraction.
type OCRConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// FTPConfig configures the optional inbox fetch before a batch run.
type FTPConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Dir      string `yaml:"dir" mapstructure:"dir"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentDocuments int `yaml:"max_concurrent_documents" mapstructure:"max_concurrent_documents"`
}

// ServerConfig configures the extraction HTTP server.
type ServerConfig struct {
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
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
	v.SetEnvPrefix("POLEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("engine.min_score", 0.3)
	v.SetDefault("engine.direct_base", 0.9)
	v.SetDefault("engine.direct_decay", 0.05)
	v.SetDefault("engine.direct_floor", 0.4)
	v.SetDefault("engine.proximity_confidence", 0.8)
	v.SetDefault("engine.fuzzy_threshold", 0.65)
	v.SetDefault("engine.fuzzy_base", 0.65)
	v.SetDefault("engine.fallback_monetary", 0.6)
	v.SetDefault("engine.fallback_code", 0.5)
	v.SetDefault("engine.fallback_date", 0.55)
	v.SetDefault("engine.unmatched_limit", 25)
	v.SetDefault("ocr.provider", "local")
	v.SetDefault("ocr.pdftotext_path", "pdftotext")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "policy-extract.db")
	v.SetDefault("batch.max_concurrent_documents", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 5)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
