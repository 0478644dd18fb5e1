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
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Import ImportConfig `yaml:"import" mapstructure:"import"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EngineConfig configures the metrics engine.
type EngineConfig struct {
	Recovery    RecoveryConfig `yaml:"recovery" mapstructure:"recovery"`
	MaxRecords  int            `yaml:"max_records" mapstructure:"max_records"`
	StrictYears bool           `yaml:"strict_years" mapstructure:"strict_years"`
}

// RecoveryConfig holds the recovery factors for reserve estimation.
type RecoveryConfig struct {
	Liquid float64 `yaml:"liquid" mapstructure:"liquid"`
	Oil    float64 `yaml:"oil" mapstructure:"oil"`
	Water  float64 `yaml:"water" mapstructure:"water"`
}

// ImportConfig configures how production files are read.
type ImportConfig struct {
	ActivePoints int    `yaml:"active_points" mapstructure:"active_points"`
	SheetIndex   int    `yaml:"sheet_index" mapstructure:"sheet_index"`
	SheetName    string `yaml:"sheet_name" mapstructure:"sheet_name"`
	HasHeader    bool   `yaml:"has_header" mapstructure:"has_header"`
	YearColumn   int    `yaml:"year_column" mapstructure:"year_column"`
	OilColumn    int    `yaml:"oil_column" mapstructure:"oil_column"`
	LiquidColumn int    `yaml:"liquid_column" mapstructure:"liquid_column"`
	ActiveColumn int    `yaml:"active_column" mapstructure:"active_column"` // -1 = derive from active_points
}

// ExportConfig configures rendering.
type ExportConfig struct {
	Language string `yaml:"language" mapstructure:"language"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port         int      `yaml:"port" mapstructure:"port"`
	MaxBodyBytes int64    `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RateLimit    float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst    int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins  []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// BatchConfig configures multi-file analysis.
type BatchConfig struct {
	MaxConcurrentFiles int `yaml:"max_concurrent_files" mapstructure:"max_concurrent_files"`
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
	v.SetEnvPrefix("DECLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("engine.recovery.liquid", 0.90)
	v.SetDefault("engine.recovery.oil", 0.85)
	v.SetDefault("engine.recovery.water", 0.95)
	v.SetDefault("engine.max_records", 10000)
	v.SetDefault("engine.strict_years", false)
	v.SetDefault("import.active_points", 11)
	v.SetDefault("import.sheet_index", 0)
	v.SetDefault("import.sheet_name", "")
	v.SetDefault("import.has_header", true)
	v.SetDefault("import.year_column", 0)
	v.SetDefault("import.oil_column", 1)
	v.SetDefault("import.liquid_column", 2)
	v.SetDefault("import.active_column", -1)
	v.SetDefault("export.language", "en")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("batch.max_concurrent_files", 4)
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the engine cannot work with.
func (c *Config) Validate() error {
	r := c.Engine.Recovery
	factors := []struct {
		name  string
		value float64
	}{{"liquid", r.Liquid}, {"oil", r.Oil}, {"water", r.Water}}
	for _, f := range factors {
		if f.value < 0 || f.value > 1 {
			return eris.Errorf("config: engine.recovery.%s must be within [0, 1], got %g", f.name, f.value)
		}
	}
	if c.Engine.MaxRecords < 0 {
		return eris.Errorf("config: engine.max_records must not be negative, got %d", c.Engine.MaxRecords)
	}
	if c.Import.ActivePoints < 0 {
		return eris.Errorf("config: import.active_points must not be negative, got %d", c.Import.ActivePoints)
	}
	if c.Batch.MaxConcurrentFiles < 1 {
		return eris.Errorf("config: batch.max_concurrent_files must be at least 1, got %d", c.Batch.MaxConcurrentFiles)
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
